package bridgestub

import "github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"

type ScheduleRequest struct {
	Alarms []domain.Alarm `json:"alarms" binding:"required"`
}

type CancelRequest struct {
	IDs []int `json:"ids" binding:"required"`
}

type PendingResponse struct {
	Alarms []domain.PendingAlarm `json:"alarms"`
	Count  int                   `json:"count"`
}

type PermissionRequest struct {
	Granted *bool `json:"granted" binding:"required"`
}
