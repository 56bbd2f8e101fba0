package gateway

import "github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"

type permissionResponse struct {
	Granted bool `json:"granted"`
}

type scheduleRequest struct {
	Alarms []domain.Alarm `json:"alarms"`
}

type pendingResponse struct {
	Alarms []domain.PendingAlarm `json:"alarms"`
	Count  int                   `json:"count"`
}

type cancelRequest struct {
	IDs []int `json:"ids"`
}
