package domain

import "context"

//go:generate mockgen -source=gateway.go -destination=gateway_mock.go -package=domain

// Gateway is the host platform's alarm scheduling primitive.
type Gateway interface {
	// RequestPermission returns false when the user denied notifications.
	RequestPermission(ctx context.Context) (bool, error)
	Schedule(ctx context.Context, alarms []Alarm) error
	ListPending(ctx context.Context) ([]PendingAlarm, error)
	Cancel(ctx context.Context, ids []int) error
}
