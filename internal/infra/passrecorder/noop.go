package passrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.PassRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordPass(_ context.Context, _ domain.PassRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
