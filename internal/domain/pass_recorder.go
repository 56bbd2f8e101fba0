package domain

import (
	"context"
	"time"
)

type PassRecord struct {
	PassID    string
	Category  Category
	Trigger   string
	Outcome   string
	StartedAt time.Time
	Duration  time.Duration
	Cancelled int
	Scheduled int
	Dropped   int
	Skipped   int
}

type PassRecorder interface {
	RecordPass(ctx context.Context, record PassRecord) error
	Flush(ctx context.Context) error
	Close() error
}
