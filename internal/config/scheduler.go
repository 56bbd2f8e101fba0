package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	timezoneEnv           = "TIMEZONE"
	businessNameEnv       = "BUSINESS_NAME"
	milestoneStepEnv      = "MILESTONE_STEP"
	lowStockThresholdEnv  = "LOW_STOCK_THRESHOLD"
	lowStockBatchLimitEnv = "LOW_STOCK_BATCH_LIMIT"
	creditorMaxCountEnv   = "CREDITOR_MAX_COUNT"
	dedupRetentionDaysEnv = "DEDUP_RETENTION_DAYS"
	purgeCronEnv          = "PURGE_CRON"

	defaultBusinessName       = "Kadaele Services"
	defaultMilestoneStep      = 500
	defaultLowStockThreshold  = 5
	defaultLowStockBatchLimit = 10
	defaultCreditorMaxCount   = 10
	defaultDedupRetentionDays = 7
	defaultPurgeCron          = "15 3 * * *"
)

type SchedulerConfig struct {
	Location           *time.Location
	BusinessName       string
	MilestoneStep      int
	LowStockThreshold  float64
	LowStockBatchLimit int
	CreditorMaxCount   int
	DedupRetentionDays int
	PurgeCron          string
}

func LoadSchedulerConfig() (*SchedulerConfig, error) {
	loc := time.Local
	if name := os.Getenv(timezoneEnv); name != "" {
		l, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, name)
		}
		loc = l
	}

	businessName := os.Getenv(businessNameEnv)
	if businessName == "" {
		businessName = defaultBusinessName
	}

	threshold := float64(defaultLowStockThreshold)
	if v := os.Getenv(lowStockThresholdEnv); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			threshold = parsed
		}
	}

	purgeCron := os.Getenv(purgeCronEnv)
	if purgeCron == "" {
		purgeCron = defaultPurgeCron
	}

	return &SchedulerConfig{
		Location:           loc,
		BusinessName:       businessName,
		MilestoneStep:      positiveIntEnv(milestoneStepEnv, defaultMilestoneStep),
		LowStockThreshold:  threshold,
		LowStockBatchLimit: positiveIntEnv(lowStockBatchLimitEnv, defaultLowStockBatchLimit),
		CreditorMaxCount:   positiveIntEnv(creditorMaxCountEnv, defaultCreditorMaxCount),
		DedupRetentionDays: positiveIntEnv(dedupRetentionDaysEnv, defaultDedupRetentionDays),
		PurgeCron:          purgeCron,
	}, nil
}

func positiveIntEnv(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
