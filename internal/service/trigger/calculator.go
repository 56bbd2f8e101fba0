package trigger

import (
	"time"
)

const (
	DefaultBusinessName       = "Kadaele Services"
	DefaultMilestoneStep      = 500
	DefaultLowStockThreshold  = 5
	DefaultLowStockBatchLimit = 10
	DefaultCreditorMaxCount   = 10

	// immediateDelay is how far in the future "fire now" alarms are placed.
	immediateDelay = time.Second

	debtReminderHour = 8
)

// creditorFireTimes are the local times of day creditor reminders repeat at.
var creditorFireTimes = []struct{ hour, minute int }{
	{8, 30},
	{12, 0},
	{16, 30},
}

type Config struct {
	Location           *time.Location
	BusinessName       string
	MilestoneStep      int
	LowStockThreshold  float64
	LowStockBatchLimit int
	CreditorMaxCount   int
}

func DefaultConfig() Config {
	return Config{
		Location:           time.Local,
		BusinessName:       DefaultBusinessName,
		MilestoneStep:      DefaultMilestoneStep,
		LowStockThreshold:  DefaultLowStockThreshold,
		LowStockBatchLimit: DefaultLowStockBatchLimit,
		CreditorMaxCount:   DefaultCreditorMaxCount,
	}
}

// Calculator turns a fact snapshot and the current time into candidates.
// It holds no state between calls.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	defaults := DefaultConfig()
	if cfg.Location == nil {
		cfg.Location = defaults.Location
	}
	if cfg.BusinessName == "" {
		cfg.BusinessName = defaults.BusinessName
	}
	if cfg.MilestoneStep <= 0 {
		cfg.MilestoneStep = defaults.MilestoneStep
	}
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = defaults.LowStockThreshold
	}
	if cfg.LowStockBatchLimit <= 0 {
		cfg.LowStockBatchLimit = defaults.LowStockBatchLimit
	}
	if cfg.CreditorMaxCount <= 0 {
		cfg.CreditorMaxCount = defaults.CreditorMaxCount
	}
	return &Calculator{cfg: cfg}
}

func (c *Calculator) Location() *time.Location {
	return c.cfg.Location
}

func (c *Calculator) MilestoneStep() int {
	return c.cfg.MilestoneStep
}

// DayKey returns the device-local calendar day of t as YYYY-MM-DD.
func (c *Calculator) DayKey(t time.Time) string {
	return t.In(c.cfg.Location).Format(dayLayout)
}
