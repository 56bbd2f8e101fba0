package domain

import (
	"time"
)

const DefaultSound = "default"

type Recurrence string

const (
	RecurrenceNone  Recurrence = "none"
	RecurrenceDaily Recurrence = "daily"
)

func (r Recurrence) IsRepeating() bool {
	return r == RecurrenceDaily
}

// Candidate is a computed reminder that has not been given an id yet.
type Candidate struct {
	Identity   string
	FireAt     time.Time
	Title      string
	Body       string
	Recurrence Recurrence
}

// Alarm is a candidate with an allocated id, ready for the gateway.
type Alarm struct {
	ID         int        `json:"id"`
	Category   Category   `json:"category"`
	FireAt     time.Time  `json:"fire_at"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Recurrence Recurrence `json:"recurrence"`
	Sound      string     `json:"sound"`
	Channel    string     `json:"channel"`
}

func NewAlarm(id int, category Category, c Candidate) Alarm {
	recurrence := c.Recurrence
	if recurrence == "" {
		recurrence = RecurrenceNone
	}
	return Alarm{
		ID:         id,
		Category:   category,
		FireAt:     c.FireAt,
		Title:      c.Title,
		Body:       c.Body,
		Recurrence: recurrence,
		Sound:      DefaultSound,
		Channel:    category.Channel(),
	}
}

type PendingAlarm struct {
	ID int `json:"id"`
}

func AlarmIDs(alarms []Alarm) []int {
	ids := make([]int, 0, len(alarms))
	for _, a := range alarms {
		ids = append(ids, a.ID)
	}
	return ids
}
