package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Frequency of a recurrence rule
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// RecurrenceRule describes how a webinar-style product repeats.
// Exactly one termination mode is set: Count > 0 or Until != nil (inclusive).
type RecurrenceRule struct {
	Frequency Frequency
	Interval  int
	ByWeekday []int // 0-6, Sunday = 0; for weekly rules
	Count     int
	Until     *time.Time
}

// HasCount returns true if the rule terminates after a number of occurrences
func (r *RecurrenceRule) HasCount() bool {
	return r.Count > 0
}

// HasUntil returns true if the rule terminates at a date
func (r *RecurrenceRule) HasUntil() bool {
	return r.Until != nil
}

// Webinar is a multi-session product whose sessions follow a recurrence rule
type Webinar struct {
	ID              string
	OwnerID         string
	Title           string
	AnchorDate      time.Time
	StartTime       types.TimeOfDay // in Timezone
	DurationMinutes int
	Timezone        string
	Rule            RecurrenceRule
	PriceCents      int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
