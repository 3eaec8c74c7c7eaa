package domain

import "time"

// Slot is a candidate bookable interval derived from availability windows.
// It is never persisted and is regenerated on every query.
type Slot struct {
	StartUTC        time.Time
	EndUTC          time.Time
	DurationMinutes int
	Available       bool
}

// BookingCandidate is a requested interval for a direct "book this exact time" request
type BookingCandidate struct {
	OwnerID  string
	StartUTC time.Time
	EndUTC   time.Time

	// ExcludeSessionID is the session being moved by a reschedule; it never conflicts with itself
	ExcludeSessionID string
}
