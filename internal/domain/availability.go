package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AvailabilityWindow is a rule describing when an owner can be booked.
// Recurring windows repeat every week on DayOfWeek; one-off windows apply to Date only.
// Windows are soft-deleted by clearing IsActive.
type AvailabilityWindow struct {
	ID          string
	OwnerID     string
	IsRecurring bool
	DayOfWeek   *int       // 0-6, Sunday = 0; only for recurring windows
	Date        *time.Time // only for one-off windows
	StartTime   types.TimeOfDay
	EndTime     types.TimeOfDay
	Timezone    string // IANA id the wall-clock times are expressed in

	SessionDurationMinutes int
	BufferMinutes          int
	IsActive               bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo reports whether the window is active and covers the given calendar date
func (w *AvailabilityWindow) AppliesTo(date time.Time) bool {
	if !w.IsActive {
		return false
	}
	if w.IsRecurring {
		return w.DayOfWeek != nil && *w.DayOfWeek == int(date.Weekday())
	}
	return w.Date != nil && SameDate(*w.Date, date)
}

// SameDate compares calendar dates ignoring time and location
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly returns the calendar date as midnight UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
