package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ValidateWindow checks the internal consistency of an availability window
func ValidateWindow(w domain.AvailabilityWindow) error {
	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("%w: window start %s is not before end %s", domain.ErrInvalidTime, w.StartTime, w.EndTime)
	}
	if w.SessionDurationMinutes <= 0 {
		return fmt.Errorf("%w: session duration must be positive, got %d", domain.ErrInvalidTime, w.SessionDurationMinutes)
	}
	if w.BufferMinutes < 0 {
		return fmt.Errorf("%w: buffer must not be negative, got %d", domain.ErrInvalidTime, w.BufferMinutes)
	}
	if w.IsRecurring {
		if w.DayOfWeek == nil || *w.DayOfWeek < 0 || *w.DayOfWeek > 6 {
			return fmt.Errorf("%w: recurring window needs a day of week 0-6", domain.ErrInvalidTime)
		}
	} else if w.Date == nil {
		return fmt.Errorf("%w: one-off window needs a date", domain.ErrInvalidTime)
	}
	if _, err := LoadLocation(w.Timezone); err != nil {
		return err
	}
	return nil
}

// WindowBounds returns the UTC start and end of a window on the given local calendar date
func WindowBounds(w domain.AvailabilityWindow, date time.Time) (time.Time, time.Time, error) {
	if err := ValidateWindow(w); err != nil {
		return time.Time{}, time.Time{}, err
	}
	loc, err := LoadLocation(w.Timezone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return toUTC(date, w.StartTime, loc), toUTC(date, w.EndTime, loc), nil
}

// GenerateSlots produces the candidate slots of ownerID on a calendar date.
//
// Each window of the owner that applies to date is cut into slots of its
// session duration, stepping by duration + buffer from the window start.
// A slot that would run past the window end is dropped. A slot is available
// when it starts strictly after now + minLeadTime and does not overlap any
// active session of the owner. The result is ordered by start time; slots of
// overlapping windows are not merged.
func GenerateSlots(
	ownerID string,
	date time.Time,
	windows []domain.AvailabilityWindow,
	sessions []domain.Session,
	now time.Time,
	minLeadTime time.Duration,
) ([]domain.Slot, error) {
	earliest := now.Add(minLeadTime)
	booked := activeSessionsOf(ownerID, sessions)

	slots := make([]domain.Slot, 0)
	for i := range windows {
		w := windows[i]
		if w.OwnerID != ownerID || !w.AppliesTo(date) {
			continue
		}

		windowStart, windowEnd, err := WindowBounds(w, date)
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", w.ID, err)
		}

		duration := time.Duration(w.SessionDurationMinutes) * time.Minute
		step := duration + time.Duration(w.BufferMinutes)*time.Minute

		for start := windowStart; ; start = start.Add(step) {
			end := start.Add(duration)
			if end.After(windowEnd) {
				break
			}

			slots = append(slots, domain.Slot{
				StartUTC:        start,
				EndUTC:          end,
				DurationMinutes: w.SessionDurationMinutes,
				Available:       start.After(earliest) && !HasConflict(start, end, booked, ""),
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartUTC.Before(slots[j].StartUTC)
	})

	return slots, nil
}

func activeSessionsOf(ownerID string, sessions []domain.Session) []domain.Session {
	result := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.OwnerID == ownerID && s.IsActive() {
			result = append(result, s)
		}
	}
	return result
}
