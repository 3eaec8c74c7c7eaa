package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Overlaps reports whether half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Back-to-back intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflict returns the first active session overlapping [start, end), or nil.
// The session with id excludeSessionID is skipped so a reschedule never conflicts with itself.
func FindConflict(start, end time.Time, sessions []domain.Session, excludeSessionID string) *domain.Session {
	for i := range sessions {
		s := &sessions[i]
		if !s.IsActive() {
			continue
		}
		if excludeSessionID != "" && s.ID == excludeSessionID {
			continue
		}
		if Overlaps(start, end, s.StartUTC, s.EndUTC) {
			return s
		}
	}
	return nil
}

// HasConflict reports whether any active session overlaps [start, end)
func HasConflict(start, end time.Time, sessions []domain.Session, excludeSessionID string) bool {
	return FindConflict(start, end, sessions, excludeSessionID) != nil
}

// ValidateBookingRequest checks a direct booking or reschedule request.
//
// The checks run in order: the interval must be well formed, start no earlier
// than now + minLeadTime, fit entirely inside one applicable availability
// window of the owner, and not overlap an active session of the owner other
// than ExcludeSessionID. Slot generation uses a strict boundary instead, so a
// start exactly at now + minLeadTime is bookable but not listed as a slot.
func ValidateBookingRequest(
	candidate domain.BookingCandidate,
	windows []domain.AvailabilityWindow,
	sessions []domain.Session,
	now time.Time,
	minLeadTime time.Duration,
) error {
	if !candidate.StartUTC.Before(candidate.EndUTC) {
		return fmt.Errorf("%w: start %s is not before end %s", domain.ErrInvalidTime,
			candidate.StartUTC.Format(time.RFC3339), candidate.EndUTC.Format(time.RFC3339))
	}

	earliest := now.Add(minLeadTime)
	if candidate.StartUTC.Before(earliest) {
		return fmt.Errorf("%w: start %s, earliest allowed %s", domain.ErrPastBooking,
			candidate.StartUTC.Format(time.RFC3339), earliest.Format(time.RFC3339))
	}

	covered, err := coveredByWindow(candidate, windows)
	if err != nil {
		return err
	}
	if !covered {
		return domain.ErrOutsideAvailability
	}

	if conflict := FindConflict(candidate.StartUTC, candidate.EndUTC, activeSessionsOf(candidate.OwnerID, sessions), candidate.ExcludeSessionID); conflict != nil {
		return fmt.Errorf("%w: overlaps session %s", domain.ErrSlotNoLongerAvailable, conflict.ID)
	}

	return nil
}

// coveredByWindow checks the candidate against every window on the local date of its start
func coveredByWindow(candidate domain.BookingCandidate, windows []domain.AvailabilityWindow) (bool, error) {
	for _, w := range windows {
		if w.OwnerID != candidate.OwnerID || !w.IsActive {
			continue
		}

		loc, err := LoadLocation(w.Timezone)
		if err != nil {
			return false, fmt.Errorf("window %s: %w", w.ID, err)
		}

		localDate := LocalDate(candidate.StartUTC, loc)
		if !w.AppliesTo(localDate) {
			continue
		}

		windowStart, windowEnd, err := WindowBounds(w, localDate)
		if err != nil {
			return false, fmt.Errorf("window %s: %w", w.ID, err)
		}

		if !candidate.StartUTC.Before(windowStart) && !candidate.EndUTC.After(windowEnd) {
			return true, nil
		}
	}
	return false, nil
}
