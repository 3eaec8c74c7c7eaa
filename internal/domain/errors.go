package domain

import "errors"

// Error kinds of the scheduling core. Details are attached with fmt.Errorf("%w: ...")
// so callers match them with errors.Is.
var (
	// ErrInvalidTimezone is returned for an unrecognized IANA timezone id.
	// Not retryable: the owner's configuration must be fixed.
	ErrInvalidTimezone = errors.New("scheduling: invalid timezone")

	// ErrInvalidTime is returned for malformed time data: a non HH:MM time,
	// startTime >= endTime, non-positive slot duration or negative buffer.
	ErrInvalidTime = errors.New("scheduling: invalid time")

	// ErrInvalidRecurrence is returned for a recurrence rule that is malformed
	// or could never terminate.
	ErrInvalidRecurrence = errors.New("scheduling: invalid recurrence rule")

	// ErrInvalidPolicy is returned for a cancellation policy or payment amount
	// outside of the allowed ranges.
	ErrInvalidPolicy = errors.New("scheduling: invalid cancellation policy")

	// ErrSlotNoLongerAvailable is returned when the requested interval conflicts
	// with an active session. Retry with another slot, not the same one.
	ErrSlotNoLongerAvailable = errors.New("scheduling: slot is no longer available")

	// ErrPastBooking is returned when the requested start is before now + minimum lead time.
	ErrPastBooking = errors.New("scheduling: booking time has already passed")

	// ErrOutsideAvailability is returned when the requested interval is not
	// fully covered by any availability window of the owner.
	ErrOutsideAvailability = errors.New("scheduling: requested time is outside of availability")
)
