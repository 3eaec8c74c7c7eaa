package create_booking

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда интервал пересекается с активной сессией
	// (в том числе созданной параллельным запросом)
	ErrSlotNotAvailable = errors.New("create_booking: slot is no longer available")

	// ErrPastBooking возвращается, когда время начала раньше now + минимальное время до начала
	ErrPastBooking = errors.New("create_booking: booking time has already passed")

	// ErrOutsideAvailability возвращается, когда интервал не покрыт ни одним окном доступности
	ErrOutsideAvailability = errors.New("create_booking: requested time is outside of availability")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Причины отказа для метрик
const (
	rejectionConflict     = "conflict"
	rejectionPast         = "past"
	rejectionOutside      = "outside_availability"
	rejectionInvalidInput = "invalid_input"
)
