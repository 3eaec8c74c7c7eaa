package reschedule_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("reschedule_booking: session not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец и не клиент сессии
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrInvalidStatus возвращается, когда сессию нельзя перенести (уже идет, отменена или завершена)
	ErrInvalidStatus = errors.New("reschedule_booking: session cannot be rescheduled in current status")

	// ErrSlotNotAvailable возвращается, когда новый интервал пересекается с другой активной сессией
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is no longer available")

	// ErrPastBooking возвращается, когда новое время начала раньше now + минимальное время до начала
	ErrPastBooking = errors.New("reschedule_booking: booking time has already passed")

	// ErrOutsideAvailability возвращается, когда новый интервал не покрыт окном доступности
	ErrOutsideAvailability = errors.New("reschedule_booking: requested time is outside of availability")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)

// Причины отказа для метрик
const (
	rejectionConflict = "conflict"
	rejectionPast     = "past"
	rejectionOutside  = "outside_availability"
)
