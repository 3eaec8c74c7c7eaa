package cancel_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("cancel_booking: session not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец и не клиент сессии
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrInvalidStatus возвращается, когда сессия уже завершена
	ErrInvalidStatus = errors.New("cancel_booking: session cannot be cancelled in current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
