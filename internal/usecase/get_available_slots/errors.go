package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidConfiguration возвращается, когда окно доступности владельца содержит
	// некорректные данные (например, неизвестный часовой пояс)
	ErrInvalidConfiguration = errors.New("get_available_slots: invalid availability configuration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
