package schedule_webinar

import "errors"

var (
	// ErrAccessDenied возвращается, когда вебинар создает не владелец расписания
	ErrAccessDenied = errors.New("schedule_webinar: access denied")

	// ErrInvalidRecurrence возвращается для некорректного или пустого правила повторения
	ErrInvalidRecurrence = errors.New("schedule_webinar: invalid recurrence rule")

	// ErrTooManyOccurrences возвращается, когда правило порождает больше сессий, чем разрешено
	ErrTooManyOccurrences = errors.New("schedule_webinar: too many occurrences")

	// ErrPastOccurrence возвращается, когда первая сессия начинается в прошлом
	ErrPastOccurrence = errors.New("schedule_webinar: first occurrence is in the past")

	// ErrScheduleConflict возвращается, когда одна из сессий пересекается с активной сессией владельца
	ErrScheduleConflict = errors.New("schedule_webinar: occurrence conflicts with existing session")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule_webinar: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("schedule_webinar: internal error")
)
