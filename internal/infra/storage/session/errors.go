package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с активной сессией владельца
	// (сработало ограничение sessions_no_overlap)
	ErrSlotNotAvailable = errors.New("session.repository: slot not available")

	// ErrConcurrentModification возвращается, когда PostgreSQL откатил сериализуемую транзакцию
	ErrConcurrentModification = errors.New("session.repository: concurrent modification")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")

	// ErrStatusConflict возвращается, когда сессия уже не в ожидаемом статусе
	ErrStatusConflict = errors.New("session.repository: session status changed")
)
