package webinar

import "errors"

var (
	// ErrWebinarNotFound возвращается, когда вебинар не найден
	ErrWebinarNotFound = errors.New("webinar.repository: webinar not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("webinar.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("webinar.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("webinar.repository: failed to scan row")
)
