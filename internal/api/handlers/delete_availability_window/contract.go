package delete_availability_window

import "context"

type AvailabilityService interface {
	DeactivateWindow(ctx context.Context, ownerID, windowID, userID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
