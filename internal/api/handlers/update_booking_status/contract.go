package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/sessions/models"
)

type SessionService interface {
	UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
