package get_owner_bookings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/sessions/models"
)

type SessionService interface {
	GetOwnerSessions(ctx context.Context, req *models.GetOwnerSessionsRequest) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
