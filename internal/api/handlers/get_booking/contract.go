package get_booking

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/sessions/models"
)

// SessionService чтение одной сессии с проверкой, что пользователь - ее владелец или клиент
type SessionService interface {
	GetByID(ctx context.Context, id string, userID string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
