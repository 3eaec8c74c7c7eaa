package sessions

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	GetByOwner(ctx context.Context, filter domain.OwnerSessionsFilter) ([]domain.Session, error)
	GetByClient(ctx context.Context, clientID string, status *domain.SessionStatus) ([]domain.Session, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.SessionStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
