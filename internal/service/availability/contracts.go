package availability

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	GetByID(ctx context.Context, id string) (*domain.AvailabilityWindow, error)
	GetActiveByOwner(ctx context.Context, ownerID string) ([]domain.AvailabilityWindow, error)
	Deactivate(ctx context.Context, id string) error
	DeactivateAllByOwner(ctx context.Context, ownerID string) (int64, error)
}

// SettingsProvider источник действующих настроек владельца
type SettingsProvider interface {
	Resolve(ctx context.Context, ownerID string) (*domain.OwnerSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
