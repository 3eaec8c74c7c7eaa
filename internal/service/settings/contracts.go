package settings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек владельцев
type SettingsRepository interface {
	Get(ctx context.Context, ownerID string) (*domain.OwnerSettings, error)
	Upsert(ctx context.Context, s *domain.OwnerSettings) (*domain.OwnerSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
