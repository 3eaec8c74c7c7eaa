package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetActiveByOwnerForDates(ctx context.Context, ownerID string, dates []time.Time) ([]domain.AvailabilityWindow, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetActiveByOwnerInRange(ctx context.Context, ownerID string, from, to time.Time) ([]domain.Session, error)
}

// SettingsProvider источник настроек владельца (с учетом значений по умолчанию)
type SettingsProvider interface {
	Resolve(ctx context.Context, ownerID string) (*domain.OwnerSettings, error)
}

// Metrics метрики генерации слотов
type Metrics interface {
	ObserveSlots(available, unavailable int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
