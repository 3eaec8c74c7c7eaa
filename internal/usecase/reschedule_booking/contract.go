package reschedule_booking

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
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	GetActiveByOwnerInRange(ctx context.Context, ownerID string, from, to time.Time) ([]domain.Session, error)
	Reschedule(ctx context.Context, id string, startUTC, endUTC time.Time) error
}

// SettingsProvider источник настроек владельца (с учетом значений по умолчанию)
type SettingsProvider interface {
	Resolve(ctx context.Context, ownerID string) (*domain.OwnerSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики отклоненных бронирований
type Metrics interface {
	ObserveBookingRejection(reason string)
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
