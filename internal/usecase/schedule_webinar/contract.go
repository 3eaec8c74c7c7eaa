package schedule_webinar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// WebinarRepository интерфейс репозитория вебинаров
type WebinarRepository interface {
	Create(ctx context.Context, webinar *domain.Webinar) (*domain.Webinar, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetActiveByOwnerInRange(ctx context.Context, ownerID string, from, to time.Time) ([]domain.Session, error)
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
}

// SettingsProvider источник настроек владельца (с учетом значений по умолчанию)
type SettingsProvider interface {
	Resolve(ctx context.Context, ownerID string) (*domain.OwnerSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
