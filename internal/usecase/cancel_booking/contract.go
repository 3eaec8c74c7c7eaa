package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/paymentservice"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	MarkCancelled(ctx context.Context, id string, cancelledAt time.Time, reason *string, decision domain.RefundDecision) error
}

// SettingsProvider источник настроек владельца (с учетом значений по умолчанию)
type SettingsProvider interface {
	Resolve(ctx context.Context, ownerID string) (*domain.OwnerSettings, error)
}

// PaymentServiceClient интерфейс клиента для PaymentService
type PaymentServiceClient interface {
	IssueFullRefund(ctx context.Context, req paymentservice.RefundRequest) (*paymentservice.RefundResponse, error)
	IssuePartialRefund(ctx context.Context, req paymentservice.RefundRequest) (*paymentservice.RefundResponse, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики решений о возврате
type Metrics interface {
	ObserveRefundDecision(kind string)
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
