package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// RefundStatus результат исполнения решения о возврате
type RefundStatus string

const (
	RefundStatusNotRequired     RefundStatus = "not_required"     // Возвращать нечего
	RefundStatusIssued          RefundStatus = "issued"           // PaymentService принял возврат
	RefundStatusAlreadyRefunded RefundStatus = "already_refunded" // Возврат уже был выполнен ранее
	RefundStatusFailed          RefundStatus = "failed"           // Возврат не выполнен, повторите отмену
)

// Request модель запроса на отмену сессии
type Request struct {
	UserID    string  // ID пользователя (владелец или клиент сессии)
	SessionID string  // ID отменяемой сессии
	Reason    *string // Причина отмены (опционально)
}

// Response модель ответа с результатом отмены
type Response struct {
	SessionID        string
	Status           domain.SessionStatus
	CancelledAt      time.Time
	AlreadyCancelled bool

	RefundAmountCents int64
	IsFullRefund      bool
	RefundKind        domain.RefundKind
	RefundReason      string
	RefundStatus      RefundStatus
	RefundID          *string
}
