package cancel_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// refundNamespace пространство имен ключей идемпотентности возвратов
var refundNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("smc.scheduling.refund"))

// idempotencyKey ключ идемпотентности возврата по сессии
// Для одной сессии ключ всегда один и тот же, поэтому повторная отмена не приводит к двойному возврату
func idempotencyKey(sessionID string) string {
	return uuid.NewSHA1(refundNamespace, []byte(sessionID)).String()
}

// storedDecision восстанавливает решение о возврате, сохраненное при первой отмене
func storedDecision(s *domain.Session) (domain.RefundDecision, bool) {
	if s.RefundAmountCents == nil {
		return domain.RefundDecision{}, false
	}

	amount := *s.RefundAmountCents
	decision := domain.RefundDecision{
		AmountCents:  amount,
		IsFullRefund: amount == s.PaidAmountCents,
	}

	switch {
	case decision.IsFullRefund:
		decision.Kind = domain.RefundKindFull
	case amount == 0:
		decision.Kind = domain.RefundKindNone
	default:
		decision.Kind = domain.RefundKindPartial
	}

	if s.RefundReason != nil {
		decision.Reason = *s.RefundReason
	}

	return decision, true
}
