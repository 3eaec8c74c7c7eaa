package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundKind classifies a refund decision
type RefundKind string

const (
	RefundKindFull    RefundKind = "full"
	RefundKindPartial RefundKind = "partial"
	RefundKindNone    RefundKind = "none"
)

// CancellationPolicy defines how much of the paid amount is returned on cancellation.
// Cancelling at least CancellationDeadlineHours before the start gives a full refund;
// later cancellations get PartialRefundPercent (when configured) or nothing.
type CancellationPolicy struct {
	CancellationDeadlineHours int
	PartialRefundPercent      *decimal.Decimal
}

// HasPartialTier returns true if a positive partial refund percent is configured
func (p CancellationPolicy) HasPartialTier() bool {
	return p.PartialRefundPercent != nil && p.PartialRefundPercent.IsPositive()
}

// RefundDecision is the advisory result of a refund computation.
// It is only final once the payment service has executed it.
type RefundDecision struct {
	AmountCents  int64
	IsFullRefund bool
	Kind         RefundKind
	Reason       string
}

// OwnerSettings holds per-owner scheduling and cancellation configuration
type OwnerSettings struct {
	OwnerID                       string
	Timezone                      string
	DefaultSessionDurationMinutes int
	DefaultBufferMinutes          int
	MinLeadTimeMinutes            int
	CancellationDeadlineHours     int
	PartialRefundPercent          *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MinLeadTime returns the minimum lead time as a duration
func (s *OwnerSettings) MinLeadTime() time.Duration {
	return time.Duration(s.MinLeadTimeMinutes) * time.Minute
}

// CancellationPolicy returns the owner's cancellation policy
func (s *OwnerSettings) CancellationPolicy() CancellationPolicy {
	return CancellationPolicy{
		CancellationDeadlineHours: s.CancellationDeadlineHours,
		PartialRefundPercent:      s.PartialRefundPercent,
	}
}
