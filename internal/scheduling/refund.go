package scheduling

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ValidatePolicy checks the cancellation policy bounds
func ValidatePolicy(policy domain.CancellationPolicy) error {
	if policy.CancellationDeadlineHours < 0 {
		return fmt.Errorf("%w: negative cancellation deadline %d", domain.ErrInvalidPolicy, policy.CancellationDeadlineHours)
	}
	if pct := policy.PartialRefundPercent; pct != nil {
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return fmt.Errorf("%w: partial refund percent %s out of range 0-100", domain.ErrInvalidPolicy, pct.String())
		}
	}
	return nil
}

// ComputeRefund decides how much of paidAmountCents is returned when a session
// starting at sessionStart is cancelled at now.
//
// Cancelling at least CancellationDeadlineHours before the start refunds in full.
// A later cancellation refunds PartialRefundPercent of the payment, rounded half
// up to whole cents, or nothing when no partial tier is configured. A cancellation
// after the start is treated as late. The decision is advisory: the caller
// executes it through the payment service.
func ComputeRefund(
	paidAmountCents int64,
	sessionStart time.Time,
	now time.Time,
	policy domain.CancellationPolicy,
) (domain.RefundDecision, error) {
	if paidAmountCents < 0 {
		return domain.RefundDecision{}, fmt.Errorf("%w: negative paid amount %d", domain.ErrInvalidPolicy, paidAmountCents)
	}
	if err := ValidatePolicy(policy); err != nil {
		return domain.RefundDecision{}, err
	}

	if paidAmountCents == 0 {
		return domain.RefundDecision{
			AmountCents:  0,
			IsFullRefund: true,
			Kind:         domain.RefundKindFull,
			Reason:       "No payment to refund",
		}, nil
	}

	deadline := time.Duration(policy.CancellationDeadlineHours) * time.Hour
	if sessionStart.Sub(now) >= deadline {
		return domain.RefundDecision{
			AmountCents:  paidAmountCents,
			IsFullRefund: true,
			Kind:         domain.RefundKindFull,
			Reason:       fmt.Sprintf("Cancelled at least %d hours before the session start: full refund", policy.CancellationDeadlineHours),
		}, nil
	}

	if !policy.HasPartialTier() {
		return domain.RefundDecision{
			AmountCents:  0,
			IsFullRefund: false,
			Kind:         domain.RefundKindNone,
			Reason:       fmt.Sprintf("Cancelled less than %d hours before the session start: no refund", policy.CancellationDeadlineHours),
		}, nil
	}

	pct := *policy.PartialRefundPercent
	amount := decimal.NewFromInt(paidAmountCents).Mul(pct).Div(hundred).Round(0).IntPart()
	if amount > paidAmountCents {
		amount = paidAmountCents
	}

	kind := domain.RefundKindPartial
	if amount == paidAmountCents {
		kind = domain.RefundKindFull
	}

	return domain.RefundDecision{
		AmountCents:  amount,
		IsFullRefund: amount == paidAmountCents,
		Kind:         kind,
		Reason: fmt.Sprintf("Cancelled less than %d hours before the session start: %s%% refund",
			policy.CancellationDeadlineHours, pct.String()),
	}, nil
}
