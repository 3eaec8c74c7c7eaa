package scheduling

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

var sessionStart = time.Date(2024, 6, 20, 15, 0, 0, 0, time.UTC)

func policy(deadlineHours int, pct string) domain.CancellationPolicy {
	p := domain.CancellationPolicy{CancellationDeadlineHours: deadlineHours}
	if pct != "" {
		p.PartialRefundPercent = ptr.Ptr(decimal.RequireFromString(pct))
	}
	return p
}

func TestComputeRefund_EarlyCancellationIsFull(t *testing.T) {
	now := sessionStart.Add(-48 * time.Hour)

	decision, err := ComputeRefund(10000, sessionStart, now, policy(24, ""))
	require.NoError(t, err)

	assert.Equal(t, int64(10000), decision.AmountCents)
	assert.True(t, decision.IsFullRefund)
	assert.Equal(t, domain.RefundKindFull, decision.Kind)
	assert.NotEmpty(t, decision.Reason)
}

func TestComputeRefund_LatePartialTier(t *testing.T) {
	now := sessionStart.Add(-3 * time.Hour)

	decision, err := ComputeRefund(10000, sessionStart, now, policy(24, "50"))
	require.NoError(t, err)

	assert.Equal(t, int64(5000), decision.AmountCents)
	assert.False(t, decision.IsFullRefund)
	assert.Equal(t, domain.RefundKindPartial, decision.Kind)
}

func TestComputeRefund_LateWithoutTierIsNone(t *testing.T) {
	now := sessionStart.Add(-time.Hour)

	decision, err := ComputeRefund(10000, sessionStart, now, policy(24, ""))
	require.NoError(t, err)

	assert.Equal(t, int64(0), decision.AmountCents)
	assert.False(t, decision.IsFullRefund)
	assert.Equal(t, domain.RefundKindNone, decision.Kind)
}

func TestComputeRefund_DeadlineBoundaryIsFull(t *testing.T) {
	now := sessionStart.Add(-24 * time.Hour)

	decision, err := ComputeRefund(10000, sessionStart, now, policy(24, "50"))
	require.NoError(t, err)
	assert.True(t, decision.IsFullRefund)

	decision, err = ComputeRefund(10000, sessionStart, now.Add(time.Second), policy(24, "50"))
	require.NoError(t, err)
	assert.Equal(t, int64(5000), decision.AmountCents)
}

func TestComputeRefund_AfterStartIsLate(t *testing.T) {
	now := sessionStart.Add(time.Hour)

	decision, err := ComputeRefund(10000, sessionStart, now, policy(24, "25"))
	require.NoError(t, err)
	assert.Equal(t, int64(2500), decision.AmountCents)
}

func TestComputeRefund_RoundsHalfUp(t *testing.T) {
	now := sessionStart.Add(-time.Hour)

	cases := []struct {
		paid int64
		pct  string
		want int64
	}{
		{paid: 999, pct: "50", want: 500},     // 499.5
		{paid: 1001, pct: "50", want: 501},    // 500.5
		{paid: 100, pct: "33.3", want: 33},    // 33.3
		{paid: 1000, pct: "33.35", want: 334}, // 333.5
		{paid: 3, pct: "10", want: 0},         // 0.3
	}

	for _, tc := range cases {
		decision, err := ComputeRefund(tc.paid, sessionStart, now, policy(24, tc.pct))
		require.NoError(t, err)
		assert.Equal(t, tc.want, decision.AmountCents, "paid=%d pct=%s", tc.paid, tc.pct)
	}
}

func TestComputeRefund_HundredPercentTierIsFull(t *testing.T) {
	decision, err := ComputeRefund(10000, sessionStart, sessionStart.Add(-time.Hour), policy(24, "100"))
	require.NoError(t, err)

	assert.Equal(t, int64(10000), decision.AmountCents)
	assert.True(t, decision.IsFullRefund)
	assert.Equal(t, domain.RefundKindFull, decision.Kind)
}

func TestComputeRefund_NoPayment(t *testing.T) {
	decision, err := ComputeRefund(0, sessionStart, sessionStart.Add(-time.Hour), policy(24, ""))
	require.NoError(t, err)

	assert.Equal(t, int64(0), decision.AmountCents)
	assert.True(t, decision.IsFullRefund)
	assert.Equal(t, "No payment to refund", decision.Reason)
}

func TestComputeRefund_Bounds(t *testing.T) {
	policies := []domain.CancellationPolicy{policy(24, ""), policy(24, "50"), policy(0, ""), policy(72, "12.5")}
	paid := []int64{1, 99, 10000, 123457}

	for _, p := range policies {
		for _, amount := range paid {
			for offset := -96; offset <= 96; offset += 7 {
				now := sessionStart.Add(time.Duration(offset) * time.Hour)
				decision, err := ComputeRefund(amount, sessionStart, now, p)
				require.NoError(t, err)

				assert.GreaterOrEqual(t, decision.AmountCents, int64(0))
				assert.LessOrEqual(t, decision.AmountCents, amount)
				assert.Equal(t, decision.AmountCents == amount, decision.IsFullRefund)
			}
		}
	}
}

func TestComputeRefund_MonotonicInLeadTime(t *testing.T) {
	p := policy(24, "40")

	var previous int64 = -1
	// now moves toward the start, so lead time shrinks: refunds must never grow
	for offset := -72; offset <= 6; offset++ {
		now := sessionStart.Add(time.Duration(offset) * time.Hour)
		decision, err := ComputeRefund(7777, sessionStart, now, p)
		require.NoError(t, err)

		if previous >= 0 {
			assert.LessOrEqual(t, decision.AmountCents, previous, "offset %d", offset)
		}
		previous = decision.AmountCents
	}
}

func TestComputeRefund_InvalidInput(t *testing.T) {
	now := sessionStart.Add(-time.Hour)

	_, err := ComputeRefund(-1, sessionStart, now, policy(24, ""))
	assert.ErrorIs(t, err, domain.ErrInvalidPolicy)

	_, err = ComputeRefund(100, sessionStart, now, policy(-1, ""))
	assert.ErrorIs(t, err, domain.ErrInvalidPolicy)

	_, err = ComputeRefund(100, sessionStart, now, policy(24, "100.01"))
	assert.ErrorIs(t, err, domain.ErrInvalidPolicy)

	_, err = ComputeRefund(100, sessionStart, now, policy(24, "-5"))
	assert.ErrorIs(t, err, domain.ErrInvalidPolicy)
}
