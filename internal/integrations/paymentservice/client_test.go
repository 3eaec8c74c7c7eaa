package paymentservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

func newTestClient(url string, retries uint64) *Client {
	c := NewClient(url, "secret", time.Second, retries, logger.NewNop())
	c.baseDelay = time.Millisecond
	return c
}

func TestIssuePartialRefund_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/payments/pay-1/refunds", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))

		var body refundBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(5000), body.AmountCents)
		assert.False(t, body.Full)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(RefundResponse{RefundID: "r-1", PaymentID: "pay-1", AmountCents: 5000, Status: "succeeded"})
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL, 0).IssuePartialRefund(context.Background(), RefundRequest{
		PaymentID:      "pay-1",
		AmountCents:    5000,
		Reason:         "late cancellation",
		IdempotencyKey: "key-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "r-1", resp.RefundID)
	assert.Equal(t, int64(5000), resp.AmountCents)
}

func TestIssueFullRefund_ConflictMeansAlreadyRefunded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body refundBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body.Full)
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL, 0).IssueFullRefund(context.Background(), RefundRequest{
		PaymentID:      "pay-1",
		AmountCents:    10000,
		IdempotencyKey: "key-1",
	})
	require.NoError(t, err)
	assert.Equal(t, RefundStatusAlreadyRefunded, resp.Status)
}

func TestRefund_RetriesServerErrorsWithSameKey(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-2", r.Header.Get("Idempotency-Key"))
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(RefundResponse{RefundID: "r-2", Status: "succeeded"})
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL, 3).IssueFullRefund(context.Background(), RefundRequest{
		PaymentID:      "pay-2",
		AmountCents:    100,
		IdempotencyKey: "key-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "r-2", resp.RefundID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRefund_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 2).IssueFullRefund(context.Background(), RefundRequest{
		PaymentID:      "pay-3",
		AmountCents:    100,
		IdempotencyKey: "key-3",
	})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRefund_ClientErrorsAreNotRetried(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrPaymentNotFound},
		{http.StatusUnprocessableEntity, ErrRefundRejected},
		{http.StatusBadRequest, ErrRefundRejected},
		{http.StatusTeapot, ErrInvalidResponse},
	}

	for _, tc := range cases {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(tc.status)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Code: tc.status, Message: "nope"})
		}))

		_, err := newTestClient(server.URL, 3).IssuePartialRefund(context.Background(), RefundRequest{
			PaymentID:      "pay-4",
			AmountCents:    100,
			IdempotencyKey: "key-4",
		})
		server.Close()

		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "status %d", tc.status)
	}
}

func TestRefund_RequiresKeyAndPayment(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0", 0)

	_, err := c.IssueFullRefund(context.Background(), RefundRequest{PaymentID: "pay"})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = c.IssueFullRefund(context.Background(), RefundRequest{IdempotencyKey: "k"})
	assert.ErrorIs(t, err, ErrInternal)
}
