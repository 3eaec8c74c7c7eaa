package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_booking"
)

// CancelRequest HTTP request model (тело запроса опционально)
type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelResponse HTTP response model
type CancelResponse struct {
	SessionID        string         `json:"sessionId"`
	Status           string         `json:"status"`
	CancelledAt      string         `json:"cancelledAt"`
	AlreadyCancelled bool           `json:"alreadyCancelled"`
	Refund           RefundResponse `json:"refund"`
}

// RefundResponse HTTP response model
type RefundResponse struct {
	AmountCents int64   `json:"amountCents"`
	IsFull      bool    `json:"isFull"`
	Kind        string  `json:"kind"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	RefundID    *string `json:"refundId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *CancelRequest) ToUseCaseRequest(sessionID, userID string) *cancelBooking.Request {
	return &cancelBooking.Request{
		UserID:    userID,
		SessionID: sessionID,
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует use case response в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelResponse {
	return &CancelResponse{
		SessionID:        resp.SessionID,
		Status:           string(resp.Status),
		CancelledAt:      resp.CancelledAt.UTC().Format(time.RFC3339),
		AlreadyCancelled: resp.AlreadyCancelled,
		Refund: RefundResponse{
			AmountCents: resp.RefundAmountCents,
			IsFull:      resp.IsFullRefund,
			Kind:        string(resp.RefundKind),
			Reason:      resp.RefundReason,
			Status:      string(resp.RefundStatus),
			RefundID:    resp.RefundID,
		},
	}
}
