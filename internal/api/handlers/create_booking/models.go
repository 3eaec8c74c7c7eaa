package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	OwnerID         string  `json:"ownerId"`
	Date            string  `json:"date"`      // "2025-03-10"
	StartTime       string  `json:"startTime"` // "09:00"
	Timezone        *string `json:"timezone,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	PaymentID       *string `json:"paymentId,omitempty"`
	PaidAmountCents int64   `json:"paidAmountCents"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string  `json:"id"`
	OwnerID         string  `json:"ownerId"`
	ClientID        string  `json:"clientId"`
	StartUTC        string  `json:"startUtc"`
	EndUTC          string  `json:"endUtc"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	PaymentID       *string `json:"paymentId,omitempty"`
	PaidAmountCents int64   `json:"paidAmountCents"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		OwnerID:         r.OwnerID,
		Date:            date,
		StartTime:       r.StartTime,
		Timezone:        r.Timezone,
		DurationMinutes: r.DurationMinutes,
		PaymentID:       r.PaymentID,
		PaidAmountCents: r.PaidAmountCents,
	}, nil
}

// FromUseCaseResponse конвертирует use case response в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		OwnerID:         resp.OwnerID,
		ClientID:        resp.ClientID,
		StartUTC:        resp.StartUTC.UTC().Format(time.RFC3339),
		EndUTC:          resp.EndUTC.UTC().Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
		PaymentID:       resp.PaymentID,
		PaidAmountCents: resp.PaidAmountCents,
		CreatedAt:       resp.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
