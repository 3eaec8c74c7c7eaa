package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date      string  `json:"date"`      // "2025-06-02"
	StartTime string  `json:"startTime"` // "14:00"
	Timezone  *string `json:"timezone,omitempty"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID               string `json:"id"`
	OwnerID          string `json:"ownerId"`
	ClientID         string `json:"clientId"`
	StartUTC         string `json:"startUtc"`
	EndUTC           string `json:"endUtc"`
	PreviousStartUTC string `json:"previousStartUtc"`
	DurationMinutes  int    `json:"durationMinutes"`
	Status           string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *RescheduleRequest) ToUseCaseRequest(sessionID, userID string) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		UserID:    userID,
		SessionID: sessionID,
		Date:      date,
		StartTime: r.StartTime,
		Timezone:  r.Timezone,
	}, nil
}

// FromUseCaseResponse конвертирует use case response в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:               resp.ID,
		OwnerID:          resp.OwnerID,
		ClientID:         resp.ClientID,
		StartUTC:         resp.StartUTC.UTC().Format(time.RFC3339),
		EndUTC:           resp.EndUTC.UTC().Format(time.RFC3339),
		PreviousStartUTC: resp.PreviousStartUTC.UTC().Format(time.RFC3339),
		DurationMinutes:  resp.DurationMinutes,
		Status:           string(resp.Status),
	}
}
