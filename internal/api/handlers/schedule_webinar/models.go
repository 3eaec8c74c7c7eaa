package schedule_webinar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	scheduleWebinar "github.com/m04kA/SMC-SchedulingService/internal/usecase/schedule_webinar"
)

// ScheduleWebinarRequest HTTP request model
type ScheduleWebinarRequest struct {
	Title           string         `json:"title"`
	AnchorDate      string         `json:"anchorDate"` // "2025-03-24"
	StartTime       string         `json:"startTime"`  // "18:00"
	DurationMinutes int            `json:"durationMinutes"`
	Timezone        *string        `json:"timezone,omitempty"`
	PriceCents      int64          `json:"priceCents"`
	Recurrence      RecurrenceRule `json:"recurrence"`
}

// RecurrenceRule HTTP request model
type RecurrenceRule struct {
	Frequency string  `json:"frequency"` // daily | weekly
	Interval  int     `json:"interval,omitempty"`
	ByWeekday []int   `json:"byWeekday,omitempty"`
	Count     int     `json:"count,omitempty"`
	Until     *string `json:"until,omitempty"` // "2025-06-30"
}

// WebinarResponse HTTP response model
type WebinarResponse struct {
	WebinarID string               `json:"webinarId"`
	OwnerID   string               `json:"ownerId"`
	Title     string               `json:"title"`
	Timezone  string               `json:"timezone"`
	Sessions  []OccurrenceResponse `json:"sessions"`
}

// OccurrenceResponse HTTP response model
type OccurrenceResponse struct {
	SessionID string `json:"sessionId"`
	LocalDate string `json:"localDate"`
	StartUTC  string `json:"startUtc"`
	EndUTC    string `json:"endUtc"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *ScheduleWebinarRequest) ToUseCaseRequest(ownerID, userID string) (*scheduleWebinar.Request, error) {
	anchor, err := time.Parse(domain.DateFormat, r.AnchorDate)
	if err != nil {
		return nil, fmt.Errorf("invalid anchorDate: %w", err)
	}

	req := &scheduleWebinar.Request{
		UserID:          userID,
		OwnerID:         ownerID,
		Title:           r.Title,
		AnchorDate:      anchor,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Timezone:        r.Timezone,
		PriceCents:      r.PriceCents,
		Frequency:       r.Recurrence.Frequency,
		Interval:        r.Recurrence.Interval,
		ByWeekday:       r.Recurrence.ByWeekday,
		Count:           r.Recurrence.Count,
	}

	if r.Recurrence.Until != nil {
		until, err := time.Parse(domain.DateFormat, *r.Recurrence.Until)
		if err != nil {
			return nil, fmt.Errorf("invalid until: %w", err)
		}
		req.Until = &until
	}

	return req, nil
}

// FromUseCaseResponse конвертирует use case response в HTTP response
func FromUseCaseResponse(resp *scheduleWebinar.Response) *WebinarResponse {
	result := &WebinarResponse{
		WebinarID: resp.WebinarID,
		OwnerID:   resp.OwnerID,
		Title:     resp.Title,
		Timezone:  resp.Timezone,
		Sessions:  make([]OccurrenceResponse, 0, len(resp.Sessions)),
	}

	for _, o := range resp.Sessions {
		result.Sessions = append(result.Sessions, OccurrenceResponse{
			SessionID: o.SessionID,
			LocalDate: o.LocalDate.Format(domain.DateFormat),
			StartUTC:  o.StartUTC.UTC().Format(time.RFC3339),
			EndUTC:    o.EndUTC.UTC().Format(time.RFC3339),
		})
	}

	return result
}
