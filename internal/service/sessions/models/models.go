package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// GetOwnerSessionsRequest запрос на получение сессий владельца
type GetOwnerSessionsRequest struct {
	UserID          string     `json:"userId"`
	OwnerID         string     `json:"ownerId"`
	From            *time.Time `json:"from,omitempty"`            // Начало периода по start_utc (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода по start_utc (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetOwnerSessionsRequest) ToDomainFilter() (domain.OwnerSessionsFilter, error) {
	filter := domain.OwnerSessionsFilter{
		OwnerID:         r.OwnerID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, ok := domain.ParseSessionStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// GetClientSessionsRequest запрос на получение сессий клиента
type GetClientSessionsRequest struct {
	UserID string  `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса сессии
type UpdateStatusRequest struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID              string  `json:"id"`
	OwnerID         string  `json:"ownerId"`
	ClientID        string  `json:"clientId,omitempty"`
	WebinarID       *string `json:"webinarId,omitempty"`
	StartUTC        string  `json:"startUtc"` // RFC 3339
	EndUTC          string  `json:"endUtc"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	PaidAmountCents int64   `json:"paidAmountCents"`

	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	RefundAmountCents  *int64  `json:"refundAmountCents,omitempty"`
	RefundReason       *string `json:"refundReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListResponse ответ со списком сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:                 s.ID,
		OwnerID:            s.OwnerID,
		ClientID:           s.ClientID,
		WebinarID:          s.WebinarID,
		StartUTC:           s.StartUTC.UTC().Format(time.RFC3339),
		EndUTC:             s.EndUTC.UTC().Format(time.RFC3339),
		DurationMinutes:    int(s.Duration() / time.Minute),
		Status:             string(s.Status),
		PaidAmountCents:    s.PaidAmountCents,
		CancellationReason: s.CancellationReason,
		RefundAmountCents:  s.RefundAmountCents,
		RefundReason:       s.RefundReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}

	if s.CancelledAt != nil {
		cancelled := s.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []domain.Session) *SessionListResponse {
	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, 0, len(sessions)),
	}

	for i := range sessions {
		resp.Sessions = append(resp.Sessions, *FromDomainSession(&sessions[i]))
	}

	return resp
}
