package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// CreateWindowRequest запрос на создание окна доступности
// Для еженедельного окна задаётся DayOfWeek, для разового - Date
type CreateWindowRequest struct {
	UserID                 string  `json:"userId"`
	OwnerID                string  `json:"ownerId"`
	IsRecurring            bool    `json:"isRecurring"`
	DayOfWeek              *int    `json:"dayOfWeek,omitempty"` // 0-6, воскресенье = 0
	Date                   *string `json:"date,omitempty"`      // "2025-10-15"
	StartTime              string  `json:"startTime"`           // "09:00"
	EndTime                string  `json:"endTime"`             // "18:00"
	Timezone               *string `json:"timezone,omitempty"`  // по умолчанию часовой пояс владельца
	SessionDurationMinutes *int    `json:"sessionDurationMinutes,omitempty"`
	BufferMinutes          *int    `json:"bufferMinutes,omitempty"`
}

// Response модели

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID                     string    `json:"id"`
	OwnerID                string    `json:"ownerId"`
	IsRecurring            bool      `json:"isRecurring"`
	DayOfWeek              *int      `json:"dayOfWeek,omitempty"`
	Date                   *string   `json:"date,omitempty"`
	StartTime              string    `json:"startTime"`
	EndTime                string    `json:"endTime"`
	Timezone               string    `json:"timezone"`
	SessionDurationMinutes int       `json:"sessionDurationMinutes"`
	BufferMinutes          int       `json:"bufferMinutes"`
	CreatedAt              time.Time `json:"createdAt"`
}

// WindowListResponse ответ со списком окон доступности
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// ClearScheduleResponse ответ на очистку расписания
type ClearScheduleResponse struct {
	Deactivated int64 `json:"deactivated"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	resp := &WindowResponse{
		ID:                     w.ID,
		OwnerID:                w.OwnerID,
		IsRecurring:            w.IsRecurring,
		DayOfWeek:              w.DayOfWeek,
		StartTime:              w.StartTime.String(),
		EndTime:                w.EndTime.String(),
		Timezone:               w.Timezone,
		SessionDurationMinutes: w.SessionDurationMinutes,
		BufferMinutes:          w.BufferMinutes,
		CreatedAt:              w.CreatedAt,
	}

	if w.Date != nil {
		date := w.Date.Format(domain.DateFormat)
		resp.Date = &date
	}

	return resp
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []domain.AvailabilityWindow) *WindowListResponse {
	resp := &WindowListResponse{
		Windows: make([]WindowResponse, 0, len(windows)),
	}

	for i := range windows {
		resp.Windows = append(resp.Windows, *FromDomainWindow(&windows[i]))
	}

	return resp
}
