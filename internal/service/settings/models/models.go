package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек владельца
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	UserID                        string           `json:"userId"`
	OwnerID                       string           `json:"ownerId"`
	Timezone                      *string          `json:"timezone,omitempty"`
	DefaultSessionDurationMinutes *int             `json:"defaultSessionDurationMinutes,omitempty"`
	DefaultBufferMinutes          *int             `json:"defaultBufferMinutes,omitempty"`
	MinLeadTimeMinutes            *int             `json:"minLeadTimeMinutes,omitempty"`
	CancellationDeadlineHours     *int             `json:"cancellationDeadlineHours,omitempty"`
	PartialRefundPercent          *decimal.Decimal `json:"partialRefundPercent,omitempty"`
	ClearPartialRefund            bool             `json:"clearPartialRefund,omitempty"` // Убрать частичный возврат
}

// Response модели

// SettingsResponse ответ с настройками владельца
type SettingsResponse struct {
	OwnerID                       string           `json:"ownerId"`
	Timezone                      string           `json:"timezone"`
	DefaultSessionDurationMinutes int              `json:"defaultSessionDurationMinutes"`
	DefaultBufferMinutes          int              `json:"defaultBufferMinutes"`
	MinLeadTimeMinutes            int              `json:"minLeadTimeMinutes"`
	CancellationDeadlineHours     int              `json:"cancellationDeadlineHours"`
	PartialRefundPercent          *decimal.Decimal `json:"partialRefundPercent,omitempty"`
	IsDefault                     bool             `json:"isDefault"` // Владелец ещё не сохранял свои настройки
	UpdatedAt                     *time.Time       `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.OwnerSettings, isDefault bool) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		OwnerID:                       s.OwnerID,
		Timezone:                      s.Timezone,
		DefaultSessionDurationMinutes: s.DefaultSessionDurationMinutes,
		DefaultBufferMinutes:          s.DefaultBufferMinutes,
		MinLeadTimeMinutes:            s.MinLeadTimeMinutes,
		CancellationDeadlineHours:     s.CancellationDeadlineHours,
		PartialRefundPercent:          s.PartialRefundPercent,
		IsDefault:                     isDefault,
	}

	if !isDefault {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
