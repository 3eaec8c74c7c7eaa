package update_owner_settings

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model
// Все поля опциональны
type UpdateSettingsRequest struct {
	Timezone                      *string          `json:"timezone,omitempty"`
	DefaultSessionDurationMinutes *int             `json:"defaultSessionDurationMinutes,omitempty"`
	DefaultBufferMinutes          *int             `json:"defaultBufferMinutes,omitempty"`
	MinLeadTimeMinutes            *int             `json:"minLeadTimeMinutes,omitempty"`
	CancellationDeadlineHours     *int             `json:"cancellationDeadlineHours,omitempty"`
	PartialRefundPercent          *decimal.Decimal `json:"partialRefundPercent,omitempty"`
	ClearPartialRefund            bool             `json:"clearPartialRefund,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в service request
func (r *UpdateSettingsRequest) ToServiceRequest(ownerID, userID string) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:                        userID,
		OwnerID:                       ownerID,
		Timezone:                      r.Timezone,
		DefaultSessionDurationMinutes: r.DefaultSessionDurationMinutes,
		DefaultBufferMinutes:          r.DefaultBufferMinutes,
		MinLeadTimeMinutes:            r.MinLeadTimeMinutes,
		CancellationDeadlineHours:     r.CancellationDeadlineHours,
		PartialRefundPercent:          r.PartialRefundPercent,
		ClearPartialRefund:            r.ClearPartialRefund,
	}
}
