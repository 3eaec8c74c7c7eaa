package update_booking_status

import "github.com/m04kA/SMC-SchedulingService/internal/service/sessions/models"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // live | completed | no_show
}

// ToServiceRequest конвертирует HTTP request в service request
func (r *UpdateStatusRequest) ToServiceRequest(userID string) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID: userID,
		Status: r.Status,
	}
}
