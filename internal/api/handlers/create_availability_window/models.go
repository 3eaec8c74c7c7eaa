package create_availability_window

import "github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"

// CreateWindowRequest HTTP request model
type CreateWindowRequest struct {
	IsRecurring            bool    `json:"isRecurring"`
	DayOfWeek              *int    `json:"dayOfWeek,omitempty"`
	Date                   *string `json:"date,omitempty"`
	StartTime              string  `json:"startTime"`
	EndTime                string  `json:"endTime"`
	Timezone               *string `json:"timezone,omitempty"`
	SessionDurationMinutes *int    `json:"sessionDurationMinutes,omitempty"`
	BufferMinutes          *int    `json:"bufferMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в service request
func (r *CreateWindowRequest) ToServiceRequest(ownerID, userID string) *models.CreateWindowRequest {
	return &models.CreateWindowRequest{
		UserID:                 userID,
		OwnerID:                ownerID,
		IsRecurring:            r.IsRecurring,
		DayOfWeek:              r.DayOfWeek,
		Date:                   r.Date,
		StartTime:              r.StartTime,
		EndTime:                r.EndTime,
		Timezone:               r.Timezone,
		SessionDurationMinutes: r.SessionDurationMinutes,
		BufferMinutes:          r.BufferMinutes,
	}
}
