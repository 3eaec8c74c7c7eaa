package reschedule_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает разобранное время начала
func validateRequest(req *Request) (types.TimeOfDay, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return types.TimeOfDay{}, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.SessionID) == "" {
		return types.TimeOfDay{}, fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return types.TimeOfDay{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	startTime, err := types.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return types.TimeOfDay{}, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	return startTime, nil
}

// checkAccess переносить сессию могут только её владелец и клиент
func checkAccess(session *domain.Session, userID string) error {
	if session.OwnerID != userID && session.ClientID != userID {
		return ErrAccessDenied
	}
	return nil
}

func candidateDates(date time.Time) []time.Time {
	day := domain.DateOnly(date)
	return []time.Time{day.AddDate(0, 0, -1), day, day.AddDate(0, 0, 1)}
}
