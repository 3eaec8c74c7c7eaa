package schedule_webinar

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает разобранное время начала
func validateRequest(req *Request) (types.TimeOfDay, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return types.TimeOfDay{}, fmt.Errorf("%w: ownerID is required", ErrInvalidInput)
	}

	// Вебинар может создать только владелец расписания
	if req.UserID != req.OwnerID {
		return types.TimeOfDay{}, ErrAccessDenied
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return types.TimeOfDay{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > domain.MaxWebinarTitleLength {
		return types.TimeOfDay{}, fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxWebinarTitleLength)
	}

	if req.AnchorDate.IsZero() {
		return types.TimeOfDay{}, fmt.Errorf("%w: anchorDate is required", ErrInvalidInput)
	}

	startTime, err := types.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return types.TimeOfDay{}, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < domain.MinSessionDurationMinutes || req.DurationMinutes > domain.MaxSessionDurationMinutes {
		return types.TimeOfDay{}, fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	if req.PriceCents < 0 {
		return types.TimeOfDay{}, fmt.Errorf("%w: priceCents must be non-negative", ErrInvalidInput)
	}

	return startTime, nil
}

// buildRule собирает правило повторения из запроса
func buildRule(req *Request) domain.RecurrenceRule {
	interval := req.Interval
	if interval == 0 {
		interval = 1
	}

	rule := domain.RecurrenceRule{
		Frequency: domain.Frequency(strings.ToLower(req.Frequency)),
		Interval:  interval,
		ByWeekday: req.ByWeekday,
		Count:     req.Count,
	}
	if req.Until != nil {
		until := domain.DateOnly(*req.Until)
		rule.Until = &until
	}

	return rule
}
