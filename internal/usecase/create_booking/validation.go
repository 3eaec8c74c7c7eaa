package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает разобранное время начала
func validateRequest(req *Request) (types.TimeOfDay, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return types.TimeOfDay{}, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.OwnerID) == "" {
		return types.TimeOfDay{}, fmt.Errorf("%w: ownerID is required", ErrInvalidInput)
	}

	if req.UserID == req.OwnerID {
		return types.TimeOfDay{}, fmt.Errorf("%w: owner cannot book own schedule", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return types.TimeOfDay{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	startTime, err := types.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return types.TimeOfDay{}, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != nil {
		d := *req.DurationMinutes
		if d < domain.MinSessionDurationMinutes || d > domain.MaxSessionDurationMinutes {
			return types.TimeOfDay{}, fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
		}
	}

	if req.PaidAmountCents < 0 {
		return types.TimeOfDay{}, fmt.Errorf("%w: paidAmountCents must be non-negative", ErrInvalidInput)
	}

	// Оплаченная сессия должна ссылаться на платеж, иначе возврат невозможен
	if req.PaidAmountCents > 0 && (req.PaymentID == nil || strings.TrimSpace(*req.PaymentID) == "") {
		return types.TimeOfDay{}, fmt.Errorf("%w: paymentID is required for a paid booking", ErrInvalidInput)
	}

	return startTime, nil
}

// resolveDuration возвращает длительность сессии: из запроса, из окна, в которое
// попадает начало, или из настроек владельца
func resolveDuration(requested *int, windows []domain.AvailabilityWindow, start time.Time, fallback int) int {
	if requested != nil {
		return *requested
	}

	for _, w := range windows {
		loc, err := scheduling.LoadLocation(w.Timezone)
		if err != nil {
			continue
		}

		localDate := scheduling.LocalDate(start, loc)
		if !w.AppliesTo(localDate) {
			continue
		}

		windowStart, windowEnd, err := scheduling.WindowBounds(w, localDate)
		if err != nil {
			continue
		}

		if !start.Before(windowStart) && start.Before(windowEnd) {
			return w.SessionDurationMinutes
		}
	}

	return fallback
}

// candidateDates локальные даты окон, которые могут покрыть запрошенную дату
// Часовой пояс окна может отличаться от часового пояса запроса не больше чем на сутки
func candidateDates(date time.Time) []time.Time {
	day := domain.DateOnly(date)
	return []time.Time{day.AddDate(0, 0, -1), day, day.AddDate(0, 0, 1)}
}
