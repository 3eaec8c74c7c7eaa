package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
)

// sessionLookaround запас вокруг календарной даты при выборке сессий:
// окна в разных часовых поясах покрывают разные UTC-интервалы
const sessionLookaround = 24 * time.Hour

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	availabilityRepo AvailabilityRepository
	sessionRepo      SessionRepository
	settings         SettingsProvider
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	sessionRepo SessionRepository,
	settings SettingsProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		sessionRepo:      sessionRepo,
		settings:         settings,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: owner=%s, date=%s", req.OwnerID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки владельца (или значения по умолчанию)
	settings, err := uc.settings.Resolve(ctx, req.OwnerID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve settings for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	loc, err := scheduling.LoadLocation(settings.Timezone)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: owner=%s has invalid timezone %q: %v", req.OwnerID, settings.Timezone, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	// 4. Получаем активные окна доступности на дату
	windows, err := uc.availabilityRepo.GetActiveByOwnerForDates(ctx, req.OwnerID, []time.Time{date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	response := &Response{
		Date:     date,
		OwnerID:  req.OwnerID,
		Timezone: settings.Timezone,
		Slots:    make([]Slot, 0),
	}

	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: owner=%s has no availability on %s", req.OwnerID, date.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Получаем активные сессии вокруг даты
	from := date.Add(-sessionLookaround)
	to := date.Add(2 * sessionLookaround)
	sessions, err := uc.sessionRepo.GetActiveByOwnerInRange(ctx, req.OwnerID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты
	slots, err := scheduling.GenerateSlots(req.OwnerID, date, windows, sessions, now, settings.MinLeadTime())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimezone) || errors.Is(err, domain.ErrInvalidTime) {
			uc.logger.Error("GetAvailableSlots: invalid window of owner=%s: %v", req.OwnerID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	available := 0
	for _, slot := range slots {
		if slot.Available {
			available++
		}
		if req.OnlyAvailable && !slot.Available {
			continue
		}
		response.Slots = append(response.Slots, Slot{
			StartUTC:        slot.StartUTC,
			EndUTC:          slot.EndUTC,
			LocalStartTime:  slot.StartUTC.In(loc).Format(domain.TimeFormat),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		})
	}
	uc.metrics.ObserveSlots(available, len(slots)-available)

	uc.logger.Info("GetAvailableSlots: owner=%s, date=%s, %d slots, %d available",
		req.OwnerID, date.Format(domain.DateFormat), len(slots), available)

	return response, nil
}
