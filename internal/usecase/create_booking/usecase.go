package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	sessionStorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case для создания бронирования на точное время
type UseCase struct {
	availabilityRepo AvailabilityRepository
	sessionRepo      SessionRepository
	settings         SettingsProvider
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	sessionRepo SessionRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		sessionRepo:      sessionRepo,
		settings:         settings,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка и вставка выполняются в сериализуемой транзакции: из двух параллельных
// запросов на пересекающиеся интервалы успешно завершается не больше одного
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, owner=%s, date=%s, time=%s",
		req.UserID, req.OwnerID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	startTime, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.ObserveBookingRejection(rejectionInvalidInput)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки владельца
	settings, err := uc.settings.Resolve(ctx, req.OwnerID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve settings for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	// 4. Переводим локальное время начала в UTC
	timezone := settings.Timezone
	if req.Timezone != nil {
		timezone = *req.Timezone
	}

	startUTC, err := scheduling.ToUTC(req.Date, startTime, timezone)
	if err != nil {
		// Часовой пояс из настроек владельца - ошибка конфигурации, а не запроса
		if req.Timezone == nil {
			uc.logger.Error("CreateBooking: invalid timezone in settings of owner=%s: %v", req.OwnerID, err)
			return nil, fmt.Errorf("%w: owner timezone: %v", ErrInternal, err)
		}
		uc.logger.Warn("CreateBooking: failed to convert start time: %v", err)
		uc.metrics.ObserveBookingRejection(rejectionInvalidInput)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.Session

	// 5. Проверяем и сохраняем сессию в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Окна доступности владельца на соседние даты
		windows, err := uc.availabilityRepo.GetActiveByOwnerForDates(txCtx, req.OwnerID, candidateDates(req.Date))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get windows: %v", err)
			return fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
		}

		duration := resolveDuration(req.DurationMinutes, windows, startUTC, settings.DefaultSessionDurationMinutes)
		candidate := domain.BookingCandidate{
			OwnerID:  req.OwnerID,
			StartUTC: startUTC,
			EndUTC:   startUTC.Add(time.Duration(duration) * time.Minute),
		}

		// 5.2. Пересекающиеся активные сессии (FOR UPDATE)
		sessions, err := uc.sessionRepo.GetActiveByOwnerInRange(txCtx, req.OwnerID, candidate.StartUTC, candidate.EndUTC)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get sessions: %v", err)
			return fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
		}

		// 5.3. Проверяем запрос
		if err := scheduling.ValidateBookingRequest(candidate, windows, sessions, now, settings.MinLeadTime()); err != nil {
			uc.logger.Warn("CreateBooking: request rejected: %v", err)
			return mapValidationError(err)
		}

		// 5.4. Сохраняем сессию
		created, err := uc.sessionRepo.Create(txCtx, &domain.Session{
			OwnerID:         req.OwnerID,
			ClientID:        req.UserID,
			StartUTC:        candidate.StartUTC,
			EndUTC:          candidate.EndUTC,
			Status:          domain.SessionStatusScheduled,
			PaymentID:       req.PaymentID,
			PaidAmountCents: req.PaidAmountCents,
		})
		if err != nil {
			if errors.Is(err, sessionStorage.ErrSlotNotAvailable) || errors.Is(err, sessionStorage.ErrConcurrentModification) {
				uc.logger.Warn("CreateBooking: slot taken concurrently: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization failure: %v", err)
			err = ErrSlotNotAvailable
		}
		uc.observeRejection(err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created session id=%s", result.ID)

	return toResponse(result), nil
}

func (uc *UseCase) observeRejection(err error) {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.ObserveBookingRejection(rejectionConflict)
	case errors.Is(err, ErrPastBooking):
		uc.metrics.ObserveBookingRejection(rejectionPast)
	case errors.Is(err, ErrOutsideAvailability):
		uc.metrics.ObserveBookingRejection(rejectionOutside)
	}
}

// mapValidationError переводит ошибки ядра планирования в ошибки usecase
func mapValidationError(err error) error {
	switch {
	case errors.Is(err, domain.ErrSlotNoLongerAvailable):
		return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	case errors.Is(err, domain.ErrPastBooking):
		return fmt.Errorf("%w: %v", ErrPastBooking, err)
	case errors.Is(err, domain.ErrOutsideAvailability):
		return ErrOutsideAvailability
	case errors.Is(err, domain.ErrInvalidTime):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
