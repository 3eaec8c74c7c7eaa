package reschedule_booking

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

// UseCase use case для переноса сессии на другое время
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

// Execute выполняет use case переноса сессии
// Длительность сессии сохраняется, сама сессия не считается конфликтом для нового интервала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: user=%s, session=%s, date=%s, time=%s",
		req.UserID, req.SessionID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	startTime, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var response *Response

	// 3. Проверяем и переносим сессию в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем сессию с блокировкой
		session, err := uc.sessionRepo.GetByID(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionStorage.ErrSessionNotFound) {
				uc.logger.Warn("RescheduleBooking: session id=%s not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get session id=%s: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		// 3.2. Проверяем права и статус
		if err := checkAccess(session, req.UserID); err != nil {
			uc.logger.Warn("RescheduleBooking: user=%s has no access to session id=%s", req.UserID, session.ID)
			return err
		}

		if !session.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: session id=%s has status %s", session.ID, session.Status)
			return fmt.Errorf("%w: status %s", ErrInvalidStatus, session.Status)
		}

		// 3.3. Получаем настройки владельца и новый интервал
		settings, err := uc.settings.Resolve(txCtx, session.OwnerID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to resolve settings for owner=%s: %v", session.OwnerID, err)
			return fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
		}

		timezone := settings.Timezone
		if req.Timezone != nil {
			timezone = *req.Timezone
		}

		startUTC, err := scheduling.ToUTC(req.Date, startTime, timezone)
		if err != nil {
			// Часовой пояс из настроек владельца - ошибка конфигурации, а не запроса
			if req.Timezone == nil {
				uc.logger.Error("RescheduleBooking: invalid timezone in settings of owner=%s: %v", session.OwnerID, err)
				return fmt.Errorf("%w: owner timezone: %v", ErrInternal, err)
			}
			uc.logger.Warn("RescheduleBooking: failed to convert start time: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		candidate := domain.BookingCandidate{
			OwnerID:          session.OwnerID,
			StartUTC:         startUTC,
			EndUTC:           startUTC.Add(session.Duration()),
			ExcludeSessionID: session.ID,
		}

		// 3.4. Окна и пересекающиеся сессии
		windows, err := uc.availabilityRepo.GetActiveByOwnerForDates(txCtx, session.OwnerID, candidateDates(req.Date))
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get windows: %v", err)
			return fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
		}

		sessions, err := uc.sessionRepo.GetActiveByOwnerInRange(txCtx, session.OwnerID, candidate.StartUTC, candidate.EndUTC)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get sessions: %v", err)
			return fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
		}

		// 3.5. Проверяем новый интервал
		if err := scheduling.ValidateBookingRequest(candidate, windows, sessions, now, settings.MinLeadTime()); err != nil {
			uc.logger.Warn("RescheduleBooking: request rejected: %v", err)
			return mapValidationError(err)
		}

		// 3.6. Сохраняем
		if err := uc.sessionRepo.Reschedule(txCtx, session.ID, candidate.StartUTC, candidate.EndUTC); err != nil {
			switch {
			case errors.Is(err, sessionStorage.ErrStatusConflict):
				return ErrInvalidStatus
			case errors.Is(err, sessionStorage.ErrSlotNotAvailable), errors.Is(err, sessionStorage.ErrConcurrentModification):
				uc.logger.Warn("RescheduleBooking: slot taken concurrently: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("RescheduleBooking: failed to reschedule session id=%s: %v", session.ID, err)
			return fmt.Errorf("%w: failed to reschedule session: %v", ErrInternal, err)
		}

		response = &Response{
			ID:               session.ID,
			OwnerID:          session.OwnerID,
			ClientID:         session.ClientID,
			StartUTC:         candidate.StartUTC,
			EndUTC:           candidate.EndUTC,
			PreviousStartUTC: session.StartUTC,
			DurationMinutes:  int(session.Duration().Minutes()),
			Status:           session.Status,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("RescheduleBooking: serialization failure: %v", err)
			err = ErrSlotNotAvailable
		}
		uc.observeRejection(err)
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: session id=%s moved from %s to %s", response.ID,
		response.PreviousStartUTC.Format(time.RFC3339), response.StartUTC.Format(time.RFC3339))

	return response, nil
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
