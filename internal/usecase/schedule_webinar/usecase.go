package schedule_webinar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	sessionStorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case для создания вебинара с повторяющимися сессиями
type UseCase struct {
	webinarRepo    WebinarRepository
	sessionRepo    SessionRepository
	settings       SettingsProvider
	txManager      TransactionManager
	maxOccurrences int
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	webinarRepo WebinarRepository,
	sessionRepo SessionRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	maxOccurrences int,
	logger Logger,
) *UseCase {
	if maxOccurrences <= 0 {
		maxOccurrences = domain.DefaultMaxRecurrenceOccurrences
	}

	return &UseCase{
		webinarRepo:    webinarRepo,
		sessionRepo:    sessionRepo,
		settings:       settings,
		txManager:      txManager,
		maxOccurrences: maxOccurrences,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания вебинара
// Все сессии создаются в одной транзакции: при конфликте хотя бы одной не создается ни одна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScheduleWebinar: owner=%s, anchor=%s, time=%s, frequency=%s",
		req.OwnerID, req.AnchorDate.Format(domain.DateFormat), req.StartTime, req.Frequency)

	// 1. Валидация входных данных
	startTime, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ScheduleWebinar: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Определяем часовой пояс
	settings, err := uc.settings.Resolve(ctx, req.OwnerID)
	if err != nil {
		uc.logger.Error("ScheduleWebinar: failed to resolve settings for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	timezone := settings.Timezone
	if req.Timezone != nil {
		timezone = *req.Timezone
	}
	if _, err := scheduling.LoadLocation(timezone); err != nil {
		uc.logger.Warn("ScheduleWebinar: invalid timezone %q: %v", timezone, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Разворачиваем правило повторения
	rule := buildRule(req)
	if rule.HasCount() && rule.Count > uc.maxOccurrences {
		return nil, fmt.Errorf("%w: count %d exceeds %d", ErrTooManyOccurrences, rule.Count, uc.maxOccurrences)
	}

	anchor := domain.DateOnly(req.AnchorDate)
	dates, err := scheduling.ExpandAtMost(anchor, rule, uc.maxOccurrences)
	if err != nil {
		uc.logger.Warn("ScheduleWebinar: invalid recurrence: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: rule produces no occurrences", ErrInvalidRecurrence)
	}
	if len(dates) > uc.maxOccurrences {
		return nil, fmt.Errorf("%w: %d occurrences, at most %d allowed", ErrTooManyOccurrences, len(dates), uc.maxOccurrences)
	}

	// 5. Переводим каждую дату в UTC отдельно: смещение меняется при переходе на летнее время
	duration := time.Duration(req.DurationMinutes) * time.Minute
	occurrences := make([]Occurrence, 0, len(dates))
	for _, date := range dates {
		start, err := scheduling.ToUTC(date, startTime, timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		occurrences = append(occurrences, Occurrence{LocalDate: date, StartUTC: start, EndUTC: start.Add(duration)})
	}

	if !occurrences[0].StartUTC.After(now) {
		uc.logger.Warn("ScheduleWebinar: first occurrence %s is in the past", occurrences[0].StartUTC.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: %s", ErrPastOccurrence, occurrences[0].StartUTC.Format(time.RFC3339))
	}

	webinar := &domain.Webinar{
		OwnerID:         req.OwnerID,
		Title:           strings.TrimSpace(req.Title),
		AnchorDate:      anchor,
		StartTime:       startTime,
		DurationMinutes: req.DurationMinutes,
		Timezone:        timezone,
		Rule:            rule,
		PriceCents:      req.PriceCents,
	}

	// 6. Проверяем конфликты и сохраняем все в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		first, last := occurrences[0], occurrences[len(occurrences)-1]
		existing, err := uc.sessionRepo.GetActiveByOwnerInRange(txCtx, req.OwnerID, first.StartUTC, last.EndUTC)
		if err != nil {
			uc.logger.Error("ScheduleWebinar: failed to get sessions: %v", err)
			return fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
		}

		// 6.1. Каждая сессия проверяется против существующих и уже сгенерированных
		planned := make([]domain.Session, 0, len(existing)+len(occurrences))
		planned = append(planned, existing...)
		for _, o := range occurrences {
			if conflict := scheduling.FindConflict(o.StartUTC, o.EndUTC, planned, ""); conflict != nil {
				uc.logger.Warn("ScheduleWebinar: occurrence %s conflicts with session id=%s",
					o.LocalDate.Format(domain.DateFormat), conflict.ID)
				return fmt.Errorf("%w: %s overlaps session %s", ErrScheduleConflict, o.LocalDate.Format(domain.DateFormat), conflict.ID)
			}
			planned = append(planned, domain.Session{
				OwnerID:  req.OwnerID,
				StartUTC: o.StartUTC,
				EndUTC:   o.EndUTC,
				Status:   domain.SessionStatusScheduled,
			})
		}

		// 6.2. Сохраняем вебинар
		created, err := uc.webinarRepo.Create(txCtx, webinar)
		if err != nil {
			uc.logger.Error("ScheduleWebinar: failed to create webinar: %v", err)
			return fmt.Errorf("%w: failed to create webinar: %v", ErrInternal, err)
		}
		webinar = created

		// 6.3. Сохраняем сессии
		for i := range occurrences {
			session, err := uc.sessionRepo.Create(txCtx, &domain.Session{
				OwnerID:   req.OwnerID,
				WebinarID: &webinar.ID,
				StartUTC:  occurrences[i].StartUTC,
				EndUTC:    occurrences[i].EndUTC,
				Status:    domain.SessionStatusScheduled,
			})
			if err != nil {
				if errors.Is(err, sessionStorage.ErrSlotNotAvailable) || errors.Is(err, sessionStorage.ErrConcurrentModification) {
					return fmt.Errorf("%w: %s taken concurrently", ErrScheduleConflict, occurrences[i].LocalDate.Format(domain.DateFormat))
				}
				uc.logger.Error("ScheduleWebinar: failed to create session: %v", err)
				return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
			}
			occurrences[i].SessionID = session.ID
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("ScheduleWebinar: serialization failure: %v", err)
			return nil, ErrScheduleConflict
		}
		return nil, err
	}

	uc.logger.Info("ScheduleWebinar: created webinar id=%s with %d sessions", webinar.ID, len(occurrences))

	return &Response{
		WebinarID: webinar.ID,
		OwnerID:   webinar.OwnerID,
		Title:     webinar.Title,
		Timezone:  webinar.Timezone,
		Sessions:  occurrences,
	}, nil
}
