package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	sessionStorage "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
)

// UseCase use case для отмены сессии с возвратом средств
type UseCase struct {
	sessionRepo   SessionRepository
	settings      SettingsProvider
	paymentClient PaymentServiceClient
	txManager     TransactionManager
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	settings SettingsProvider,
	paymentClient PaymentServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:   sessionRepo,
		settings:      settings,
		paymentClient: paymentClient,
		txManager:     txManager,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case отмены сессии
//
// Отмена и решение о возврате сохраняются до обращения в PaymentService.
// Повторная отмена уже отмененной сессии не меняет решение и повторно отправляет
// тот же возврат с тем же ключом идемпотентности.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: user=%s, session=%s", req.UserID, req.SessionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		session          *domain.Session
		decision         domain.RefundDecision
		cancelledAt      time.Time
		alreadyCancelled bool
	)

	// 3. Фиксируем отмену и решение о возврате в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем сессию с блокировкой
		s, err := uc.sessionRepo.GetByID(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionStorage.ErrSessionNotFound) {
				uc.logger.Warn("CancelBooking: session id=%s not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("CancelBooking: failed to get session id=%s: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}
		session = s

		// 3.2. Проверяем права
		if err := checkAccess(s, req.UserID); err != nil {
			uc.logger.Warn("CancelBooking: user=%s has no access to session id=%s", req.UserID, s.ID)
			return err
		}

		// 3.3. Сессия уже отменена: используем сохраненное решение
		if s.IsCancelled() {
			alreadyCancelled = true
			cancelledAt = now
			if s.CancelledAt != nil {
				cancelledAt = *s.CancelledAt
			}

			stored, ok := storedDecision(s)
			if ok {
				decision = stored
				return nil
			}

			// Решение не сохранено: пересчитываем на момент первой отмены
			decision, err = uc.computeRefund(txCtx, s, cancelledAt)
			return err
		}

		if !s.Status.CanTransitionTo(domain.SessionStatusCancelled) {
			uc.logger.Warn("CancelBooking: session id=%s has status %s", s.ID, s.Status)
			return fmt.Errorf("%w: status %s", ErrInvalidStatus, s.Status)
		}

		// 3.4. Считаем возврат
		cancelledAt = now
		decision, err = uc.computeRefund(txCtx, s, cancelledAt)
		if err != nil {
			return err
		}

		// 3.5. Сохраняем отмену вместе с решением
		if err := uc.sessionRepo.MarkCancelled(txCtx, s.ID, cancelledAt, req.Reason, decision); err != nil {
			if errors.Is(err, sessionStorage.ErrStatusConflict) {
				uc.logger.Warn("CancelBooking: session id=%s changed status concurrently", s.ID)
				return ErrInvalidStatus
			}
			uc.logger.Error("CancelBooking: failed to mark session id=%s cancelled: %v", s.ID, err)
			return fmt.Errorf("%w: failed to cancel session: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if !alreadyCancelled {
		uc.metrics.ObserveRefundDecision(string(decision.Kind))
	}

	uc.logger.Info("CancelBooking: session id=%s cancelled, refund=%d (%s), already cancelled=%t",
		session.ID, decision.AmountCents, decision.Kind, alreadyCancelled)

	response := &Response{
		SessionID:         session.ID,
		Status:            domain.SessionStatusCancelled,
		CancelledAt:       cancelledAt,
		AlreadyCancelled:  alreadyCancelled,
		RefundAmountCents: decision.AmountCents,
		IsFullRefund:      decision.IsFullRefund,
		RefundKind:        decision.Kind,
		RefundReason:      decision.Reason,
		RefundStatus:      RefundStatusNotRequired,
	}

	// 4. Исполняем решение в PaymentService
	if decision.AmountCents == 0 || session.PaymentID == nil {
		return response, nil
	}

	refund, err := uc.issueRefund(ctx, session, decision)
	if err != nil {
		// Отмена уже сохранена, повторная отмена отправит тот же возврат
		uc.logger.Error("CancelBooking: refund for session id=%s failed: %v", session.ID, err)
		response.RefundStatus = RefundStatusFailed
		return response, nil
	}

	response.RefundStatus = RefundStatusIssued
	if refund.Status == paymentservice.RefundStatusAlreadyRefunded {
		response.RefundStatus = RefundStatusAlreadyRefunded
	}
	if refund.RefundID != "" {
		response.RefundID = &refund.RefundID
	}

	return response, nil
}

func (uc *UseCase) computeRefund(ctx context.Context, s *domain.Session, cancelledAt time.Time) (domain.RefundDecision, error) {
	settings, err := uc.settings.Resolve(ctx, s.OwnerID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to resolve settings for owner=%s: %v", s.OwnerID, err)
		return domain.RefundDecision{}, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	decision, err := scheduling.ComputeRefund(s.PaidAmountCents, s.StartUTC, cancelledAt, settings.CancellationPolicy())
	if err != nil {
		uc.logger.Error("CancelBooking: failed to compute refund for session id=%s: %v", s.ID, err)
		return domain.RefundDecision{}, fmt.Errorf("%w: failed to compute refund: %v", ErrInternal, err)
	}

	return decision, nil
}

func (uc *UseCase) issueRefund(ctx context.Context, s *domain.Session, decision domain.RefundDecision) (*paymentservice.RefundResponse, error) {
	req := paymentservice.RefundRequest{
		PaymentID:      *s.PaymentID,
		AmountCents:    decision.AmountCents,
		Reason:         decision.Reason,
		IdempotencyKey: idempotencyKey(s.ID),
	}

	if decision.IsFullRefund {
		return uc.paymentClient.IssueFullRefund(ctx, req)
	}
	return uc.paymentClient.IssuePartialRefund(ctx, req)
}
