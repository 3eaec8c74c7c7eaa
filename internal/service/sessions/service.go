package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-SchedulingService/internal/service/sessions/models"
)

// Service сервис для работы с сессиями
type Service struct {
	sessionRepo SessionRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(sessionRepo SessionRepository, logger Logger) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// GetByID получает сессию по ID
// Сессию видят только её владелец и клиент
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%s for user=%s", id, userID)

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetByID: session id=%s not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetByID: repository error for session id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if session.OwnerID != userID && session.ClientID != userID {
		s.logger.Warn("GetByID: access denied for user=%s to session id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainSession(session), nil
}

// GetOwnerSessions получает расписание владельца с фильтрацией
// Доступно только самому владельцу
func (s *Service) GetOwnerSessions(ctx context.Context, req *models.GetOwnerSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetOwnerSessions: fetching sessions for owner=%s, user=%s, status=%v, includeInactive=%t",
		req.OwnerID, req.UserID, req.Status, req.IncludeInactive)

	if req.OwnerID != req.UserID {
		s.logger.Warn("GetOwnerSessions: user=%s is not owner=%s", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetOwnerSessions: invalid filter for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	sessions, err := s.sessionRepo.GetByOwner(ctx, filter)
	if err != nil {
		s.logger.Error("GetOwnerSessions: repository error for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerSessions: fetched %d sessions for owner=%s", len(sessions), req.OwnerID)
	return models.FromDomainSessionList(sessions), nil
}

// GetClientSessions получает историю бронирований клиента
func (s *Service) GetClientSessions(ctx context.Context, req *models.GetClientSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetClientSessions: fetching sessions for client=%s, status=%v", req.UserID, req.Status)

	var status *domain.SessionStatus
	if req.Status != nil {
		parsed, ok := domain.ParseSessionStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetClientSessions: invalid status=%s for client=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	sessions, err := s.sessionRepo.GetByClient(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetClientSessions: repository error for client=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetClientSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientSessions: fetched %d sessions for client=%s", len(sessions), req.UserID)
	return models.FromDomainSessionList(sessions), nil
}

// UpdateStatus переводит сессию по жизненному циклу: scheduled -> live -> completed
// Доступно только владельцу. Отмена идёт через отдельный сценарий с расчётом возврата.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.SessionResponse, error) {
	s.logger.Info("UpdateStatus: updating session id=%s to status=%s by user=%s", id, req.Status, req.UserID)

	next, ok := domain.ParseSessionStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for session id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if next == domain.SessionStatusCancelled {
		return nil, fmt.Errorf("%w: use the cancel operation to cancel a session", ErrInvalidInput)
	}

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("UpdateStatus: session id=%s not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("UpdateStatus: repository error for session id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if session.OwnerID != req.UserID {
		s.logger.Warn("UpdateStatus: user=%s is not owner of session id=%s", req.UserID, id)
		return nil, ErrAccessDenied
	}

	if !session.Status.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for session id=%s", session.Status, next, id)
		return nil, ErrInvalidTransition
	}

	if err := s.sessionRepo.UpdateStatus(ctx, id, session.Status, next); err != nil {
		if errors.Is(err, sessionRepo.ErrStatusConflict) {
			s.logger.Warn("UpdateStatus: session id=%s changed status concurrently", id)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("UpdateStatus: repository error for session id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	session.Status = next
	s.logger.Info("UpdateStatus: session id=%s is now %s", id, next)
	return models.FromDomainSession(session), nil
}
