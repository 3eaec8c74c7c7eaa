package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service сервис для управления окнами доступности владельца
type Service struct {
	availabilityRepo AvailabilityRepository
	settings         SettingsProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(availabilityRepo AvailabilityRepository, settings SettingsProvider, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		settings:         settings,
		logger:           logger,
	}
}

// CreateWindow создает окно доступности
// Незаданные часовой пояс, длительность и буфер берутся из настроек владельца
func (s *Service) CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("CreateWindow: owner=%s, recurring=%t, %s-%s by user=%s",
		req.OwnerID, req.IsRecurring, req.StartTime, req.EndTime, req.UserID)

	// 1. Проверяем права доступа
	if req.OwnerID != req.UserID {
		s.logger.Warn("CreateWindow: user=%s is not owner=%s", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	// 2. Получаем настройки владельца для значений по умолчанию
	settings, err := s.settings.Resolve(ctx, req.OwnerID)
	if err != nil {
		s.logger.Error("CreateWindow: failed to resolve settings for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: CreateWindow - settings error: %v", ErrInternal, err)
	}

	// 3. Собираем и валидируем окно
	window, err := buildWindow(req, settings)
	if err != nil {
		s.logger.Warn("CreateWindow: validation failed for owner=%s: %v", req.OwnerID, err)
		return nil, err
	}

	// 4. Сохраняем
	created, err := s.availabilityRepo.Create(ctx, window)
	if err != nil {
		s.logger.Error("CreateWindow: repository error for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: CreateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWindow: created window id=%s for owner=%s", created.ID, req.OwnerID)
	return models.FromDomainWindow(created), nil
}

// ListWindows получает активные окна доступности владельца
func (s *Service) ListWindows(ctx context.Context, ownerID string, userID string) (*models.WindowListResponse, error) {
	s.logger.Info("ListWindows: fetching windows for owner=%s by user=%s", ownerID, userID)

	if ownerID != userID {
		s.logger.Warn("ListWindows: user=%s is not owner=%s", userID, ownerID)
		return nil, ErrAccessDenied
	}

	windows, err := s.availabilityRepo.GetActiveByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListWindows: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWindowList(windows), nil
}

// DeactivateWindow выключает одно окно доступности
// Существующие бронирования не затрагиваются
func (s *Service) DeactivateWindow(ctx context.Context, ownerID, windowID, userID string) error {
	s.logger.Info("DeactivateWindow: window id=%s of owner=%s by user=%s", windowID, ownerID, userID)

	if ownerID != userID {
		s.logger.Warn("DeactivateWindow: user=%s is not owner=%s", userID, ownerID)
		return ErrAccessDenied
	}

	window, err := s.availabilityRepo.GetByID(ctx, windowID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			return ErrWindowNotFound
		}
		s.logger.Error("DeactivateWindow: repository error for window id=%s: %v", windowID, err)
		return fmt.Errorf("%w: DeactivateWindow - repository error: %v", ErrInternal, err)
	}

	if window.OwnerID != ownerID || !window.IsActive {
		s.logger.Warn("DeactivateWindow: window id=%s not found for owner=%s", windowID, ownerID)
		return ErrWindowNotFound
	}

	if err := s.availabilityRepo.Deactivate(ctx, windowID); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			return ErrWindowNotFound
		}
		s.logger.Error("DeactivateWindow: repository error for window id=%s: %v", windowID, err)
		return fmt.Errorf("%w: DeactivateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateWindow: window id=%s deactivated", windowID)
	return nil
}

// ClearSchedule выключает все окна доступности владельца
func (s *Service) ClearSchedule(ctx context.Context, ownerID, userID string) (*models.ClearScheduleResponse, error) {
	s.logger.Info("ClearSchedule: owner=%s by user=%s", ownerID, userID)

	if ownerID != userID {
		s.logger.Warn("ClearSchedule: user=%s is not owner=%s", userID, ownerID)
		return nil, ErrAccessDenied
	}

	count, err := s.availabilityRepo.DeactivateAllByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ClearSchedule: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ClearSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ClearSchedule: deactivated %d windows of owner=%s", count, ownerID)
	return &models.ClearScheduleResponse{Deactivated: count}, nil
}

func buildWindow(req *models.CreateWindowRequest, settings *domain.OwnerSettings) (*domain.AvailabilityWindow, error) {
	start, err := types.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	end, err := types.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
	}

	window := &domain.AvailabilityWindow{
		OwnerID:                req.OwnerID,
		IsRecurring:            req.IsRecurring,
		StartTime:              start,
		EndTime:                end,
		Timezone:               settings.Timezone,
		SessionDurationMinutes: settings.DefaultSessionDurationMinutes,
		BufferMinutes:          settings.DefaultBufferMinutes,
		IsActive:               true,
	}
	if req.Timezone != nil {
		window.Timezone = *req.Timezone
	}
	if req.SessionDurationMinutes != nil {
		window.SessionDurationMinutes = *req.SessionDurationMinutes
	}
	if req.BufferMinutes != nil {
		window.BufferMinutes = *req.BufferMinutes
	}

	if req.IsRecurring {
		if req.DayOfWeek == nil || req.Date != nil {
			return nil, fmt.Errorf("%w: recurring window needs dayOfWeek and no date", ErrInvalidInput)
		}
		window.DayOfWeek = req.DayOfWeek
	} else {
		if req.Date == nil || req.DayOfWeek != nil {
			return nil, fmt.Errorf("%w: one-off window needs date and no dayOfWeek", ErrInvalidInput)
		}
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
		}
		window.Date = &date
	}

	if window.SessionDurationMinutes < domain.MinSessionDurationMinutes || window.SessionDurationMinutes > domain.MaxSessionDurationMinutes {
		return nil, fmt.Errorf("%w: session duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}
	if window.BufferMinutes > domain.MaxBufferMinutes {
		return nil, fmt.Errorf("%w: buffer must not exceed %d minutes", ErrInvalidInput, domain.MaxBufferMinutes)
	}

	if err := scheduling.ValidateWindow(*window); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return window, nil
}
