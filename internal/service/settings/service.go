package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
)

var hundred = decimal.NewFromInt(100)

// Service сервис настроек расписания и политики отмены владельцев
type Service struct {
	settingsRepo SettingsRepository
	defaults     domain.OwnerSettings
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
// defaults используются для владельцев, которые ещё не сохраняли настройки
func NewService(settingsRepo SettingsRepository, defaults domain.OwnerSettings, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		defaults:     defaults,
		logger:       logger,
	}
}

// Get получает настройки владельца
// Публичный метод - клиенту нужны часовой пояс и политика отмены
func (s *Service) Get(ctx context.Context, ownerID string) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for owner=%s", ownerID)

	settings, isDefault, err := s.load(ctx, ownerID)
	if err != nil {
		s.logger.Error("Get: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings, isDefault), nil
}

// Resolve возвращает действующие настройки владельца: сохраненные или значения по умолчанию
func (s *Service) Resolve(ctx context.Context, ownerID string) (*domain.OwnerSettings, error) {
	settings, _, err := s.load(ctx, ownerID)
	if err != nil {
		s.logger.Error("Resolve: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}
	return settings, nil
}

// Update обновляет настройки владельца
// Доступно только самому владельцу
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for owner=%s by user=%s", req.OwnerID, req.UserID)

	// 1. Проверяем права доступа
	if req.OwnerID != req.UserID {
		s.logger.Warn("Update: user=%s is not owner=%s", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	// 2. Загружаем текущие настройки
	current, _, err := s.load(ctx, req.OwnerID)
	if err != nil {
		s.logger.Error("Update: repository error for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 3. Применяем изменения
	updated := *current
	if req.Timezone != nil {
		updated.Timezone = *req.Timezone
	}
	if req.DefaultSessionDurationMinutes != nil {
		updated.DefaultSessionDurationMinutes = *req.DefaultSessionDurationMinutes
	}
	if req.DefaultBufferMinutes != nil {
		updated.DefaultBufferMinutes = *req.DefaultBufferMinutes
	}
	if req.MinLeadTimeMinutes != nil {
		updated.MinLeadTimeMinutes = *req.MinLeadTimeMinutes
	}
	if req.CancellationDeadlineHours != nil {
		updated.CancellationDeadlineHours = *req.CancellationDeadlineHours
	}
	if req.ClearPartialRefund {
		updated.PartialRefundPercent = nil
	} else if req.PartialRefundPercent != nil {
		updated.PartialRefundPercent = req.PartialRefundPercent
	}

	// 4. Валидируем результат целиком
	if err := Validate(&updated); err != nil {
		s.logger.Warn("Update: validation failed for owner=%s: %v", req.OwnerID, err)
		return nil, err
	}

	// 5. Сохраняем
	saved, err := s.settingsRepo.Upsert(ctx, &updated)
	if err != nil {
		s.logger.Error("Update: repository error for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings saved for owner=%s, timezone=%s", req.OwnerID, saved.Timezone)
	return models.FromDomainSettings(saved, false), nil
}

// Validate проверяет настройки владельца
func Validate(s *domain.OwnerSettings) error {
	if _, err := scheduling.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if s.DefaultSessionDurationMinutes < domain.MinSessionDurationMinutes || s.DefaultSessionDurationMinutes > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: session duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}
	if s.DefaultBufferMinutes < 0 || s.DefaultBufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffer must be between 0 and %d minutes", ErrInvalidInput, domain.MaxBufferMinutes)
	}
	if s.MinLeadTimeMinutes < 0 || s.MinLeadTimeMinutes > domain.MaxMinLeadTimeMinutes {
		return fmt.Errorf("%w: minimum lead time must be between 0 and %d minutes", ErrInvalidInput, domain.MaxMinLeadTimeMinutes)
	}
	if s.CancellationDeadlineHours < 0 || s.CancellationDeadlineHours > domain.MaxCancellationDeadlineHours {
		return fmt.Errorf("%w: cancellation deadline must be between 0 and %d hours", ErrInvalidInput, domain.MaxCancellationDeadlineHours)
	}
	if p := s.PartialRefundPercent; p != nil && (p.IsNegative() || p.GreaterThan(hundred)) {
		return fmt.Errorf("%w: partial refund percent must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}

// load возвращает сохраненные настройки или копию значений по умолчанию
func (s *Service) load(ctx context.Context, ownerID string) (*domain.OwnerSettings, bool, error) {
	settings, err := s.settingsRepo.Get(ctx, ownerID)
	if err == nil {
		return settings, false, nil
	}
	if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		return nil, false, err
	}

	defaults := s.defaults
	defaults.OwnerID = ownerID
	return &defaults, true, nil
}
