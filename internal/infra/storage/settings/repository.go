package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const table = "owner_settings"

// Repository репозиторий для работы с настройками владельцев
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки владельца
func (r *Repository) Get(ctx context.Context, ownerID string) (*domain.OwnerSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"owner_id",
		"timezone",
		"default_session_duration_minutes",
		"default_buffer_minutes",
		"min_lead_time_minutes",
		"cancellation_deadline_hours",
		"partial_refund_percent",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.OwnerSettings
	var partial decimal.NullDecimal
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.OwnerID,
		&s.Timezone,
		&s.DefaultSessionDurationMinutes,
		&s.DefaultBufferMinutes,
		&s.MinLeadTimeMinutes,
		&s.CancellationDeadlineHours,
		&partial,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	if partial.Valid {
		s.PartialRefundPercent = &partial.Decimal
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или полностью перезаписывает настройки владельца
func (r *Repository) Upsert(ctx context.Context, s *domain.OwnerSettings) (*domain.OwnerSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	partial := decimal.NullDecimal{}
	if s.PartialRefundPercent != nil {
		partial = decimal.NewNullDecimal(*s.PartialRefundPercent)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"owner_id",
			"timezone",
			"default_session_duration_minutes",
			"default_buffer_minutes",
			"min_lead_time_minutes",
			"cancellation_deadline_hours",
			"partial_refund_percent",
		).
		Values(
			s.OwnerID,
			s.Timezone,
			s.DefaultSessionDurationMinutes,
			s.DefaultBufferMinutes,
			s.MinLeadTimeMinutes,
			s.CancellationDeadlineHours,
			partial,
		).
		Suffix(`ON CONFLICT (owner_id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			default_session_duration_minutes = EXCLUDED.default_session_duration_minutes,
			default_buffer_minutes = EXCLUDED.default_buffer_minutes,
			min_lead_time_minutes = EXCLUDED.min_lead_time_minutes,
			cancellation_deadline_hours = EXCLUDED.cancellation_deadline_hours,
			partial_refund_percent = EXCLUDED.partial_refund_percent,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
