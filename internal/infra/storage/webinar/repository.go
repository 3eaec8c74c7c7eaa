package webinar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const table = "webinars"

// Repository репозиторий для работы с вебинарами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория вебинаров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет вебинар вместе с правилом повторения
func (r *Repository) Create(ctx context.Context, w *domain.Webinar) (*domain.Webinar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	weekdays := make([]int64, 0, len(w.Rule.ByWeekday))
	for _, d := range w.Rule.ByWeekday {
		weekdays = append(weekdays, int64(d))
	}

	var count sql.NullInt64
	if w.Rule.HasCount() {
		count = sql.NullInt64{Int64: int64(w.Rule.Count), Valid: true}
	}
	var until interface{}
	if w.Rule.HasUntil() {
		until = w.Rule.Until.Format(domain.DateFormat)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"owner_id",
			"title",
			"anchor_date",
			"start_time",
			"duration_minutes",
			"timezone",
			"frequency",
			"interval_count",
			"by_weekday",
			"occurrence_count",
			"until_date",
			"price_cents",
		).
		Values(
			w.ID,
			w.OwnerID,
			w.Title,
			w.AnchorDate.Format(domain.DateFormat),
			w.StartTime,
			w.DurationMinutes,
			w.Timezone,
			string(w.Rule.Frequency),
			w.Rule.Interval,
			pq.Array(weekdays),
			count,
			until,
			w.PriceCents,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return w, nil
}

// GetByID получает вебинар по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Webinar, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrWebinarNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"title",
		"anchor_date",
		"start_time",
		"duration_minutes",
		"timezone",
		"frequency",
		"interval_count",
		"by_weekday",
		"occurrence_count",
		"until_date",
		"price_cents",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var w domain.Webinar
	var frequency string
	var weekdays pq.Int64Array
	var count sql.NullInt64
	var until sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&w.ID,
		&w.OwnerID,
		&w.Title,
		&w.AnchorDate,
		&w.StartTime,
		&w.DurationMinutes,
		&w.Timezone,
		&frequency,
		&w.Rule.Interval,
		&weekdays,
		&count,
		&until,
		&w.PriceCents,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWebinarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan webinar: %v", ErrScanRow, err)
	}

	w.AnchorDate = domain.DateOnly(w.AnchorDate)
	w.Rule.Frequency = domain.Frequency(frequency)
	for _, d := range weekdays {
		w.Rule.ByWeekday = append(w.Rule.ByWeekday, int(d))
	}
	if count.Valid {
		w.Rule.Count = int(count.Int64)
	}
	if until.Valid {
		d := domain.DateOnly(until.Time)
		w.Rule.Until = &d
	}
	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return &w, nil
}
