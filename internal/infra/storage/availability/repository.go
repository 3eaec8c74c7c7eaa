package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const table = "availability_windows"

var columns = []string{
	"id",
	"owner_id",
	"is_recurring",
	"day_of_week",
	"window_date",
	"start_time",
	"end_time",
	"timezone",
	"session_duration_minutes",
	"buffer_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с окнами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое окно доступности
func (r *Repository) Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	var windowDate interface{}
	if w.Date != nil {
		windowDate = w.Date.Format(domain.DateFormat)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"owner_id",
			"is_recurring",
			"day_of_week",
			"window_date",
			"start_time",
			"end_time",
			"timezone",
			"session_duration_minutes",
			"buffer_minutes",
			"is_active",
		).
		Values(
			w.ID,
			w.OwnerID,
			w.IsRecurring,
			w.DayOfWeek,
			windowDate,
			w.StartTime,
			w.EndTime,
			w.Timezone,
			w.SessionDurationMinutes,
			w.BufferMinutes,
			true,
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

	w.IsActive = true
	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return w, nil
}

// GetByID получает окно доступности по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.AvailabilityWindow, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrWindowNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	w, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan window: %v", ErrScanRow, err)
	}

	return w, nil
}

// GetActiveByOwnerForDates получает активные окна владельца, которые могут относиться к датам:
// еженедельные окна для дней недели этих дат и разовые окна на сами даты.
// Окна хранят локальные даты, поэтому вызывающий передает все локальные даты,
// попадающие в интересующий его UTC-интервал.
func (r *Repository) GetActiveByOwnerForDates(ctx context.Context, ownerID string, dates []time.Time) ([]domain.AvailabilityWindow, error) {
	if len(dates) == 0 {
		return []domain.AvailabilityWindow{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekdays := make([]int, 0, len(dates))
	days := make([]string, 0, len(dates))
	for _, d := range dates {
		weekdays = append(weekdays, int(d.Weekday()))
		days = append(days, d.Format(domain.DateFormat))
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID, "is_active": true}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"is_recurring": true},
				squirrel.Eq{"day_of_week": weekdays},
			},
			squirrel.And{
				squirrel.Eq{"is_recurring": false},
				squirrel.Eq{"window_date": days},
			},
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByOwnerForDates - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, query, args, "GetActiveByOwnerForDates")
}

// GetActiveByOwner получает все активные окна владельца
func (r *Repository) GetActiveByOwner(ctx context.Context, ownerID string) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID, "is_active": true}).
		OrderBy("is_recurring DESC", "day_of_week ASC", "window_date ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByOwner - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, query, args, "GetActiveByOwner")
}

// Deactivate выключает окно доступности (мягкое удаление)
func (r *Repository) Deactivate(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrWindowNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

// DeactivateAllByOwner выключает все окна владельца
// Возвращает количество выключенных окон
func (r *Repository) DeactivateAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"owner_id": ownerID, "is_active": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateAllByOwner - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateAllByOwner - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateAllByOwner - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]domain.AvailabilityWindow, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]domain.AvailabilityWindow, 0)
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		windows = append(windows, *w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return windows, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.AvailabilityWindow, error) {
	var w domain.AvailabilityWindow
	var dayOfWeek sql.NullInt32
	var windowDate sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&w.ID,
		&w.OwnerID,
		&w.IsRecurring,
		&dayOfWeek,
		&windowDate,
		&w.StartTime,
		&w.EndTime,
		&w.Timezone,
		&w.SessionDurationMinutes,
		&w.BufferMinutes,
		&w.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dayOfWeek.Valid {
		d := int(dayOfWeek.Int32)
		w.DayOfWeek = &d
	}
	if windowDate.Valid {
		d := domain.DateOnly(windowDate.Time)
		w.Date = &d
	}
	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return &w, nil
}
