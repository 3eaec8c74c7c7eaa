package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const table = "sessions"

// Коды ошибок PostgreSQL
const (
	pgExclusionViolation   = "23P01"
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

var columns = []string{
	"id",
	"owner_id",
	"client_id",
	"webinar_id",
	"start_utc",
	"end_utc",
	"status",
	"payment_id",
	"paid_amount_cents",
	"cancelled_at",
	"cancellation_reason",
	"refund_amount_cents",
	"refund_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сессиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую сессию
// Запись условная: пересечение с активной сессией того же владельца отклоняется
// ограничением sessions_no_overlap, и метод возвращает ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = domain.SessionStatusScheduled
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"owner_id",
			"client_id",
			"webinar_id",
			"start_utc",
			"end_utc",
			"status",
			"payment_id",
			"paid_amount_cents",
		).
		Values(
			s.ID,
			s.OwnerID,
			nullString(s.ClientID),
			s.WebinarID,
			s.StartUTC.UTC(),
			s.EndUTC.UTC(),
			s.Status,
			s.PaymentID,
			s.PaidAmountCents,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, classify(err, "Create - execute insert")
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает сессию по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSession(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, classify(err, "GetByID - scan session")
	}

	return s, nil
}

// GetActiveByOwnerInRange получает активные (scheduled, live) сессии владельца,
// пересекающиеся с интервалом [from, to).
// Внутри транзакции найденные строки блокируются (FOR UPDATE), чтобы параллельное
// бронирование того же интервала дождалось завершения текущего.
func (r *Repository) GetActiveByOwnerInRange(ctx context.Context, ownerID string, from, to time.Time) ([]domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_utc": to.UTC()}).
		Where(squirrel.Gt{"end_utc": from.UTC()}).
		OrderBy("start_utc ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByOwnerInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "GetActiveByOwnerInRange - execute query")
	}
	defer rows.Close()

	return scanSessions(rows)
}

// GetByOwner получает сессии владельца с фильтрацией
// Без фильтра по статусу возвращает только активные, если не указан IncludeInactive
func (r *Repository) GetByOwner(ctx context.Context, filter domain.OwnerSessionsFilter) ([]domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": filter.OwnerID})

	// Фильтрация по периоду
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_utc": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_utc": filter.To.UTC()})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings(domain.InactiveStatuses)})
	}

	query, args, err := selectBuilder.OrderBy("start_utc ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "GetByOwner - execute query")
	}
	defer rows.Close()

	return scanSessions(rows)
}

// GetByClient получает сессии клиента, сначала ближайшие
// Опционально фильтрует по статусу
func (r *Repository) GetByClient(ctx context.Context, clientID string, status *domain.SessionStatus) ([]domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("start_utc DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "GetByClient - execute query")
	}
	defer rows.Close()

	return scanSessions(rows)
}

// UpdateStatus меняет статус сессии, если она всё ещё в статусе from
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.SessionStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": string(from)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "UpdateStatus")
}

// Reschedule переносит запланированную сессию на новый интервал
// Пересечение с другой активной сессией отклоняется ограничением и даёт ErrSlotNotAvailable
func (r *Repository) Reschedule(ctx context.Context, id string, startUTC, endUTC time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_utc", startUTC.UTC()).
		Set("end_utc", endUTC.UTC()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": string(domain.SessionStatusScheduled)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "Reschedule")
}

// MarkCancelled сохраняет отмену вместе с решением о возврате
// Повторная отмена уже отменённой сессии не перезаписывает сохранённое решение
func (r *Repository) MarkCancelled(ctx context.Context, id string, cancelledAt time.Time, reason *string, decision domain.RefundDecision) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.SessionStatusCancelled)).
		Set("cancelled_at", cancelledAt.UTC()).
		Set("cancellation_reason", reason).
		Set("refund_amount_cents", decision.AmountCents).
		Set("refund_reason", decision.Reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": statusStrings(domain.ActiveStatuses)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "MarkCancelled")
}

// CompleteEnded переводит в completed все активные сессии, закончившиеся до now
// Возвращает количество обновленных сессий
func (r *Repository) CompleteEnded(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.SessionStatusCompleted)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.LtOrEq{"end_utc": now.UTC()}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CompleteEnded - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(err, "CompleteEnded - execute update")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteEnded - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(err, op+" - execute update")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// classify переводит ошибки PostgreSQL в ошибки репозитория
func classify(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgExclusionViolation, pgUniqueViolation:
			return fmt.Errorf("%w: %s: %s", ErrSlotNotAvailable, op, pqErr.Message)
		case pgSerializationFailure:
			return fmt.Errorf("%w: %s: %s", ErrConcurrentModification, op, pqErr.Message)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	var clientID sql.NullString
	var status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&clientID,
		&s.WebinarID,
		&s.StartUTC,
		&s.EndUTC,
		&status,
		&s.PaymentID,
		&s.PaidAmountCents,
		&s.CancelledAt,
		&s.CancellationReason,
		&s.RefundAmountCents,
		&s.RefundReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.ClientID = clientID.String
	s.Status = domain.SessionStatus(status)
	s.StartUTC = s.StartUTC.UTC()
	s.EndUTC = s.EndUTC.UTC()
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSessions сканирует результаты запроса в слайс сессий
func scanSessions(rows *sql.Rows) ([]domain.Session, error) {
	sessions := make([]domain.Session, 0)

	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}

func statusStrings(statuses []domain.SessionStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
