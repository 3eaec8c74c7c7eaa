package domain

import "time"

// SessionStatus represents the lifecycle state of a booked session
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusLive      SessionStatus = "live"
	SessionStatusCancelled SessionStatus = "cancelled"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session is an existing commitment of an owner that can conflict with new bookings.
// Sessions are never deleted: they end up cancelled or completed.
type Session struct {
	ID        string
	OwnerID   string
	ClientID  string
	WebinarID *string // set for sessions generated from a webinar schedule
	StartUTC  time.Time
	EndUTC    time.Time
	Status    SessionStatus

	PaymentID       *string
	PaidAmountCents int64

	CancelledAt        *time.Time
	CancellationReason *string
	RefundAmountCents  *int64
	RefundReason       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the session participates in conflict checks
func (s *Session) IsActive() bool {
	return s.Status == SessionStatusScheduled || s.Status == SessionStatusLive
}

// CanBeCancelled returns true if the session can still be cancelled
func (s *Session) CanBeCancelled() bool {
	return s.Status == SessionStatusScheduled
}

// CanBeRescheduled returns true if the session can be moved to another time
func (s *Session) CanBeRescheduled() bool {
	return s.Status == SessionStatusScheduled
}

// IsCancelled returns true if the session has been cancelled
func (s *Session) IsCancelled() bool {
	return s.Status == SessionStatusCancelled
}

// Duration returns the length of the session
func (s *Session) Duration() time.Duration {
	return s.EndUTC.Sub(s.StartUTC)
}

// CanTransitionTo reports whether the status change is allowed:
// scheduled -> live -> completed, scheduled|live -> cancelled.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	switch s {
	case SessionStatusScheduled:
		return next == SessionStatusLive || next == SessionStatusCompleted || next == SessionStatusCancelled
	case SessionStatusLive:
		return next == SessionStatusCompleted || next == SessionStatusCancelled
	default:
		return false
	}
}

// ParseSessionStatus validates a status string
func ParseSessionStatus(status string) (SessionStatus, bool) {
	s := SessionStatus(status)
	switch s {
	case SessionStatusScheduled, SessionStatusLive, SessionStatusCancelled, SessionStatusCompleted:
		return s, true
	default:
		return "", false
	}
}

// OwnerSessionsFilter фильтр для получения сессий владельца
type OwnerSessionsFilter struct {
	OwnerID         string         // Обязательный параметр
	From            *time.Time     // Начало периода по start_utc (включительно)
	To              *time.Time     // Конец периода по start_utc (не включительно)
	Status          *SessionStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и завершенные сессии
}
