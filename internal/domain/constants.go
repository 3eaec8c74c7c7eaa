package domain

// Default configuration values
// Используются, если у владельца нет своих настроек и в конфиге ничего не задано
const (
	DefaultSessionDurationMinutes    = 60
	DefaultBufferMinutes             = 0
	DefaultMinLeadTimeMinutes        = 120 // 2 hours
	DefaultCancellationDeadlineHours = 24
	DefaultTimezone                  = "UTC"
	DefaultMaxRecurrenceOccurrences  = 104
)

// Business validation constants
const (
	MinSessionDurationMinutes    = 5
	MaxSessionDurationMinutes    = 480 // 8 hours
	MaxBufferMinutes             = 240
	MaxMinLeadTimeMinutes        = 10080 // 1 week
	MaxCancellationDeadlineHours = 720   // 30 days
	MaxWebinarTitleLength        = 200
	MaxCancellationReasonLength  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы сессий, которые участвуют в проверке конфликтов
var ActiveStatuses = []SessionStatus{
	SessionStatusScheduled,
	SessionStatusLive,
}

// InactiveStatuses статусы сессий, которые никогда не конфликтуют
var InactiveStatuses = []SessionStatus{
	SessionStatusCancelled,
	SessionStatusCompleted,
}
