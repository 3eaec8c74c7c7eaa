package app

import (
	"context"
	"time"
)

// SessionCompleter переводит закончившиеся сессии в completed
type SessionCompleter interface {
	CompleteEnded(ctx context.Context, now time.Time) (int64, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
