package schedule_webinar

import (
	"context"

	scheduleWebinar "github.com/m04kA/SMC-SchedulingService/internal/usecase/schedule_webinar"
)

type ScheduleWebinarUseCase interface {
	Execute(ctx context.Context, req *scheduleWebinar.Request) (*scheduleWebinar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
