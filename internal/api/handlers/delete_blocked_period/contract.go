package delete_blocked_period

import "context"

type ScheduleService interface {
	DeleteBlockedPeriod(ctx context.Context, professionalID, periodID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
