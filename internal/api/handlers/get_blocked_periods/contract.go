package get_blocked_periods

import (
	"context"

	"github.com/anireserve/booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBlockedPeriods(ctx context.Context, professionalID, userID int64) (*models.BlockedPeriodListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
