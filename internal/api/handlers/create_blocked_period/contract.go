package create_blocked_period

import (
	"context"

	"github.com/anireserve/booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateBlockedPeriod(ctx context.Context, req *models.CreateBlockedPeriodRequest) (*models.BlockedPeriodResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
