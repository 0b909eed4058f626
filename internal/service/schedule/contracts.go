package schedule

import (
	"context"
	"time"

	"github.com/anireserve/booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetRulesByProfessional(ctx context.Context, professionalID int64) ([]*domain.AvailabilityRule, error)
	UpsertRule(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	GetBlockedPeriods(ctx context.Context, professionalID int64) ([]*domain.BlockedPeriod, error)
	GetBlockedPeriodsForDate(ctx context.Context, professionalID int64, date time.Time) ([]*domain.BlockedPeriod, error)
	CreateBlockedPeriod(ctx context.Context, period *domain.BlockedPeriod) (*domain.BlockedPeriod, error)
	DeleteBlockedPeriod(ctx context.Context, professionalID, periodID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
