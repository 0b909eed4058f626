package get_available_slots

import (
	"context"
	"time"

	"github.com/anireserve/booking-service/internal/domain"
	"github.com/anireserve/booking-service/internal/integrations/proservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetByProfessionalWithFilter получает бронирования профессионала на конкретную дату
	GetByProfessionalWithFilter(ctx context.Context, filter domain.ProfessionalReservationsFilter) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetRulesByProfessional(ctx context.Context, professionalID int64) ([]*domain.AvailabilityRule, error)
	GetBlockedPeriodsForDate(ctx context.Context, professionalID int64, date time.Time) ([]*domain.BlockedPeriod, error)
}

// SettingsRepository интерфейс репозитория настроек слотов
type SettingsRepository interface {
	GetByProfessional(ctx context.Context, professionalID int64) (*domain.SlotSettings, error)
}

// ProServiceClient интерфейс клиента ProService
type ProServiceClient interface {
	GetProfessional(ctx context.Context, professionalID int64) (*proservice.Professional, error)
	GetService(ctx context.Context, professionalID, serviceID int64) (*proservice.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
