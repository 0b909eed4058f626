package reservations

import (
	"context"

	"github.com/anireserve/booking-service/internal/domain"
	"github.com/anireserve/booking-service/internal/integrations/notifier"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByProfessionalWithFilter(ctx context.Context, filter domain.ProfessionalReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) error
	Cancel(ctx context.Context, id int64, from domain.ReservationStatus, reason string) error
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	Send(ctx context.Context, event *notifier.Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
