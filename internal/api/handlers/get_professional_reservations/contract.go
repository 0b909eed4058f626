package get_professional_reservations

import (
	"context"

	"github.com/anireserve/booking-service/internal/service/reservations/models"
)

type ReservationsService interface {
	GetProfessionalReservations(ctx context.Context, req *models.GetProfessionalReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
