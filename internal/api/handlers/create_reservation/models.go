package create_reservation

import (
	"time"

	"github.com/anireserve/booking-service/internal/domain"
	createReservation "github.com/anireserve/booking-service/internal/usecase/create_reservation"
	"github.com/anireserve/booking-service/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ProfessionalID  int64  `json:"professionalId"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	ReservationDate string `json:"reservationDate"` // "2026-09-06"
	StartTime       string `json:"startTime"`       // "10:00"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	ProfessionalID  int64   `json:"professionalId"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	ReservationDate string  `json:"reservationDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	TotalPrice      float64 `json:"totalPrice"`
	Status          string  `json:"status"`
	ServiceName     *string `json:"serviceName,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(clientID int64) (*createReservation.Request, error) {
	// Парсим дату
	reservationDate, err := time.Parse(domain.DateFormat, r.ReservationDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		ClientID:       clientID,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		Date:           reservationDate,
		StartTime:      startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		ProfessionalID:  resp.ProfessionalID,
		ServiceID:       resp.ServiceID,
		ReservationDate: resp.ReservationDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		TotalPrice:      resp.TotalPrice,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
