package create_blocked_period

import (
	"time"

	"github.com/anireserve/booking-service/internal/domain"
	"github.com/anireserve/booking-service/internal/service/schedule/models"
)

// CreateBlockedPeriodRequest HTTP request model
type CreateBlockedPeriodRequest struct {
	StartDate string  `json:"startDate"` // "2026-09-06"
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockedPeriodRequest) ToServiceRequest(userID, professionalID int64) (*models.CreateBlockedPeriodRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &models.CreateBlockedPeriodRequest{
		UserID:         userID,
		ProfessionalID: professionalID,
		StartDate:      startDate,
		EndDate:        endDate,
		Reason:         r.Reason,
	}, nil
}
