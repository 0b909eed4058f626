package get_professional_reservations

import (
	"net/url"
	"strconv"
	"time"

	"github.com/anireserve/booking-service/internal/domain"
	"github.com/anireserve/booking-service/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
// Query params: startDate, endDate (YYYY-MM-DD), status, includeInactive
func ToServiceRequest(userID, professionalID int64, query url.Values) (*models.GetProfessionalReservationsRequest, error) {
	req := &models.GetProfessionalReservationsRequest{
		UserID:         userID,
		ProfessionalID: professionalID,
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
