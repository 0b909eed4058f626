package get_professional_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/anireserve/booking-service/internal/api/handlers"
	"github.com/anireserve/booking-service/internal/api/middleware"
	"github.com/anireserve/booking-service/internal/service/reservations"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidQueryParams    = "некорректные параметры фильтрации"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgAccessDenied          = "доступ запрещен"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/reservations
// Query params: startDate, endDate (YYYY-MM-DD), status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем professionalId из URL
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/reservations - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /professionals/{id}/reservations - Missing user ID: professional_id=%d", professionalID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Формируем запрос к сервису из query параметров
	req, err := ToServiceRequest(userID, professionalID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/reservations - Invalid query params: professional_id=%d, error=%v",
			professionalID, err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	// Вызываем сервис
	result, err := h.service.GetProfessionalReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /professionals/{id}/reservations - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/reservations - Invalid filter: professional_id=%d", professionalID)
			handlers.RespondBadRequest(w, msgInvalidQueryParams)

		default:
			h.logger.Error("GET /professionals/{id}/reservations - Failed to get reservations: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/reservations - Reservations retrieved successfully: professional_id=%d, count=%d",
		professionalID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
