package get_client_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/anireserve/booking-service/internal/api/handlers"
	"github.com/anireserve/booking-service/internal/api/middleware"
	"github.com/anireserve/booking-service/internal/service/reservations"
	"github.com/anireserve/booking-service/internal/service/reservations/models"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgAccessDenied    = "доступ запрещен"
	msgInvalidStatus   = "некорректный статус для фильтрации"
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

// Handle GET /api/v1/clients/{clientId}/reservations
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем clientId из URL
	clientID, err := strconv.ParseInt(vars["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{id}/reservations - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{id}/reservations - Missing user ID: client_id=%d", clientID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Историю бронирований клиента видит только он сам
	if userID != clientID {
		h.logger.Warn("GET /clients/{id}/reservations - Access denied: client_id=%d, user_id=%d", clientID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	// Формируем запрос к сервису с опциональным фильтром по статусу
	req := &models.GetClientReservationsRequest{
		ClientID: clientID,
	}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	// Вызываем сервис
	result, err := h.service.GetClientReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /clients/{id}/reservations - Invalid status filter: client_id=%d", clientID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /clients/{id}/reservations - Failed to get reservations: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/reservations - Reservations retrieved successfully: client_id=%d, count=%d",
		clientID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
