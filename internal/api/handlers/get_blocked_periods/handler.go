package get_blocked_periods

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/anireserve/booking-service/internal/api/handlers"
	"github.com/anireserve/booking-service/internal/api/middleware"
	"github.com/anireserve/booking-service/internal/service/schedule"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgAccessDenied          = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/blocked-periods
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем professionalId из URL
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/blocked-periods - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /professionals/{id}/blocked-periods - Missing user ID: professional_id=%d", professionalID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Вызываем сервис
	result, err := h.service.GetBlockedPeriods(r.Context(), professionalID, userID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /professionals/{id}/blocked-periods - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /professionals/{id}/blocked-periods - Failed to get periods: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/blocked-periods - Periods retrieved successfully: professional_id=%d, count=%d",
		professionalID, len(result.BlockedPeriods))
	handlers.RespondJSON(w, http.StatusOK, result)
}
