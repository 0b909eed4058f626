package delete_blocked_period

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
	msgInvalidPeriodID       = "некорректный ID периода"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgAccessDenied          = "доступ запрещен"
	msgPeriodNotFound        = "период недоступности не найден"
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

// Handle DELETE /api/v1/professionals/{professionalId}/blocked-periods/{periodId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем professionalId из URL
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/blocked-periods/{periodId} - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	// Извлекаем periodId из URL
	periodID, err := strconv.ParseInt(vars["periodId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/blocked-periods/{periodId} - Invalid period ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriodID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /professionals/{id}/blocked-periods/{periodId} - Missing user ID: professional_id=%d",
			professionalID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Вызываем сервис
	if err := h.service.DeleteBlockedPeriod(r.Context(), professionalID, periodID, userID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /professionals/{id}/blocked-periods/{periodId} - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrBlockedPeriodNotFound):
			h.logger.Warn("DELETE /professionals/{id}/blocked-periods/{periodId} - Period not found: professional_id=%d, period_id=%d",
				professionalID, periodID)
			handlers.RespondNotFound(w, msgPeriodNotFound)

		default:
			h.logger.Error("DELETE /professionals/{id}/blocked-periods/{periodId} - Failed to delete period: period_id=%d, error=%v",
				periodID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /professionals/{id}/blocked-periods/{periodId} - Period deleted successfully: professional_id=%d, period_id=%d",
		professionalID, periodID)
	handlers.RespondNoContent(w)
}
