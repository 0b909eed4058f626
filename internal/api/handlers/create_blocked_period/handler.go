package create_blocked_period

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
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDates          = "некорректный формат дат, ожидается YYYY-MM-DD"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgAccessDenied          = "доступ запрещен"
	msgInvalidPeriod         = "некорректный период недоступности"
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

// Handle POST /api/v1/professionals/{professionalId}/blocked-periods
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем professionalId из URL
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/blocked-periods - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /professionals/{id}/blocked-periods - Missing user ID: professional_id=%d", professionalID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBlockedPeriodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /professionals/{id}/blocked-periods - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель сервиса (с парсингом дат)
	serviceReq, err := req.ToServiceRequest(userID, professionalID)
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/blocked-periods - Invalid dates: professional_id=%d, error=%v",
			professionalID, err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	// Вызываем сервис
	result, err := h.service.CreateBlockedPeriod(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /professionals/{id}/blocked-periods - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /professionals/{id}/blocked-periods - Invalid period: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("POST /professionals/{id}/blocked-periods - Failed to create period: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /professionals/{id}/blocked-periods - Period created successfully: professional_id=%d, period_id=%d",
		professionalID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
