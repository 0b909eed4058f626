package get_schedule

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/anireserve/booking-service/internal/api/handlers"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
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

// Handle GET /api/v1/professionals/{professionalId}/schedule
// Публичный endpoint: расписание видят клиенты при выборе времени
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем professionalId из URL
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/schedule - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	// Вызываем сервис
	schedule, err := h.service.GetSchedule(r.Context(), professionalID)
	if err != nil {
		h.logger.Error("GET /professionals/{id}/schedule - Failed to get schedule: professional_id=%d, error=%v",
			professionalID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /professionals/{id}/schedule - Schedule retrieved successfully: professional_id=%d, rules_count=%d",
		professionalID, len(schedule.Rules))
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
