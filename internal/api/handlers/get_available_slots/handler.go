package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/anireserve/booking-service/internal/api/handlers"
	getAvailableSlots "github.com/anireserve/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidServiceID      = "некорректный ID услуги"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgProfessionalNotFound  = "профессионал не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgInvalidService        = "услуга имеет некорректные параметры"
	msgInvalidSlotsDate      = "некорректная дата"
	msgDateTooFar            = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/available-slots
// Query params: date (required, YYYY-MM-DD), serviceId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем professionalId из URL
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/available-slots - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /professionals/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(professionalID, serviceIDStr, dateStr)
	if err != nil {
		if serviceIDStr != "" {
			h.logger.Warn("GET /professionals/{id}/available-slots - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		h.logger.Warn("GET /professionals/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrProfessionalNotFound):
			h.logger.Warn("GET /professionals/{id}/available-slots - Professional not found: professional_id=%d",
				professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /professionals/{id}/available-slots - Service not found: professional_id=%d, service_id=%s",
				professionalID, serviceIDStr)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidService):
			h.logger.Warn("GET /professionals/{id}/available-slots - Invalid service: professional_id=%d, service_id=%s",
				professionalID, serviceIDStr)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /professionals/{id}/available-slots - Invalid date: professional_id=%d, date=%s",
				professionalID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidSlotsDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /professionals/{id}/available-slots - Date too far in future: professional_id=%d, date=%s",
				professionalID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/available-slots - Invalid input: professional_id=%d", professionalID)
			handlers.RespondBadRequest(w, msgInvalidProfessionalID)

		default:
			h.logger.Error("GET /professionals/{id}/available-slots - Failed to get slots: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /professionals/{id}/available-slots - Slots retrieved successfully: professional_id=%d, date=%s, slots_count=%d",
		professionalID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
