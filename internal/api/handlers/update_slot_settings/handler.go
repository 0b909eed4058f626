package update_slot_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/anireserve/booking-service/internal/api/handlers"
	"github.com/anireserve/booking-service/internal/api/middleware"
	"github.com/anireserve/booking-service/internal/service/settings"
	"github.com/anireserve/booking-service/internal/service/settings/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgAccessDenied          = "доступ запрещен"
	msgInvalidSettings       = "некорректные параметры настроек"
)

// UpdateSettingsRequest HTTP request model
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	SlotGranularityMinutes *int `json:"slotGranularityMinutes,omitempty"`
	MinNoticeMinutes       *int `json:"minNoticeMinutes,omitempty"`
	AdvanceBookingDays     *int `json:"advanceBookingDays,omitempty"`
}

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/professionals/{professionalId}/slot-settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем professionalId из URL
	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /professionals/{id}/slot-settings - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /professionals/{id}/slot-settings - Missing user ID: professional_id=%d", professionalID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /professionals/{id}/slot-settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем сервис
	serviceReq := &models.UpdateSettingsRequest{
		UserID:                 userID,
		ProfessionalID:         professionalID,
		SlotGranularityMinutes: req.SlotGranularityMinutes,
		MinNoticeMinutes:       req.MinNoticeMinutes,
		AdvanceBookingDays:     req.AdvanceBookingDays,
	}

	result, err := h.service.Update(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("PUT /professionals/{id}/slot-settings - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /professionals/{id}/slot-settings - Invalid settings: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidSettings)

		default:
			h.logger.Error("PUT /professionals/{id}/slot-settings - Failed to update settings: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /professionals/{id}/slot-settings - Settings updated successfully: professional_id=%d",
		professionalID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
