package create_reservation

import (
	"errors"
	"net/http"

	"github.com/anireserve/booking-service/internal/api/handlers"
	"github.com/anireserve/booking-service/internal/api/middleware"
	createReservation "github.com/anireserve/booking-service/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgProfessionalNotFound = "профессионал не найден"
	msgProfessionalInactive = "профессионал не принимает бронирования"
	msgServiceNotFound      = "услуга не найдена"
	msgInvalidService       = "услуга имеет некорректные параметры"
	msgInvalidDate          = "некорректная дата бронирования"
	msgDateTooFar           = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot      = "некорректный временной слот"
	msgTooLateToBook        = "слишком поздно для бронирования этого слота"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем clientID из контекста (через middleware Auth)
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: client_id=%d, professional_id=%d",
				clientID, req.ProfessionalID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrProfessionalNotFound):
			h.logger.Warn("POST /reservations - Professional not found: professional_id=%d", req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, createReservation.ErrProfessionalInactive):
			h.logger.Warn("POST /reservations - Professional inactive: professional_id=%d", req.ProfessionalID)
			handlers.RespondError(w, http.StatusConflict, msgProfessionalInactive)

		case errors.Is(err, createReservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: client_id=%d, professional_id=%d",
				clientID, req.ProfessionalID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createReservation.ErrInvalidService):
			h.logger.Warn("POST /reservations - Invalid service: client_id=%d, professional_id=%d",
				clientID, req.ProfessionalID)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid reservation date: client_id=%d, professional_id=%d",
				clientID, req.ProfessionalID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrDateTooFarInFuture):
			h.logger.Warn("POST /reservations - Date too far in future: client_id=%d, professional_id=%d",
				clientID, req.ProfessionalID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Invalid time slot: client_id=%d, professional_id=%d",
				clientID, req.ProfessionalID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrTooLateToBook):
			h.logger.Warn("POST /reservations - Too late to book: client_id=%d, professional_id=%d",
				clientID, req.ProfessionalID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: client_id=%d, professional_id=%d",
				clientID, req.ProfessionalID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: client_id=%d, professional_id=%d, error=%v",
				clientID, req.ProfessionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, client_id=%d, professional_id=%d",
		result.ID, clientID, req.ProfessionalID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
