package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/anireserve/booking-service/internal/domain"
	reservationRepo "github.com/anireserve/booking-service/internal/infra/storage/reservation"
	"github.com/anireserve/booking-service/internal/integrations/notifier"
	"github.com/anireserve/booking-service/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	notifierClient  NotifierClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	notifierClient NotifierClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		notifierClient:  notifierClient,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видят только его клиент и его профессионал
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.getReservation(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if reservation.ClientID != userID && reservation.ProfessionalID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetClientReservations получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientReservations(ctx context.Context, req *models.GetClientReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetClientReservations: fetching reservations for client=%d, status=%v", req.ClientID, req.Status)

	// Конвертируем статус из строки в domain.ReservationStatus
	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientReservations: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientReservations: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientReservations: successfully fetched %d reservations for client=%d",
		len(reservations), req.ClientID)
	return models.FromDomainReservationList(reservations), nil
}

// GetProfessionalReservations получает бронирования профессионала с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований
// Доступно только самому профессионалу
//
// Примеры использования:
// - Расписание на день: StartDate и EndDate указывают на одну дату
// - Бронирования за период: StartDate и EndDate указывают на разные даты
// - Только ожидающие подтверждения: указать Status = "pending"
// - Включая отмененные: IncludeInactive = true
func (s *Service) GetProfessionalReservations(ctx context.Context, req *models.GetProfessionalReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("GetProfessionalReservations: fetching reservations for professional=%d, user=%d",
		req.ProfessionalID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Расписание профессионала видит только он сам
	if req.UserID != req.ProfessionalID {
		s.logger.Warn("GetProfessionalReservations: access denied for user=%d to professional=%d",
			req.UserID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProfessionalReservations: invalid filter for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByProfessionalWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProfessionalReservations: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: GetProfessionalReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProfessionalReservations: successfully fetched %d reservations for professional=%d",
		len(reservations), req.ProfessionalID)
	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus переводит бронирование в новый статус по машине состояний
//
//	pending   -> confirmed | rejected
//	confirmed -> completed
//
// Доступно только профессионалу бронирования. Отмена выполняется через Cancel.
// Обновление условное (WHERE status = from): устаревший переход не изменяет запись
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d",
		reservationID, req.Status, req.UserID)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	// Отмена идет через отдельную операцию с указанием причины
	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation requested via status update for reservation id=%d", reservationID)
		return fmt.Errorf("%w: use the cancel operation instead", ErrInvalidStatus)
	}

	// Получаем бронирование
	reservation, err := s.getReservation(ctx, reservationID, "UpdateStatus")
	if err != nil {
		return err
	}

	// Подтверждать, отклонять и завершать может только профессионал
	if reservation.ProfessionalID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
		return ErrAccessDenied
	}

	// Проверяем допустимость перехода
	if err := domain.ValidateTransition(reservation.Status, newStatus); err != nil {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for reservation id=%d",
			reservation.Status, newStatus, reservationID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, newStatus)
	}

	// Обновляем статус условно: к моменту записи статус мог измениться конкурентно
	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, reservation.Status, newStatus); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", reservationID)
			return ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrStatusConflict):
			s.logger.Warn("UpdateStatus: reservation id=%d status changed concurrently", reservationID)
			return fmt.Errorf("%w: reservation status changed concurrently", ErrInvalidTransition)
		default:
			s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)

	// Уведомляем клиента о решении профессионала (fire-and-forget)
	s.notify(ctx, reservation, statusEventKind(newStatus), notifier.RecipientClient, nil)

	return nil
}

// Cancel отменяет бронирование с указанием причины
// Отменить могут обе стороны: клиент или профессионал бронирования
// Отмена возможна только из статусов pending и confirmed
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReason {
		s.logger.Warn("Cancel: cancellation reason too long for reservation id=%d", reservationID)
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	// Получаем бронирование
	reservation, err := s.getReservation(ctx, reservationID, "Cancel")
	if err != nil {
		return err
	}

	// Отменить может клиент или профессионал бронирования
	if reservation.ClientID != req.UserID && reservation.ProfessionalID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
		return ErrAccessDenied
	}

	// Проверяем, можно ли отменить бронирование
	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	// Отменяем условно от текущего статуса
	if err := s.reservationRepo.Cancel(ctx, reservationID, reservation.Status, req.CancellationReason); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrStatusConflict):
			s.logger.Warn("Cancel: reservation id=%d status changed concurrently", reservationID)
			return ErrCannotCancel
		default:
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)

	// Уведомляем другую сторону об отмене (fire-and-forget)
	recipient := notifier.RecipientClient
	if reservation.ClientID == req.UserID {
		recipient = notifier.RecipientProfessional
	}

	var reason *string
	if req.CancellationReason != "" {
		reason = &req.CancellationReason
	}
	s.notify(ctx, reservation, notifier.EventCancelled, recipient, reason)

	return nil
}

// Вспомогательные методы

// getReservation получает бронирование по ID с маппингом ошибок репозитория
func (s *Service) getReservation(ctx context.Context, id int64, op string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// notify отправляет уведомление о событии бронирования
// Ошибки отправки логируются и не влияют на результат операции
func (s *Service) notify(
	ctx context.Context,
	reservation *domain.Reservation,
	kind notifier.EventKind,
	recipient notifier.RecipientKind,
	reason *string,
) {
	event := &notifier.Event{
		Kind:            kind,
		Recipient:       recipient,
		ReservationID:   reservation.ID,
		ProfessionalID:  reservation.ProfessionalID,
		ClientID:        reservation.ClientID,
		ReservationDate: reservation.ReservationDate.Format(domain.DateFormat),
		StartTime:       string(reservation.StartTime),
		Reason:          reason,
	}

	if err := s.notifierClient.Send(ctx, event); err != nil {
		s.logger.Warn("notify: failed to send %s event for reservation id=%d: %v", kind, reservation.ID, err)
	}
}

// statusEventKind возвращает тип события уведомления для нового статуса
func statusEventKind(status domain.ReservationStatus) notifier.EventKind {
	switch status {
	case domain.StatusConfirmed:
		return notifier.EventConfirmed
	case domain.StatusRejected:
		return notifier.EventRejected
	case domain.StatusCompleted:
		return notifier.EventCompleted
	default:
		return notifier.EventKind(string(status))
	}
}
