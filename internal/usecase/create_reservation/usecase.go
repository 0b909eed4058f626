package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anireserve/booking-service/internal/domain"
	reservationRepo "github.com/anireserve/booking-service/internal/infra/storage/reservation"
	settingsRepo "github.com/anireserve/booking-service/internal/infra/storage/settings"
	"github.com/anireserve/booking-service/internal/integrations/notifier"
	proClient "github.com/anireserve/booking-service/internal/integrations/proservice"
	"github.com/anireserve/booking-service/pkg/ptr"
)

// Повторная попытка при нарушении exclusion constraint на пересечение слотов.
// Повтор перечитывает бронирования и возвращает ErrSlotNotAvailable штатно
const maxConflictAttempts = 2

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	settingsRepo    SettingsRepository
	proClient       ProServiceClient
	notifierClient  NotifierClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	proClient ProServiceClient,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		settingsRepo:    settingsRepo,
		proClient:       proClient,
		notifierClient:  notifierClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности слота и вставка выполняются в сериализуемой транзакции
// с блокировкой бронирований дня (FOR UPDATE). Exclusion constraint в БД
// выступает последней линией защиты от двойного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: client=%d, professional=%d, service=%v, date=%s, time=%s",
		req.ClientID, req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем профессионала
	professional, err := uc.proClient.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, proClient.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateReservation: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateReservation: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	if !professional.IsActive {
		uc.logger.Warn("CreateReservation: professional id=%d is inactive", req.ProfessionalID)
		return nil, ErrProfessionalInactive
	}

	// 4. Получаем услугу и длительность слота
	service, duration, err := uc.resolveService(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Проверка доступности и вставка в сериализуемой транзакции
	// При нарушении exclusion constraint повторяем один раз: повторное чтение
	// увидит победившее бронирование и вернет ErrSlotNotAvailable
	var result *domain.Reservation

	for attempt := 1; attempt <= maxConflictAttempts; attempt++ {
		result, err = uc.bookSlot(ctx, req, professional, service, duration, now)
		if err == nil {
			break
		}
		if errors.Is(err, reservationRepo.ErrSlotConflict) {
			uc.logger.Warn("CreateReservation: slot conflict on insert, attempt %d/%d", attempt, maxConflictAttempts)
			if attempt == maxConflictAttempts {
				return nil, ErrSlotNotAvailable
			}
			continue
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 6. Уведомляем профессионала о новой заявке (fire-and-forget)
	uc.notifyProfessional(ctx, result)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		ProfessionalID:  result.ProfessionalID,
		ServiceID:       result.ServiceID,
		ReservationDate: result.ReservationDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		TotalPrice:      result.TotalPrice,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolveService получает услугу и определяет длительность бронирования
// Без услуги бронирование почасовое с длительностью по умолчанию
func (uc *UseCase) resolveService(ctx context.Context, req *Request) (*proClient.Service, int, error) {
	if req.ServiceID == nil {
		return nil, domain.DefaultServiceDurationMinutes, nil
	}

	service, err := uc.proClient.GetService(ctx, req.ProfessionalID, *req.ServiceID)
	if err != nil {
		if errors.Is(err, proClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service id=%d not found", *req.ServiceID)
			return nil, 0, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service id=%d: %v", *req.ServiceID, err)
		return nil, 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.DurationMinutes <= 0 {
		uc.logger.Warn("CreateReservation: service id=%d has invalid duration %d",
			*req.ServiceID, service.DurationMinutes)
		return nil, 0, ErrInvalidService
	}

	return service, service.DurationMinutes, nil
}

// bookSlot выполняет проверку доступности слота и вставку бронирования в транзакции
func (uc *UseCase) bookSlot(
	ctx context.Context,
	req *Request,
	professional *proClient.Professional,
	service *proClient.Service,
	duration int,
	now time.Time,
) (*domain.Reservation, error) {
	var result *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем настройки слотов (или значения по умолчанию)
		settings, err := uc.settingsRepo.GetByProfessional(txCtx, req.ProfessionalID)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Error("CreateReservation: failed to get slot settings: %v", err)
				return fmt.Errorf("%w: failed to get slot settings: %v", ErrInternal, err)
			}
			settings = domain.DefaultSlotSettings(req.ProfessionalID)
			uc.logger.Info("CreateReservation: using default slot settings for professional=%d", req.ProfessionalID)
		}

		// 5.2. Валидация даты с учетом настроек
		if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateReservation: date validation failed: %v", err)
			return err
		}

		// 5.3. Валидация минимального времени до бронирования
		if err := validateNotice(req.Date, req.StartTime, now, settings.MinNoticeMinutes); err != nil {
			uc.logger.Warn("CreateReservation: notice validation failed: %v", err)
			return err
		}

		// 5.4. Периоды недоступности имеют высший приоритет
		blockedPeriods, err := uc.scheduleRepo.GetBlockedPeriodsForDate(txCtx, req.ProfessionalID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get blocked periods: %v", err)
			return fmt.Errorf("%w: failed to get blocked periods: %v", ErrInternal, err)
		}

		for _, period := range blockedPeriods {
			if period.Contains(req.Date) {
				uc.logger.Warn("CreateReservation: date %s is blocked for professional=%d",
					req.Date.Format(domain.DateFormat), req.ProfessionalID)
				return ErrSlotNotAvailable
			}
		}

		// 5.5. Проверяем, что слот попадает в сетку рабочего дня
		rules, err := uc.scheduleRepo.GetRulesByProfessional(txCtx, req.ProfessionalID)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get availability rules: %v", err)
			return fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}

		if len(rules) == 0 {
			rules = domain.DefaultWeeklyRules(req.ProfessionalID)
		}
		rule := domain.RuleForWeekday(rules, req.Date.Weekday())

		if err := validateSlotWithinRule(rule, req.StartTime, duration, settings.SlotGranularityMinutes); err != nil {
			uc.logger.Warn("CreateReservation: slot validation failed: %v", err)
			return err
		}

		// 5.6. Получаем активные бронирования дня с блокировкой (FOR UPDATE)
		filter := domain.ProfessionalReservationsFilter{
			ProfessionalID:  req.ProfessionalID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		reservations, err := uc.reservationRepo.GetByProfessionalWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 5.7. Проверяем доступность слота
		overlaps, err := hasOverlappingReservation(req.StartTime, duration, reservations)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check slot availability: %v", err)
			return fmt.Errorf("%w: failed to check slot availability: %v", ErrInternal, err)
		}

		if overlaps {
			uc.logger.Warn("CreateReservation: slot %s is already taken", req.StartTime)
			return ErrSlotNotAvailable
		}

		// 5.8. Создаем бронирование в статусе pending
		reservation := &domain.Reservation{
			ClientID:        req.ClientID,
			ProfessionalID:  req.ProfessionalID,
			ServiceID:       req.ServiceID,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			TotalPrice:      resolvePrice(professional, service, duration),
			Status:          domain.StatusPending,
		}

		// Денормализация названия услуги для истории
		if service != nil {
			reservation.ServiceName = ptr.Ptr(service.Name)
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotConflict) {
				return err
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// notifyProfessional отправляет уведомление о новой заявке
// Ошибки отправки логируются и не влияют на результат бронирования
func (uc *UseCase) notifyProfessional(ctx context.Context, reservation *domain.Reservation) {
	event := &notifier.Event{
		Kind:            notifier.EventCreated,
		Recipient:       notifier.RecipientProfessional,
		ReservationID:   reservation.ID,
		ProfessionalID:  reservation.ProfessionalID,
		ClientID:        reservation.ClientID,
		ReservationDate: reservation.ReservationDate.Format(domain.DateFormat),
		StartTime:       string(reservation.StartTime),
	}

	if err := uc.notifierClient.Send(ctx, event); err != nil {
		uc.logger.Warn("CreateReservation: failed to notify professional about reservation id=%d: %v",
			reservation.ID, err)
	}
}
