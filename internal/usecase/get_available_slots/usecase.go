package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/anireserve/booking-service/internal/domain"
	settingsRepo "github.com/anireserve/booking-service/internal/infra/storage/settings"
	proClient "github.com/anireserve/booking-service/internal/integrations/proservice"
)

// UseCase use case для получения доступных слотов для бронирования
// Композиция чистых функций: генерация слотов по правилам доступности (slots.go)
// и фильтрация по активным бронированиям. Все данные загружаются заранее,
// сама слот-логика работает без I/O
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	settingsRepo    SettingsRepository
	proClient       ProServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	proClient ProServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		settingsRepo:    settingsRepo,
		proClient:       proClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%d, service=%v, date=%s",
		req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование профессионала
	if _, err := uc.proClient.GetProfessional(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, proClient.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 4. Определяем длительность слота по услуге (или 60 минут по умолчанию)
	serviceDuration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Получаем настройки слотов (или значения по умолчанию)
	settings, err := uc.loadSettings(ctx, req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	// 6. Валидация даты с учетом настроек
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Периоды недоступности имеют высший приоритет - слотов нет
	blockedPeriods, err := uc.scheduleRepo.GetBlockedPeriodsForDate(ctx, req.ProfessionalID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked periods: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked periods: %v", ErrInternal, err)
	}

	if isDateBlocked(req.Date, blockedPeriods) {
		uc.logger.Info("GetAvailableSlots: date %s is blocked for professional=%d",
			req.Date.Format(domain.DateFormat), req.ProfessionalID)
		return uc.emptyResponse(req), nil
	}

	// 8. Получаем правило доступности на день недели (с fallback на расписание по умолчанию)
	rules, err := uc.scheduleRepo.GetRulesByProfessional(ctx, req.ProfessionalID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	rule := resolveRule(rules, req.ProfessionalID, req.Date)

	// 9. Генерируем временные слоты
	timeSlots, err := generateTimeSlots(
		rule,
		settings.SlotGranularityMinutes,
		serviceDuration,
		req.Date,
		now,
		settings.MinNoticeMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 10. Получаем активные бронирования на эту дату
	filter := domain.ProfessionalReservationsFilter{
		ProfessionalID:  req.ProfessionalID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только занимающие слот бронирования
	}

	reservations, err := uc.reservationRepo.GetByProfessionalWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 11. Отбрасываем слоты, пересекающиеся с бронированиями
	availableSlots := filterAvailableSlots(timeSlots, serviceDuration, reservations)

	slots := make([]Slot, len(availableSlots))
	for i, slot := range availableSlots {
		slots[i] = Slot{
			StartTime:       slot,
			DurationMinutes: serviceDuration,
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for professional=%d, date=%s",
		len(slots), req.ProfessionalID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:           req.Date,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Slots:          slots,
	}, nil
}

// resolveDuration определяет длительность слота по услуге
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.ServiceID == nil {
		return domain.DefaultServiceDurationMinutes, nil
	}

	service, err := uc.proClient.GetService(ctx, req.ProfessionalID, *req.ServiceID)
	if err != nil {
		if errors.Is(err, proClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
			return 0, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// Услуга с нулевой длительностью не может порождать слоты
	if service.DurationMinutes <= 0 {
		uc.logger.Warn("GetAvailableSlots: service id=%d has invalid duration %d",
			*req.ServiceID, service.DurationMinutes)
		return 0, ErrInvalidService
	}

	return service.DurationMinutes, nil
}

// loadSettings получает настройки слотов профессионала или значения по умолчанию
func (uc *UseCase) loadSettings(ctx context.Context, professionalID int64) (*domain.SlotSettings, error) {
	settings, err := uc.settingsRepo.GetByProfessional(ctx, professionalID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Info("GetAvailableSlots: using default slot settings for professional=%d", professionalID)
			return domain.DefaultSlotSettings(professionalID), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get slot settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot settings: %v", ErrInternal, err)
	}
	return settings, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:           req.Date,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Slots:          []Slot{},
	}
}
