package create_reservation

import (
	"fmt"
	"time"

	"github.com/anireserve/booking-service/internal/domain"
	"github.com/anireserve/booking-service/internal/integrations/proservice"
	"github.com/anireserve/booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Клиент не может бронировать сам себя
	if req.ClientID == req.ProfessionalID {
		return fmt.Errorf("%w: client and professional must differ", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(reservationDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(reservationDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение advanceBookingDays
	maxDate := domain.DateOnly(now).AddDate(0, 0, advanceBookingDays)

	if domain.DateOnly(reservationDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет, что бронирование не нарушает minNoticeMinutes
// Слот должен начинаться СТРОГО позже now + minNoticeMinutes
func validateNotice(
	reservationDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minNoticeMinutes int,
) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !isSameDay(reservationDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// Минимально допустимое время за пределами суток
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	if !startTime.IsAfter(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// validateSlotWithinRule проверяет, что запрошенный слот попадает в сетку слотов дня:
// лежит в рабочем окне, выровнен по шагу генерации и не пересекает перерывы
func validateSlotWithinRule(
	rule *domain.AvailabilityRule,
	startTime types.TimeString,
	durationMinutes int,
	granularity int,
) error {
	// Нет правила или день помечен недоступным
	if rule == nil || !rule.IsAvailable {
		return ErrInvalidTimeSlot
	}

	if startTime.IsBefore(rule.StartTime) {
		return fmt.Errorf("%w: before working hours", ErrInvalidTimeSlot)
	}

	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: slot extends past midnight", ErrInvalidTimeSlot)
	}

	if slotEnd.IsAfter(rule.EndTime) {
		return fmt.Errorf("%w: slot does not fit into working hours", ErrInvalidTimeSlot)
	}

	// Старт должен быть выровнен по шагу генерации слотов
	startMinute, err := startTime.MinuteOfDay()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	windowStart, err := rule.StartTime.MinuteOfDay()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if granularity > 0 && (startMinute-windowStart)%granularity != 0 {
		return fmt.Errorf("%w: start time is not aligned to the slot grid", ErrInvalidTimeSlot)
	}

	// Слот не должен пересекать перерывы (граничащие интервалы допустимы)
	for _, br := range rule.Breaks {
		if br.StartTime.IsBefore(slotEnd) && br.EndTime.IsAfter(startTime) {
			return fmt.Errorf("%w: slot overlaps a break", ErrInvalidTimeSlot)
		}
	}

	return nil
}

// hasOverlappingReservation проверяет пересечение запрошенного слота
// с активными бронированиями. Строгие неравенства: граничащие интервалы допустимы
func hasOverlappingReservation(
	startTime types.TimeString,
	durationMinutes int,
	reservations []*domain.Reservation,
) (bool, error) {
	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return false, err
	}

	for _, reservation := range reservations {
		// Пропускаем бронирования, не занимающие слот
		if !reservation.Blocks() {
			continue
		}

		reservationEnd, err := reservation.StartTime.AddMinutes(reservation.DurationMinutes)
		if err != nil {
			continue
		}

		if reservation.StartTime.IsBefore(slotEnd) && reservationEnd.IsAfter(startTime) {
			return true, nil
		}
	}

	return false, nil
}

// resolvePrice вычисляет итоговую цену бронирования
// У услуги с фиксированной ценой берется она, иначе применяется
// почасовая ставка профессионала пропорционально длительности
func resolvePrice(professional *proservice.Professional, service *proservice.Service, durationMinutes int) float64 {
	if service != nil && service.Price != nil {
		return *service.Price
	}
	return professional.HourlyRate * float64(durationMinutes) / 60.0
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now))
}
