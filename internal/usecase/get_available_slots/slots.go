package get_available_slots

import (
	"time"

	"github.com/anireserve/booking-service/internal/domain"
	"github.com/anireserve/booking-service/pkg/types"
)

// generateTimeSlots генерирует список доступных начал слотов на день
// Слоты генерируются от начала рабочего окна с фиксированным шагом granularity;
// кандидат отбрасывается, если его интервал [start, start+duration) не помещается
// до конца рабочего окна или пересекает перерыв. Интервалы полуоткрытые:
// касание границ пересечением не считается
//
// Для запросов "на сегодня" отбрасываются слоты, начинающиеся не строго позже
// now + noticeMinutes. now передается явно, чтобы функция оставалась чистой
func generateTimeSlots(
	rule *domain.AvailabilityRule,
	granularity int,
	serviceDuration int,
	requestDate time.Time,
	now time.Time,
	noticeMinutes int,
) ([]types.TimeString, error) {
	// Даты в прошлом не обслуживаются
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	// Нет правила или день помечен недоступным
	if rule == nil || !rule.IsAvailable {
		return []types.TimeString{}, nil
	}

	allSlots := make([]types.TimeString, 0)
	currentSlot := rule.StartTime

	for currentSlot.IsBefore(rule.EndTime) {
		// Слот валиден, только если вся длительность помещается до конца окна
		slotEnd, err := currentSlot.AddMinutes(serviceDuration)
		if err != nil {
			// Интервал вышел за пределы суток - дальше слоты только позже
			break
		}
		if slotEnd.IsAfter(rule.EndTime) {
			break
		}

		if !overlapsBreak(currentSlot, slotEnd, rule.Breaks) {
			allSlots = append(allSlots, currentSlot)
		}

		currentSlot, err = currentSlot.AddMinutes(granularity)
		if err != nil {
			break
		}
	}

	// Для будущих дат возвращаем все слоты без фильтрации по времени
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Для сегодняшней даты оставляем только слоты строго в будущем
	// с учетом минимального времени до бронирования
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(noticeMinutes)
	if err != nil {
		// Минимально допустимое время за пределами суток - сегодня слотов нет
		return []types.TimeString{}, nil
	}

	availableSlots := make([]types.TimeString, 0)
	for _, slot := range allSlots {
		if slot.IsAfter(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// overlapsBreak проверяет пересечение интервала слота [slotStart, slotEnd)
// с каким-либо перерывом [break.Start, break.End)
// Строгие неравенства: граничащие интервалы не пересекаются
func overlapsBreak(slotStart, slotEnd types.TimeString, breaks []domain.Break) bool {
	for _, br := range breaks {
		if br.StartTime.IsBefore(slotEnd) && br.EndTime.IsAfter(slotStart) {
			return true
		}
	}
	return false
}

// filterAvailableSlots отбрасывает слоты, пересекающиеся с активными бронированиями
// Отмененные и отклоненные бронирования слоты не блокируют
//
// Примеры:
// - Слот 14:00-15:00, бронирование 14:30-15:30 → конфликт (пересечение 14:30-15:00)
// - Слот 14:00-15:00, бронирование 13:00-14:00 → НЕ конфликт (граничат)
// - Слот 14:00-15:00, бронирование 15:00-16:00 → НЕ конфликт (граничат)
func filterAvailableSlots(
	slots []types.TimeString,
	serviceDuration int,
	reservations []*domain.Reservation,
) []types.TimeString {
	available := make([]types.TimeString, 0, len(slots))

	for _, slot := range slots {
		if !slotConflicts(slot, serviceDuration, reservations) {
			available = append(available, slot)
		}
	}

	return available
}

// slotConflicts проверяет, пересекается ли слот с каким-либо активным бронированием
// Интервалы пересекаются, только если начало одного СТРОГО раньше конца другого
// в обе стороны - граничные случаи не считаются пересечением
func slotConflicts(slotStart types.TimeString, serviceDuration int, reservations []*domain.Reservation) bool {
	slotEnd, err := slotStart.AddMinutes(serviceDuration)
	if err != nil {
		// Не можем вычислить конец слота - считаем слот недоступным
		return true
	}

	for _, reservation := range reservations {
		// Пропускаем бронирования, не занимающие слот
		if !reservation.Blocks() {
			continue
		}

		reservationStart := reservation.StartTime
		reservationEnd, err := reservation.StartTime.AddMinutes(reservation.DurationMinutes)
		if err != nil {
			// Не можем вычислить конец бронирования, пропускаем
			continue
		}

		if reservationStart.IsBefore(slotEnd) && reservationEnd.IsAfter(slotStart) {
			return true
		}
	}

	return false
}

// isDateBlocked проверяет, попадает ли дата в какой-либо период недоступности
// Периоды недоступности имеют высший приоритет: правила доступности игнорируются
func isDateBlocked(date time.Time, periods []*domain.BlockedPeriod) bool {
	for _, period := range periods {
		if period.Contains(date) {
			return true
		}
	}
	return false
}

// resolveRule возвращает правило доступности на указанную дату
// Если у профессионала нет ни одного правила, применяется расписание
// по умолчанию (воскресенье-четверг 09:00-18:00). Если правила есть,
// но на этот день недели правила нет - день недоступен (nil)
func resolveRule(rules []*domain.AvailabilityRule, professionalID int64, date time.Time) *domain.AvailabilityRule {
	if len(rules) == 0 {
		rules = domain.DefaultWeeklyRules(professionalID)
	}
	return domain.RuleForWeekday(rules, date.Weekday())
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
