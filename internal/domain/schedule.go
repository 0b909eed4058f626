package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/anireserve/booking-service/pkg/types"
)

var (
	// ErrInvalidWorkingWindow возвращается, когда начало рабочего дня не раньше конца
	ErrInvalidWorkingWindow = errors.New("working window start must be before end")

	// ErrInvalidBreak возвращается при некорректном перерыве
	ErrInvalidBreak = errors.New("invalid break interval")

	// ErrInvalidBlockedPeriod возвращается при некорректном периоде недоступности
	ErrInvalidBlockedPeriod = errors.New("blocked period start date must not be after end date")

	// ErrInvalidDayOfWeek возвращается при дне недели вне диапазона 0..6
	ErrInvalidDayOfWeek = errors.New("day of week must be in range 0..6")
)

// Break перерыв внутри рабочего дня (например, обед)
type Break struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// AvailabilityRule еженедельное правило доступности профессионала
// Не более одного правила на (профессионал, день недели), upsert-семантика
type AvailabilityRule struct {
	ID             int64
	ProfessionalID int64
	DayOfWeek      int // 0 = воскресенье ... 6 = суббота
	IsAvailable    bool
	StartTime      types.TimeString
	EndTime        types.TimeString
	Breaks         []Break // Отсортированы, не пересекаются, лежат внутри рабочего окна

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет инварианты правила доступности
func (r *AvailabilityRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, r.DayOfWeek)
	}

	// Для недоступного дня рабочее окно и перерывы не проверяются
	if !r.IsAvailable {
		return nil
	}

	if err := r.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidWorkingWindow, err)
	}
	if err := r.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidWorkingWindow, err)
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidWorkingWindow, r.StartTime, r.EndTime)
	}

	return r.validateBreaks()
}

// validateBreaks проверяет, что перерывы корректны, отсортированы,
// не пересекаются и полностью лежат внутри рабочего окна
func (r *AvailabilityRule) validateBreaks() error {
	var prevEnd types.TimeString

	for i, br := range r.Breaks {
		if err := br.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: break %d start: %v", ErrInvalidBreak, i, err)
		}
		if err := br.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: break %d end: %v", ErrInvalidBreak, i, err)
		}
		if !br.StartTime.IsBefore(br.EndTime) {
			return fmt.Errorf("%w: break %d: %s >= %s", ErrInvalidBreak, i, br.StartTime, br.EndTime)
		}
		if br.StartTime.IsBefore(r.StartTime) || br.EndTime.IsAfter(r.EndTime) {
			return fmt.Errorf("%w: break %d is outside working window", ErrInvalidBreak, i)
		}
		if i > 0 && br.StartTime.IsBefore(prevEnd) {
			return fmt.Errorf("%w: break %d overlaps previous break", ErrInvalidBreak, i)
		}
		prevEnd = br.EndTime
	}

	return nil
}

// BlockedPeriod период недоступности (отпуск), перекрывающий все правила доступности
// Даты включительные, сравниваются без учета времени
type BlockedPeriod struct {
	ID             int64
	ProfessionalID int64
	StartDate      time.Time
	EndDate        time.Time
	Reason         *string

	CreatedAt time.Time
}

// Validate проверяет инварианты периода недоступности
func (p *BlockedPeriod) Validate() error {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("%w: dates are required", ErrInvalidBlockedPeriod)
	}
	if DateOnly(p.StartDate).After(DateOnly(p.EndDate)) {
		return ErrInvalidBlockedPeriod
	}
	return nil
}

// Contains проверяет, попадает ли дата в период (включительно, по календарным датам)
func (p *BlockedPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// DateOnly обнуляет время, оставляя только календарную дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RuleForWeekday возвращает правило для дня недели или nil, если его нет
func RuleForWeekday(rules []*AvailabilityRule, weekday time.Weekday) *AvailabilityRule {
	for _, rule := range rules {
		if rule.DayOfWeek == int(weekday) {
			return rule
		}
	}
	return nil
}

// DefaultWeeklyRules возвращает расписание по умолчанию: воскресенье-четверг 09:00-18:00
// Применяется, когда у профессионала нет ни одного сохраненного правила
func DefaultWeeklyRules(professionalID int64) []*AvailabilityRule {
	rules := make([]*AvailabilityRule, 0, len(DefaultWorkingDays))
	for _, day := range DefaultWorkingDays {
		rules = append(rules, &AvailabilityRule{
			ProfessionalID: professionalID,
			DayOfWeek:      int(day),
			IsAvailable:    true,
			StartTime:      DefaultWorkdayStart,
			EndTime:        DefaultWorkdayEnd,
		})
	}
	return rules
}
