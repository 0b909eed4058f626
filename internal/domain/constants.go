package domain

import (
	"time"

	"github.com/anireserve/booking-service/pkg/types"
)

// Default slot configuration values
const (
	DefaultSlotGranularityMinutes = 60
	DefaultServiceDurationMinutes = 60
	DefaultMinNoticeMinutes       = 0
	DefaultAdvanceBookingDays     = 0 // 0 = unlimited
)

// Default weekly schedule: Sunday-Thursday 09:00-18:00
// Применяется только если у профессионала нет ни одного правила доступности
const (
	DefaultWorkdayStart = types.TimeString("09:00")
	DefaultWorkdayEnd   = types.TimeString("18:00")
)

// DefaultWorkingDays дни недели расписания по умолчанию
var DefaultWorkingDays = []time.Weekday{
	time.Sunday,
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
}

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 480 // 8 hours
	MinNoticeMinutesLimit     = 0
	MaxNoticeMinutesLimit     = 10080 // 1 week
	MinAdvanceBookingDays     = 0
	MaxAdvanceBookingDays     = 365 // 1 year
	MaxCancellationReason     = 500
	MaxBlockReasonLength      = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих слот
// Используется для фильтрации при подсчете доступных слотов
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusRejected,
}

// BlockingStatuses список статусов, занимающих слот
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
