package domain

import "github.com/anireserve/booking-service/pkg/types"

// AvailableSlot represents a time slot offered to a client for booking
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// EndTime возвращает время окончания слота
func (s *AvailableSlot) EndTime() (types.TimeString, error) {
	return s.StartTime.AddMinutes(s.DurationMinutes)
}
