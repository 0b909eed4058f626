package domain

import "time"

// SlotSettings represents per-professional slot configuration
type SlotSettings struct {
	ID                     int64
	ProfessionalID         int64
	SlotGranularityMinutes int // Шаг между началами соседних слотов
	MinNoticeMinutes       int // Минимальное время до начала слота при бронировании "на сегодня"
	AdvanceBookingDays     int // 0 = без ограничения
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *SlotSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// DefaultSlotSettings возвращает настройки слотов по умолчанию
// Применяются, когда у профессионала нет сохраненной конфигурации
func DefaultSlotSettings(professionalID int64) *SlotSettings {
	return &SlotSettings{
		ProfessionalID:         professionalID,
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
		MinNoticeMinutes:       DefaultMinNoticeMinutes,
		AdvanceBookingDays:     DefaultAdvanceBookingDays,
	}
}
