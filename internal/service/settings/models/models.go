package models

import (
	"time"

	"github.com/anireserve/booking-service/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек слотов
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	UserID                 int64 `json:"userId"`
	ProfessionalID         int64 `json:"professionalId"`
	SlotGranularityMinutes *int  `json:"slotGranularityMinutes,omitempty"`
	MinNoticeMinutes       *int  `json:"minNoticeMinutes,omitempty"`
	AdvanceBookingDays     *int  `json:"advanceBookingDays,omitempty"`
}

// ApplyToSettings применяет обновления к существующим настройкам
// Обновляются только непустые (not nil) поля из request
func (r *UpdateSettingsRequest) ApplyToSettings(settings *domain.SlotSettings) {
	if r.SlotGranularityMinutes != nil {
		settings.SlotGranularityMinutes = *r.SlotGranularityMinutes
	}
	if r.MinNoticeMinutes != nil {
		settings.MinNoticeMinutes = *r.MinNoticeMinutes
	}
	if r.AdvanceBookingDays != nil {
		settings.AdvanceBookingDays = *r.AdvanceBookingDays
	}
}

// Response модели

// SettingsResponse ответ с настройками слотов
// IsDefault = true, когда у профессионала нет сохраненных настроек
type SettingsResponse struct {
	ProfessionalID         int64     `json:"professionalId"`
	SlotGranularityMinutes int       `json:"slotGranularityMinutes"`
	MinNoticeMinutes       int       `json:"minNoticeMinutes"`
	AdvanceBookingDays     int       `json:"advanceBookingDays"`
	IsDefault              bool      `json:"isDefault"`
	CreatedAt              time.Time `json:"createdAt,omitempty"`
	UpdatedAt              time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.SlotSettings, isDefault bool) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		ProfessionalID:         s.ProfessionalID,
		SlotGranularityMinutes: s.SlotGranularityMinutes,
		MinNoticeMinutes:       s.MinNoticeMinutes,
		AdvanceBookingDays:     s.AdvanceBookingDays,
		IsDefault:              isDefault,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}
