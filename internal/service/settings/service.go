package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/anireserve/booking-service/internal/domain"
	settingsRepo "github.com/anireserve/booking-service/internal/infra/storage/settings"
	"github.com/anireserve/booking-service/internal/service/settings/models"
)

// Service сервис для работы с настройками слотов профессионала
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get получает настройки слотов профессионала
// Доступно только самому профессионалу
// Если настройки не сохранены, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, professionalID, userID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching slot settings for professional=%d", professionalID)

	if userID != professionalID {
		s.logger.Warn("Get: access denied for user=%d to professional=%d", userID, professionalID)
		return nil, ErrAccessDenied
	}

	settings, isDefault, err := s.loadSettings(ctx, professionalID, "Get")
	if err != nil {
		return nil, err
	}

	s.logger.Info("Get: successfully fetched slot settings for professional=%d (default=%t)",
		professionalID, isDefault)
	return models.FromDomainSettings(settings, isDefault), nil
}

// Update обновляет настройки слотов профессионала
// Доступно только самому профессионалу
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating slot settings for professional=%d by user=%d",
		req.ProfessionalID, req.UserID)

	if req.UserID != req.ProfessionalID {
		s.logger.Warn("Update: access denied for user=%d to professional=%d", req.UserID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	// 1. Получаем текущие настройки (или значения по умолчанию)
	settings, _, err := s.loadSettings(ctx, req.ProfessionalID, "Update")
	if err != nil {
		return nil, err
	}

	// 2. Применяем обновления
	req.ApplyToSettings(settings)

	// 3. Валидируем обновленные данные
	if err := validateSettings(settings); err != nil {
		s.logger.Warn("Update: validation failed for professional=%d: %v", req.ProfessionalID, err)
		return nil, err
	}

	// 4. Сохраняем настройки
	updated, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated slot settings for professional=%d", req.ProfessionalID)
	return models.FromDomainSettings(updated, false), nil
}

// Вспомогательные методы

// loadSettings получает настройки профессионала или значения по умолчанию
func (s *Service) loadSettings(ctx context.Context, professionalID int64, op string) (*domain.SlotSettings, bool, error) {
	settings, err := s.settingsRepo.GetByProfessional(ctx, professionalID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultSlotSettings(professionalID), true, nil
		}
		s.logger.Error("%s: repository error for professional=%d: %v", op, professionalID, err)
		return nil, false, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return settings, false, nil
}

// validateSettings валидирует параметры настроек слотов
func validateSettings(settings *domain.SlotSettings) error {
	if settings.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		settings.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if settings.MinNoticeMinutes < domain.MinNoticeMinutesLimit ||
		settings.MinNoticeMinutes > domain.MaxNoticeMinutesLimit {
		return fmt.Errorf("%w: minNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinNoticeMinutesLimit, domain.MaxNoticeMinutesLimit)
	}

	if settings.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		settings.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}
