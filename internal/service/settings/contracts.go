package settings

import (
	"context"

	"github.com/anireserve/booking-service/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек слотов
type SettingsRepository interface {
	GetByProfessional(ctx context.Context, professionalID int64) (*domain.SlotSettings, error)
	Upsert(ctx context.Context, settings *domain.SlotSettings) (*domain.SlotSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
