package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/anireserve/booking-service/internal/domain"
	"github.com/anireserve/booking-service/pkg/dbmetrics"
	"github.com/anireserve/booking-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий настроек генерации слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProfessional получает настройки слотов профессионала
// Возвращает ErrSettingsNotFound, если настройки не сохранялись -
// вызывающая сторона применяет значения по умолчанию
func (r *Repository) GetByProfessional(ctx context.Context, professionalID int64) (*domain.SlotSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"slot_granularity_minutes",
		"min_notice_minutes",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("slot_settings").
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.SlotSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.ProfessionalID,
		&settings.SlotGranularityMinutes,
		&settings.MinNoticeMinutes,
		&settings.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessional - scan settings: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создает или обновляет настройки слотов профессионала
func (r *Repository) Upsert(ctx context.Context, settings *domain.SlotSettings) (*domain.SlotSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_settings").
		Columns(
			"professional_id",
			"slot_granularity_minutes",
			"min_notice_minutes",
			"advance_booking_days",
		).
		Values(
			settings.ProfessionalID,
			settings.SlotGranularityMinutes,
			settings.MinNoticeMinutes,
			settings.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (professional_id) DO UPDATE SET
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			min_notice_minutes = EXCLUDED.min_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}
