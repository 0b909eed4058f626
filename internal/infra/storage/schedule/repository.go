package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/anireserve/booking-service/internal/domain"
	"github.com/anireserve/booking-service/pkg/dbmetrics"
	"github.com/anireserve/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с расписанием профессионала:
// еженедельные правила доступности, перерывы и периоды недоступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRulesByProfessional получает все правила доступности профессионала с перерывами
// Возвращает пустой слайс, если правил нет (не ошибку) - отсутствие правил
// означает применение расписания по умолчанию на уровне usecase
func (r *Repository) GetRulesByProfessional(ctx context.Context, professionalID int64) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"day_of_week",
		"is_available",
		"start_time",
		"end_time",
		"created_at",
		"updated_at",
	).
		From("availability_rules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRulesByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRulesByProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	byID := make(map[int64]*domain.AvailabilityRule)

	for rows.Next() {
		var rule domain.AvailabilityRule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.ProfessionalID,
			&rule.DayOfWeek,
			&rule.IsAvailable,
			&rule.StartTime,
			&rule.EndTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRulesByProfessional - scan rule: %v", ErrScanRow, err)
		}

		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		rule.Breaks = make([]domain.Break, 0)

		rules = append(rules, &rule)
		byID[rule.ID] = &rule
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRulesByProfessional - rows error: %v", ErrScanRow, err)
	}

	if len(rules) == 0 {
		return rules, nil
	}

	if err := r.attachBreaks(ctx, byID); err != nil {
		return nil, err
	}

	return rules, nil
}

// attachBreaks загружает перерывы для набора правил и прикрепляет их по rule_id
func (r *Repository) attachBreaks(ctx context.Context, rules map[int64]*domain.AvailabilityRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ruleIDs := make([]int64, 0, len(rules))
	for id := range rules {
		ruleIDs = append(ruleIDs, id)
	}

	query, args, err := psqlbuilder.Select(
		"rule_id",
		"start_time",
		"end_time",
	).
		From("availability_breaks").
		Where(squirrel.Eq{"rule_id": ruleIDs}).
		OrderBy("rule_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ruleID int64
		var br domain.Break

		if err := rows.Scan(&ruleID, &br.StartTime, &br.EndTime); err != nil {
			return fmt.Errorf("%w: attachBreaks - scan break: %v", ErrScanRow, err)
		}

		if rule, ok := rules[ruleID]; ok {
			rule.Breaks = append(rule.Breaks, br)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachBreaks - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// UpsertRule создает или обновляет правило доступности для (профессионал, день недели)
// Перерывы пересоздаются целиком. Вызывать внутри транзакции
func (r *Repository) UpsertRule(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"professional_id",
			"day_of_week",
			"is_available",
			"start_time",
			"end_time",
		).
		Values(
			rule.ProfessionalID,
			rule.DayOfWeek,
			rule.IsAvailable,
			rule.StartTime,
			rule.EndTime,
		).
		Suffix(`ON CONFLICT (professional_id, day_of_week) DO UPDATE SET
			is_available = EXCLUDED.is_available,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRule - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertRule - execute upsert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	if err := r.replaceBreaks(ctx, rule.ID, rule.Breaks); err != nil {
		return nil, err
	}

	return rule, nil
}

// replaceBreaks удаляет старые перерывы правила и вставляет новые
func (r *Repository) replaceBreaks(ctx context.Context, ruleID int64, breaks []domain.Break) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_breaks").
		Where(squirrel.Eq{"rule_id": ruleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceBreaks - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceBreaks - execute delete: %v", ErrExecQuery, err)
	}

	if len(breaks) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("availability_breaks").
		Columns("rule_id", "start_time", "end_time")

	for _, br := range breaks {
		insertBuilder = insertBuilder.Values(ruleID, br.StartTime, br.EndTime)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceBreaks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceBreaks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetBlockedPeriods получает все периоды недоступности профессионала
func (r *Repository) GetBlockedPeriods(ctx context.Context, professionalID int64) ([]*domain.BlockedPeriod, error) {
	return r.getBlockedPeriods(ctx, squirrel.Eq{"professional_id": professionalID})
}

// GetBlockedPeriodsForDate получает периоды недоступности, покрывающие указанную дату
func (r *Repository) GetBlockedPeriodsForDate(ctx context.Context, professionalID int64, date time.Time) ([]*domain.BlockedPeriod, error) {
	day := domain.DateOnly(date)
	return r.getBlockedPeriods(ctx, squirrel.And{
		squirrel.Eq{"professional_id": professionalID},
		squirrel.LtOrEq{"start_date": day},
		squirrel.GtOrEq{"end_date": day},
	})
}

func (r *Repository) getBlockedPeriods(ctx context.Context, where squirrel.Sqlizer) ([]*domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"start_date",
		"end_date",
		"reason",
		"created_at",
	).
		From("blocked_periods").
		Where(where).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getBlockedPeriods - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getBlockedPeriods - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	periods := make([]*domain.BlockedPeriod, 0)

	for rows.Next() {
		var period domain.BlockedPeriod
		var createdAt sql.NullTime

		err := rows.Scan(
			&period.ID,
			&period.ProfessionalID,
			&period.StartDate,
			&period.EndDate,
			&period.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getBlockedPeriods - scan period: %v", ErrScanRow, err)
		}

		period.CreatedAt = createdAt.Time
		periods = append(periods, &period)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getBlockedPeriods - rows error: %v", ErrScanRow, err)
	}

	return periods, nil
}

// CreateBlockedPeriod создает период недоступности
func (r *Repository) CreateBlockedPeriod(ctx context.Context, period *domain.BlockedPeriod) (*domain.BlockedPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_periods").
		Columns(
			"professional_id",
			"start_date",
			"end_date",
			"reason",
		).
		Values(
			period.ProfessionalID,
			domain.DateOnly(period.StartDate),
			domain.DateOnly(period.EndDate),
			period.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedPeriod - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&period.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedPeriod - execute insert: %v", ErrExecQuery, err)
	}

	period.CreatedAt = createdAt.Time

	return period, nil
}

// DeleteBlockedPeriod удаляет период недоступности профессионала
func (r *Repository) DeleteBlockedPeriod(ctx context.Context, professionalID, periodID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_periods").
		Where(squirrel.Eq{"id": periodID, "professional_id": professionalID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedPeriod - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedPeriod - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedPeriod - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedPeriodNotFound
	}

	return nil
}
