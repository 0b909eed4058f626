package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/anireserve/booking-service/internal/domain"
	scheduleRepo "github.com/anireserve/booking-service/internal/infra/storage/schedule"
	"github.com/anireserve/booking-service/internal/service/schedule/models"
)

// Service сервис для работы с расписанием профессионала
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule получает действующее еженедельное расписание профессионала
// Публичный метод - доступен всем
// Если у профессионала нет ни одного правила, возвращается расписание по умолчанию
func (s *Service) GetSchedule(ctx context.Context, professionalID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for professional=%d", professionalID)

	rules, err := s.scheduleRepo.GetRulesByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	isDefault := len(rules) == 0
	if isDefault {
		rules = domain.DefaultWeeklyRules(professionalID)
	}

	s.logger.Info("GetSchedule: successfully fetched %d rules for professional=%d (default=%t)",
		len(rules), professionalID, isDefault)
	return models.FromDomainRules(professionalID, rules, isDefault), nil
}

// UpdateSchedule обновляет правила еженедельного расписания
// Доступно только самому профессионалу. Правила применяются атомарно:
// либо сохраняются все, либо ни одного
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating %d rules for professional=%d by user=%d",
		len(req.Rules), req.ProfessionalID, req.UserID)

	if req.UserID != req.ProfessionalID {
		s.logger.Warn("UpdateSchedule: access denied for user=%d to professional=%d", req.UserID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	if len(req.Rules) == 0 {
		return nil, fmt.Errorf("%w: rules are required", ErrInvalidInput)
	}

	// 1. Конвертируем и валидируем все правила до записи
	rules := make([]*domain.AvailabilityRule, len(req.Rules))
	seenDays := make(map[int]bool, len(req.Rules))

	for i, input := range req.Rules {
		rule := input.ToDomainRule(req.ProfessionalID)

		if seenDays[rule.DayOfWeek] {
			s.logger.Warn("UpdateSchedule: duplicate day of week %d for professional=%d",
				rule.DayOfWeek, req.ProfessionalID)
			return nil, fmt.Errorf("%w: duplicate day of week %d", ErrInvalidInput, rule.DayOfWeek)
		}
		seenDays[rule.DayOfWeek] = true

		if err := rule.Validate(); err != nil {
			s.logger.Warn("UpdateSchedule: invalid rule for day %d: %v", rule.DayOfWeek, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		rules[i] = rule
	}

	// 2. Сохраняем правила в одной транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, rule := range rules {
			if _, err := s.scheduleRepo.UpsertRule(txCtx, rule); err != nil {
				return fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateSchedule: failed to save rules for professional=%d: %v", req.ProfessionalID, err)
		return nil, err
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for professional=%d", req.ProfessionalID)

	// 3. Возвращаем актуальное расписание
	return s.GetSchedule(ctx, req.ProfessionalID)
}

// GetBlockedPeriods получает периоды недоступности профессионала
// Доступно только самому профессионалу
func (s *Service) GetBlockedPeriods(ctx context.Context, professionalID, userID int64) (*models.BlockedPeriodListResponse, error) {
	s.logger.Info("GetBlockedPeriods: fetching blocked periods for professional=%d", professionalID)

	if userID != professionalID {
		s.logger.Warn("GetBlockedPeriods: access denied for user=%d to professional=%d", userID, professionalID)
		return nil, ErrAccessDenied
	}

	periods, err := s.scheduleRepo.GetBlockedPeriods(ctx, professionalID)
	if err != nil {
		s.logger.Error("GetBlockedPeriods: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetBlockedPeriods - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBlockedPeriods: successfully fetched %d periods for professional=%d",
		len(periods), professionalID)
	return models.FromDomainBlockedPeriodList(periods), nil
}

// CreateBlockedPeriod создает период недоступности (отпуск)
// Доступно только самому профессионалу
// Существующие бронирования период не отменяет, но новые слоты в нем не выдаются
func (s *Service) CreateBlockedPeriod(ctx context.Context, req *models.CreateBlockedPeriodRequest) (*models.BlockedPeriodResponse, error) {
	s.logger.Info("CreateBlockedPeriod: creating period for professional=%d by user=%d",
		req.ProfessionalID, req.UserID)

	if req.UserID != req.ProfessionalID {
		s.logger.Warn("CreateBlockedPeriod: access denied for user=%d to professional=%d",
			req.UserID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxBlockReasonLength {
		s.logger.Warn("CreateBlockedPeriod: reason too long for professional=%d", req.ProfessionalID)
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	period := req.ToDomainBlockedPeriod()
	if err := period.Validate(); err != nil {
		s.logger.Warn("CreateBlockedPeriod: validation failed for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.scheduleRepo.CreateBlockedPeriod(ctx, period)
	if err != nil {
		s.logger.Error("CreateBlockedPeriod: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: CreateBlockedPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedPeriod: successfully created period id=%d for professional=%d",
		created.ID, req.ProfessionalID)
	return models.FromDomainBlockedPeriod(created), nil
}

// DeleteBlockedPeriod удаляет период недоступности
// Доступно только самому профессионалу
func (s *Service) DeleteBlockedPeriod(ctx context.Context, professionalID, periodID, userID int64) error {
	s.logger.Info("DeleteBlockedPeriod: deleting period id=%d for professional=%d by user=%d",
		periodID, professionalID, userID)

	if userID != professionalID {
		s.logger.Warn("DeleteBlockedPeriod: access denied for user=%d to professional=%d", userID, professionalID)
		return ErrAccessDenied
	}

	if err := s.scheduleRepo.DeleteBlockedPeriod(ctx, professionalID, periodID); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedPeriodNotFound) {
			s.logger.Warn("DeleteBlockedPeriod: period id=%d not found for professional=%d", periodID, professionalID)
			return ErrBlockedPeriodNotFound
		}
		s.logger.Error("DeleteBlockedPeriod: repository error for period id=%d: %v", periodID, err)
		return fmt.Errorf("%w: DeleteBlockedPeriod - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedPeriod: successfully deleted period id=%d", periodID)
	return nil
}
