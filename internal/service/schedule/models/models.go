package models

import (
	"sort"
	"time"

	"github.com/anireserve/booking-service/internal/domain"
	"github.com/anireserve/booking-service/pkg/types"
)

// Request модели

// BreakInput перерыв внутри рабочего дня
type BreakInput struct {
	StartTime string `json:"startTime"` // "13:00"
	EndTime   string `json:"endTime"`   // "14:00"
}

// RuleInput правило доступности на день недели
type RuleInput struct {
	DayOfWeek   int          `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	IsAvailable bool         `json:"isAvailable"`
	StartTime   string       `json:"startTime,omitempty"`
	EndTime     string       `json:"endTime,omitempty"`
	Breaks      []BreakInput `json:"breaks,omitempty"`
}

// UpdateScheduleRequest запрос на обновление еженедельного расписания
type UpdateScheduleRequest struct {
	UserID         int64       `json:"userId"`
	ProfessionalID int64       `json:"professionalId"`
	Rules          []RuleInput `json:"rules"`
}

// CreateBlockedPeriodRequest запрос на создание периода недоступности
type CreateBlockedPeriodRequest struct {
	UserID         int64     `json:"userId"`
	ProfessionalID int64     `json:"professionalId"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Reason         *string   `json:"reason,omitempty"`
}

// Response модели

// BreakResponse перерыв внутри рабочего дня
type BreakResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// RuleResponse правило доступности на день недели
type RuleResponse struct {
	DayOfWeek   int             `json:"dayOfWeek"`
	IsAvailable bool            `json:"isAvailable"`
	StartTime   string          `json:"startTime,omitempty"`
	EndTime     string          `json:"endTime,omitempty"`
	Breaks      []BreakResponse `json:"breaks,omitempty"`
}

// ScheduleResponse еженедельное расписание профессионала
// IsDefault = true, когда у профессионала нет сохраненных правил
// и действует расписание по умолчанию
type ScheduleResponse struct {
	ProfessionalID int64          `json:"professionalId"`
	IsDefault      bool           `json:"isDefault"`
	Rules          []RuleResponse `json:"rules"`
}

// BlockedPeriodResponse период недоступности
type BlockedPeriodResponse struct {
	ID             int64   `json:"id"`
	ProfessionalID int64   `json:"professionalId"`
	StartDate      string  `json:"startDate"` // "2026-09-06"
	EndDate        string  `json:"endDate"`
	Reason         *string `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// BlockedPeriodListResponse список периодов недоступности
type BlockedPeriodListResponse struct {
	BlockedPeriods []BlockedPeriodResponse `json:"blockedPeriods"`
}

// Методы конвертации

// ToDomainRule конвертирует RuleInput в domain модель
// Перерывы сортируются по времени начала перед валидацией
func (r *RuleInput) ToDomainRule(professionalID int64) *domain.AvailabilityRule {
	rule := &domain.AvailabilityRule{
		ProfessionalID: professionalID,
		DayOfWeek:      r.DayOfWeek,
		IsAvailable:    r.IsAvailable,
		StartTime:      types.TimeString(r.StartTime),
		EndTime:        types.TimeString(r.EndTime),
	}

	if len(r.Breaks) > 0 {
		rule.Breaks = make([]domain.Break, len(r.Breaks))
		for i, br := range r.Breaks {
			rule.Breaks[i] = domain.Break{
				StartTime: types.TimeString(br.StartTime),
				EndTime:   types.TimeString(br.EndTime),
			}
		}
		sort.Slice(rule.Breaks, func(i, j int) bool {
			return rule.Breaks[i].StartTime.IsBefore(rule.Breaks[j].StartTime)
		})
	}

	return rule
}

// ToDomainBlockedPeriod конвертирует request в domain модель
func (r *CreateBlockedPeriodRequest) ToDomainBlockedPeriod() *domain.BlockedPeriod {
	return &domain.BlockedPeriod{
		ProfessionalID: r.ProfessionalID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Reason:         r.Reason,
	}
}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(rule *domain.AvailabilityRule) RuleResponse {
	resp := RuleResponse{
		DayOfWeek:   rule.DayOfWeek,
		IsAvailable: rule.IsAvailable,
	}

	// Для недоступного дня рабочее окно не имеет смысла
	if rule.IsAvailable {
		resp.StartTime = rule.StartTime.String()
		resp.EndTime = rule.EndTime.String()
	}

	if len(rule.Breaks) > 0 {
		resp.Breaks = make([]BreakResponse, len(rule.Breaks))
		for i, br := range rule.Breaks {
			resp.Breaks[i] = BreakResponse{
				StartTime: br.StartTime.String(),
				EndTime:   br.EndTime.String(),
			}
		}
	}

	return resp
}

// FromDomainRules конвертирует список правил в ScheduleResponse
func FromDomainRules(professionalID int64, rules []*domain.AvailabilityRule, isDefault bool) *ScheduleResponse {
	resp := &ScheduleResponse{
		ProfessionalID: professionalID,
		IsDefault:      isDefault,
		Rules:          make([]RuleResponse, len(rules)),
	}

	for i, rule := range rules {
		resp.Rules[i] = FromDomainRule(rule)
	}

	return resp
}

// FromDomainBlockedPeriod конвертирует domain модель в DTO
func FromDomainBlockedPeriod(p *domain.BlockedPeriod) *BlockedPeriodResponse {
	if p == nil {
		return nil
	}

	return &BlockedPeriodResponse{
		ID:             p.ID,
		ProfessionalID: p.ProfessionalID,
		StartDate:      p.StartDate.Format(domain.DateFormat),
		EndDate:        p.EndDate.Format(domain.DateFormat),
		Reason:         p.Reason,
		CreatedAt:      p.CreatedAt,
	}
}

// FromDomainBlockedPeriodList конвертирует список domain моделей в DTO
func FromDomainBlockedPeriodList(periods []*domain.BlockedPeriod) *BlockedPeriodListResponse {
	resp := &BlockedPeriodListResponse{
		BlockedPeriods: make([]BlockedPeriodResponse, 0, len(periods)),
	}

	for _, period := range periods {
		if periodResp := FromDomainBlockedPeriod(period); periodResp != nil {
			resp.BlockedPeriods = append(resp.BlockedPeriods, *periodResp)
		}
	}

	return resp
}
