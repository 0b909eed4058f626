package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anireserve/booking-service/internal/domain"
	scheduleRepo "github.com/anireserve/booking-service/internal/infra/storage/schedule"
	"github.com/anireserve/booking-service/internal/service/schedule/models"
	"github.com/anireserve/booking-service/pkg/types"
)

// Фейки для зависимостей сервиса

type fakeScheduleRepo struct {
	rules   []*domain.AvailabilityRule
	periods []*domain.BlockedPeriod

	upserted  []*domain.AvailabilityRule
	upsertErr error
	deleteErr error
}

func (f *fakeScheduleRepo) GetRulesByProfessional(_ context.Context, professionalID int64) ([]*domain.AvailabilityRule, error) {
	return f.rules, nil
}

func (f *fakeScheduleRepo) UpsertRule(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upserted = append(f.upserted, rule)
	f.rules = append(f.rules, rule)
	return rule, nil
}

func (f *fakeScheduleRepo) GetBlockedPeriods(_ context.Context, professionalID int64) ([]*domain.BlockedPeriod, error) {
	return f.periods, nil
}

func (f *fakeScheduleRepo) GetBlockedPeriodsForDate(_ context.Context, professionalID int64, date time.Time) ([]*domain.BlockedPeriod, error) {
	var result []*domain.BlockedPeriod
	for _, p := range f.periods {
		if p.Contains(date) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) CreateBlockedPeriod(_ context.Context, period *domain.BlockedPeriod) (*domain.BlockedPeriod, error) {
	created := *period
	created.ID = int64(len(f.periods) + 1)
	f.periods = append(f.periods, &created)
	return &created, nil
}

func (f *fakeScheduleRepo) DeleteBlockedPeriod(_ context.Context, professionalID, periodID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(repo *fakeScheduleRepo) (*Service, *fakeTxManager) {
	tx := &fakeTxManager{}
	return NewService(repo, tx, nopLogger{}), tx
}

func TestGetSchedule(t *testing.T) {
	t.Run("NoRulesReturnsDefaultSchedule", func(t *testing.T) {
		svc, _ := newTestService(&fakeScheduleRepo{})

		resp, err := svc.GetSchedule(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, resp.IsDefault)
		assert.Len(t, resp.Rules, 5)
	})

	t.Run("SavedRulesDisableDefault", func(t *testing.T) {
		repo := &fakeScheduleRepo{rules: []*domain.AvailabilityRule{
			{
				ProfessionalID: 1,
				DayOfWeek:      int(time.Monday),
				IsAvailable:    true,
				StartTime:      types.TimeString("10:00"),
				EndTime:        types.TimeString("16:00"),
			},
		}}
		svc, _ := newTestService(repo)

		resp, err := svc.GetSchedule(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, resp.IsDefault)
		require.Len(t, resp.Rules, 1)
		assert.Equal(t, "10:00", resp.Rules[0].StartTime)
	})

	t.Run("UnavailableDayHidesWorkingWindow", func(t *testing.T) {
		repo := &fakeScheduleRepo{rules: []*domain.AvailabilityRule{
			{ProfessionalID: 1, DayOfWeek: int(time.Friday), IsAvailable: false},
		}}
		svc, _ := newTestService(repo)

		resp, err := svc.GetSchedule(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, resp.Rules, 1)
		assert.False(t, resp.Rules[0].IsAvailable)
		assert.Empty(t, resp.Rules[0].StartTime)
	})
}

func TestUpdateSchedule(t *testing.T) {
	validRules := []models.RuleInput{
		{DayOfWeek: 1, IsAvailable: true, StartTime: "09:00", EndTime: "18:00"},
		{DayOfWeek: 5, IsAvailable: false},
	}

	t.Run("OwnerUpdatesSchedule", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc, tx := newTestService(repo)

		resp, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
			UserID:         1,
			ProfessionalID: 1,
			Rules:          validRules,
		})
		require.NoError(t, err)
		assert.False(t, resp.IsDefault)
		assert.Len(t, repo.upserted, 2)
		assert.Equal(t, 1, tx.calls)
	})

	t.Run("NonOwnerDenied", func(t *testing.T) {
		svc, _ := newTestService(&fakeScheduleRepo{})

		_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
			UserID:         2,
			ProfessionalID: 1,
			Rules:          validRules,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("EmptyRulesRejected", func(t *testing.T) {
		svc, _ := newTestService(&fakeScheduleRepo{})

		_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
			UserID:         1,
			ProfessionalID: 1,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("DuplicateDayRejected", func(t *testing.T) {
		svc, _ := newTestService(&fakeScheduleRepo{})

		_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
			UserID:         1,
			ProfessionalID: 1,
			Rules: []models.RuleInput{
				{DayOfWeek: 1, IsAvailable: true, StartTime: "09:00", EndTime: "18:00"},
				{DayOfWeek: 1, IsAvailable: true, StartTime: "10:00", EndTime: "16:00"},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("InvalidRuleRejectedBeforeWrite", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc, tx := newTestService(repo)

		_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
			UserID:         1,
			ProfessionalID: 1,
			Rules: []models.RuleInput{
				{DayOfWeek: 1, IsAvailable: true, StartTime: "18:00", EndTime: "09:00"},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, repo.upserted)
		assert.Zero(t, tx.calls)
	})

	t.Run("UnsortedBreaksAreSortedBeforeValidation", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc, _ := newTestService(repo)

		_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
			UserID:         1,
			ProfessionalID: 1,
			Rules: []models.RuleInput{
				{
					DayOfWeek:   1,
					IsAvailable: true,
					StartTime:   "09:00",
					EndTime:     "18:00",
					Breaks: []models.BreakInput{
						{StartTime: "15:00", EndTime: "15:30"},
						{StartTime: "12:00", EndTime: "13:00"},
					},
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, repo.upserted, 1)
		assert.Equal(t, types.TimeString("12:00"), repo.upserted[0].Breaks[0].StartTime)
	})
}

func TestBlockedPeriods(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("OwnerCreatesPeriod", func(t *testing.T) {
		svc, _ := newTestService(&fakeScheduleRepo{})

		resp, err := svc.CreateBlockedPeriod(context.Background(), &models.CreateBlockedPeriodRequest{
			UserID:         1,
			ProfessionalID: 1,
			StartDate:      date(2026, 9, 10),
			EndDate:        date(2026, 9, 15),
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-09-10", resp.StartDate)
		assert.Equal(t, "2026-09-15", resp.EndDate)
	})

	t.Run("NonOwnerDenied", func(t *testing.T) {
		svc, _ := newTestService(&fakeScheduleRepo{})

		_, err := svc.CreateBlockedPeriod(context.Background(), &models.CreateBlockedPeriodRequest{
			UserID:         2,
			ProfessionalID: 1,
			StartDate:      date(2026, 9, 10),
			EndDate:        date(2026, 9, 15),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("StartAfterEndRejected", func(t *testing.T) {
		svc, _ := newTestService(&fakeScheduleRepo{})

		_, err := svc.CreateBlockedPeriod(context.Background(), &models.CreateBlockedPeriodRequest{
			UserID:         1,
			ProfessionalID: 1,
			StartDate:      date(2026, 9, 15),
			EndDate:        date(2026, 9, 10),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("ReasonTooLongRejected", func(t *testing.T) {
		svc, _ := newTestService(&fakeScheduleRepo{})

		long := make([]byte, domain.MaxBlockReasonLength+1)
		for i := range long {
			long[i] = 'x'
		}
		reason := string(long)

		_, err := svc.CreateBlockedPeriod(context.Background(), &models.CreateBlockedPeriodRequest{
			UserID:         1,
			ProfessionalID: 1,
			StartDate:      date(2026, 9, 10),
			EndDate:        date(2026, 9, 15),
			Reason:         &reason,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("DeleteMapsNotFound", func(t *testing.T) {
		repo := &fakeScheduleRepo{deleteErr: scheduleRepo.ErrBlockedPeriodNotFound}
		svc, _ := newTestService(repo)

		err := svc.DeleteBlockedPeriod(context.Background(), 1, 100, 1)
		assert.ErrorIs(t, err, ErrBlockedPeriodNotFound)
	})

	t.Run("DeleteByNonOwnerDenied", func(t *testing.T) {
		svc, _ := newTestService(&fakeScheduleRepo{})

		err := svc.DeleteBlockedPeriod(context.Background(), 1, 100, 2)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
