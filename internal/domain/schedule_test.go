package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anireserve/booking-service/pkg/types"
)

func validRule() *AvailabilityRule {
	return &AvailabilityRule{
		ProfessionalID: 1,
		DayOfWeek:      int(time.Monday),
		IsAvailable:    true,
		StartTime:      types.TimeString("09:00"),
		EndTime:        types.TimeString("18:00"),
	}
}

func TestAvailabilityRuleValidate(t *testing.T) {
	t.Run("ValidRule", func(t *testing.T) {
		require.NoError(t, validRule().Validate())
	})

	t.Run("DayOfWeekOutOfRange", func(t *testing.T) {
		rule := validRule()
		rule.DayOfWeek = 7
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDayOfWeek)

		rule.DayOfWeek = -1
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDayOfWeek)
	})

	t.Run("UnavailableDaySkipsWindowChecks", func(t *testing.T) {
		rule := &AvailabilityRule{
			ProfessionalID: 1,
			DayOfWeek:      int(time.Friday),
			IsAvailable:    false,
		}
		require.NoError(t, rule.Validate())
	})

	t.Run("StartMustBeBeforeEnd", func(t *testing.T) {
		rule := validRule()
		rule.StartTime = types.TimeString("18:00")
		rule.EndTime = types.TimeString("09:00")
		assert.ErrorIs(t, rule.Validate(), ErrInvalidWorkingWindow)

		rule.EndTime = rule.StartTime
		assert.ErrorIs(t, rule.Validate(), ErrInvalidWorkingWindow)
	})

	t.Run("InvalidTimeFormat", func(t *testing.T) {
		rule := validRule()
		rule.StartTime = types.TimeString("9am")
		assert.ErrorIs(t, rule.Validate(), ErrInvalidWorkingWindow)
	})

	t.Run("ValidBreaks", func(t *testing.T) {
		rule := validRule()
		rule.Breaks = []Break{
			{StartTime: types.TimeString("12:00"), EndTime: types.TimeString("13:00")},
			{StartTime: types.TimeString("15:00"), EndTime: types.TimeString("15:30")},
		}
		require.NoError(t, rule.Validate())
	})

	t.Run("BreakOutsideWorkingWindow", func(t *testing.T) {
		rule := validRule()
		rule.Breaks = []Break{
			{StartTime: types.TimeString("08:00"), EndTime: types.TimeString("09:30")},
		}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidBreak)
	})

	t.Run("OverlappingBreaks", func(t *testing.T) {
		rule := validRule()
		rule.Breaks = []Break{
			{StartTime: types.TimeString("12:00"), EndTime: types.TimeString("13:00")},
			{StartTime: types.TimeString("12:30"), EndTime: types.TimeString("14:00")},
		}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidBreak)
	})

	t.Run("TouchingBreaksAreAllowed", func(t *testing.T) {
		rule := validRule()
		rule.Breaks = []Break{
			{StartTime: types.TimeString("12:00"), EndTime: types.TimeString("13:00")},
			{StartTime: types.TimeString("13:00"), EndTime: types.TimeString("13:30")},
		}
		require.NoError(t, rule.Validate())
	})

	t.Run("EmptyBreakInterval", func(t *testing.T) {
		rule := validRule()
		rule.Breaks = []Break{
			{StartTime: types.TimeString("12:00"), EndTime: types.TimeString("12:00")},
		}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidBreak)
	})
}

func TestBlockedPeriod(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("ValidPeriod", func(t *testing.T) {
		p := &BlockedPeriod{StartDate: date(2026, 9, 10), EndDate: date(2026, 9, 15)}
		require.NoError(t, p.Validate())
	})

	t.Run("SingleDayPeriod", func(t *testing.T) {
		p := &BlockedPeriod{StartDate: date(2026, 9, 10), EndDate: date(2026, 9, 10)}
		require.NoError(t, p.Validate())
	})

	t.Run("StartAfterEnd", func(t *testing.T) {
		p := &BlockedPeriod{StartDate: date(2026, 9, 15), EndDate: date(2026, 9, 10)}
		assert.ErrorIs(t, p.Validate(), ErrInvalidBlockedPeriod)
	})

	t.Run("MissingDates", func(t *testing.T) {
		p := &BlockedPeriod{}
		assert.ErrorIs(t, p.Validate(), ErrInvalidBlockedPeriod)
	})

	t.Run("ContainsIsInclusive", func(t *testing.T) {
		p := &BlockedPeriod{StartDate: date(2026, 9, 10), EndDate: date(2026, 9, 15)}

		assert.True(t, p.Contains(date(2026, 9, 10)))
		assert.True(t, p.Contains(date(2026, 9, 12)))
		assert.True(t, p.Contains(date(2026, 9, 15)))
		assert.False(t, p.Contains(date(2026, 9, 9)))
		assert.False(t, p.Contains(date(2026, 9, 16)))
	})

	t.Run("ContainsIgnoresTimeOfDay", func(t *testing.T) {
		p := &BlockedPeriod{StartDate: date(2026, 9, 10), EndDate: date(2026, 9, 10)}
		assert.True(t, p.Contains(time.Date(2026, 9, 10, 23, 59, 0, 0, time.UTC)))
	})
}

func TestDefaultWeeklyRules(t *testing.T) {
	rules := DefaultWeeklyRules(42)

	require.Len(t, rules, 5)

	days := make(map[int]bool, len(rules))
	for _, rule := range rules {
		days[rule.DayOfWeek] = true
		assert.Equal(t, int64(42), rule.ProfessionalID)
		assert.True(t, rule.IsAvailable)
		assert.Equal(t, DefaultWorkdayStart, rule.StartTime)
		assert.Equal(t, DefaultWorkdayEnd, rule.EndTime)
		assert.Empty(t, rule.Breaks)
	}

	// Воскресенье-четверг
	for _, day := range []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday} {
		assert.True(t, days[int(day)], "day %s should be a working day", day)
	}
	assert.False(t, days[int(time.Friday)])
	assert.False(t, days[int(time.Saturday)])
}

func TestRuleForWeekday(t *testing.T) {
	rules := []*AvailabilityRule{
		{DayOfWeek: int(time.Monday)},
		{DayOfWeek: int(time.Wednesday)},
	}

	t.Run("Found", func(t *testing.T) {
		rule := RuleForWeekday(rules, time.Wednesday)
		require.NotNil(t, rule)
		assert.Equal(t, int(time.Wednesday), rule.DayOfWeek)
	})

	t.Run("NotFound", func(t *testing.T) {
		assert.Nil(t, RuleForWeekday(rules, time.Sunday))
	})

	t.Run("EmptyRules", func(t *testing.T) {
		assert.Nil(t, RuleForWeekday(nil, time.Monday))
	})
}
