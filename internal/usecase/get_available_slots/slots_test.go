package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anireserve/booking-service/internal/domain"
	"github.com/anireserve/booking-service/pkg/ptr"
	"github.com/anireserve/booking-service/pkg/types"
)

func ts(v string) types.TimeString {
	return types.TimeString(v)
}

func workingRule(start, end string, breaks ...domain.Break) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		ProfessionalID: 1,
		DayOfWeek:      int(time.Sunday),
		StartTime:      ts(start),
		EndTime:        ts(end),
		IsAvailable:    true,
		Breaks:         breaks,
	}
}

func TestGenerateTimeSlots(t *testing.T) {
	// Воскресенье
	requestDate := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("FullDayWithLunchBreak", func(t *testing.T) {
		rule := workingRule("09:00", "18:00", domain.Break{StartTime: ts("13:00"), EndTime: ts("14:00")})

		slots, err := generateTimeSlots(rule, 60, 60, requestDate, now, 0)
		require.NoError(t, err)

		expected := []types.TimeString{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00"}
		assert.Equal(t, expected, slots)
	})

	t.Run("DurationMustFitBeforeEndOfWindow", func(t *testing.T) {
		rule := workingRule("09:00", "18:00")

		slots, err := generateTimeSlots(rule, 60, 120, requestDate, now, 0)
		require.NoError(t, err)

		// Последний валидный старт 16:00 - слот 17:00-19:00 не помещается
		assert.Equal(t, types.TimeString("16:00"), slots[len(slots)-1])
	})

	t.Run("SlotTouchingBreakBoundaryIsKept", func(t *testing.T) {
		rule := workingRule("09:00", "18:00", domain.Break{StartTime: ts("13:00"), EndTime: ts("14:00")})

		slots, err := generateTimeSlots(rule, 60, 60, requestDate, now, 0)
		require.NoError(t, err)

		// 12:00-13:00 заканчивается ровно на начале перерыва, 14:00-15:00 начинается ровно на его конце
		assert.Contains(t, slots, types.TimeString("12:00"))
		assert.Contains(t, slots, types.TimeString("14:00"))
		assert.NotContains(t, slots, types.TimeString("13:00"))
	})

	t.Run("FinerGranularityThanDuration", func(t *testing.T) {
		rule := workingRule("09:00", "12:00")

		slots, err := generateTimeSlots(rule, 30, 90, requestDate, now, 0)
		require.NoError(t, err)

		expected := []types.TimeString{"09:00", "09:30", "10:00", "10:30"}
		assert.Equal(t, expected, slots)
	})

	t.Run("NilRuleMeansDayOff", func(t *testing.T) {
		slots, err := generateTimeSlots(nil, 60, 60, requestDate, now, 0)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("UnavailableDayProducesNoSlots", func(t *testing.T) {
		rule := workingRule("09:00", "18:00")
		rule.IsAvailable = false

		slots, err := generateTimeSlots(rule, 60, 60, requestDate, now, 0)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("PastDateProducesNoSlots", func(t *testing.T) {
		rule := workingRule("09:00", "18:00")
		pastDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		slots, err := generateTimeSlots(rule, 60, 60, pastDate, now, 0)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Deterministic", func(t *testing.T) {
		rule := workingRule("09:00", "18:00", domain.Break{StartTime: ts("12:00"), EndTime: ts("13:30")})

		first, err := generateTimeSlots(rule, 30, 60, requestDate, now, 0)
		require.NoError(t, err)
		second, err := generateTimeSlots(rule, 30, 60, requestDate, now, 0)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestGenerateTimeSlotsSameDay(t *testing.T) {
	rule := workingRule("09:00", "18:00")
	today := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	t.Run("PastSlotsAreFiltered", func(t *testing.T) {
		now := time.Date(2026, 9, 6, 12, 30, 0, 0, time.UTC)

		slots, err := generateTimeSlots(rule, 60, 60, today, now, 0)
		require.NoError(t, err)

		expected := []types.TimeString{"13:00", "14:00", "15:00", "16:00", "17:00"}
		assert.Equal(t, expected, slots)
	})

	t.Run("SlotAtCurrentTimeIsFiltered", func(t *testing.T) {
		// Слот должен начинаться строго позже now, совпадение отбрасывается
		now := time.Date(2026, 9, 6, 13, 0, 0, 0, time.UTC)

		slots, err := generateTimeSlots(rule, 60, 60, today, now, 0)
		require.NoError(t, err)

		assert.NotContains(t, slots, types.TimeString("13:00"))
		assert.Contains(t, slots, types.TimeString("14:00"))
	})

	t.Run("MinNoticeShiftsCutoff", func(t *testing.T) {
		now := time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)

		slots, err := generateTimeSlots(rule, 60, 60, today, now, 120)
		require.NoError(t, err)

		// now + 120 минут = 12:00, слот 12:00 совпадает с порогом и отбрасывается
		expected := []types.TimeString{"13:00", "14:00", "15:00", "16:00", "17:00"}
		assert.Equal(t, expected, slots)
	})

	t.Run("NoticePastMidnightMeansNoSlotsToday", func(t *testing.T) {
		now := time.Date(2026, 9, 6, 23, 0, 0, 0, time.UTC)

		slots, err := generateTimeSlots(rule, 60, 60, today, now, 180)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestFilterAvailableSlots(t *testing.T) {
	slots := []types.TimeString{"09:00", "10:00", "11:00", "14:00", "15:00"}

	reservation := func(start string, duration int, status domain.ReservationStatus) *domain.Reservation {
		return &domain.Reservation{
			ID:              1,
			ProfessionalID:  1,
			ClientID:        2,
			StartTime:       ts(start),
			DurationMinutes: duration,
			Status:          status,
		}
	}

	t.Run("ConfirmedReservationBlocksOverlappingSlot", func(t *testing.T) {
		reservations := []*domain.Reservation{reservation("14:00", 60, domain.StatusConfirmed)}

		available := filterAvailableSlots(slots, 60, reservations)

		expected := []types.TimeString{"09:00", "10:00", "11:00", "15:00"}
		assert.Equal(t, expected, available)
	})

	t.Run("PendingAndCompletedAlsoBlock", func(t *testing.T) {
		reservations := []*domain.Reservation{
			reservation("09:00", 60, domain.StatusPending),
			reservation("15:00", 60, domain.StatusCompleted),
		}

		available := filterAvailableSlots(slots, 60, reservations)

		expected := []types.TimeString{"10:00", "11:00", "14:00"}
		assert.Equal(t, expected, available)
	})

	t.Run("CancelledAndRejectedDoNotBlock", func(t *testing.T) {
		reservations := []*domain.Reservation{
			reservation("10:00", 60, domain.StatusCancelled),
			reservation("11:00", 60, domain.StatusRejected),
		}

		available := filterAvailableSlots(slots, 60, reservations)
		assert.Equal(t, slots, available)
	})

	t.Run("PartialOverlapBlocks", func(t *testing.T) {
		// Бронирование 14:30-15:30 пересекает оба слота 14:00 и 15:00
		reservations := []*domain.Reservation{reservation("14:30", 60, domain.StatusConfirmed)}

		available := filterAvailableSlots(slots, 60, reservations)

		expected := []types.TimeString{"09:00", "10:00", "11:00"}
		assert.Equal(t, expected, available)
	})

	t.Run("AdjacentReservationDoesNotBlock", func(t *testing.T) {
		// Бронирование 13:00-14:00 граничит со слотом 14:00-15:00
		reservations := []*domain.Reservation{reservation("13:00", 60, domain.StatusConfirmed)}

		available := filterAvailableSlots(slots, 60, reservations)
		assert.Equal(t, slots, available)
	})
}

func TestResolveRule(t *testing.T) {
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	friday := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	t.Run("NoRulesFallsBackToDefaultSchedule", func(t *testing.T) {
		rule := resolveRule(nil, 1, sunday)

		require.NotNil(t, rule)
		assert.Equal(t, types.TimeString("09:00"), rule.StartTime)
		assert.Equal(t, types.TimeString("18:00"), rule.EndTime)
		assert.True(t, rule.IsAvailable)
	})

	t.Run("DefaultScheduleExcludesFridayAndSaturday", func(t *testing.T) {
		assert.Nil(t, resolveRule(nil, 1, friday))
		assert.Nil(t, resolveRule(nil, 1, saturday))
	})

	t.Run("ExplicitRulesDisableFallback", func(t *testing.T) {
		rules := []*domain.AvailabilityRule{
			{
				ProfessionalID: 1,
				DayOfWeek:      int(time.Monday),
				StartTime:      ts("10:00"),
				EndTime:        ts("16:00"),
				IsAvailable:    true,
			},
		}

		// Правило на понедельник есть, на воскресенье - нет
		assert.Nil(t, resolveRule(rules, 1, sunday))

		monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
		rule := resolveRule(rules, 1, monday)
		require.NotNil(t, rule)
		assert.Equal(t, types.TimeString("10:00"), rule.StartTime)
	})
}

func TestIsDateBlocked(t *testing.T) {
	date := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	t.Run("DateInsidePeriod", func(t *testing.T) {
		periods := []*domain.BlockedPeriod{
			{
				ProfessionalID: 1,
				StartDate:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				EndDate:        time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
				Reason:         ptr.Ptr("vacation"),
			},
		}
		assert.True(t, isDateBlocked(date, periods))
	})

	t.Run("BoundariesAreInclusive", func(t *testing.T) {
		periods := []*domain.BlockedPeriod{
			{
				ProfessionalID: 1,
				StartDate:      date,
				EndDate:        date,
			},
		}
		assert.True(t, isDateBlocked(date, periods))
	})

	t.Run("DateOutsidePeriod", func(t *testing.T) {
		periods := []*domain.BlockedPeriod{
			{
				ProfessionalID: 1,
				StartDate:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
				EndDate:        time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
			},
		}
		assert.False(t, isDateBlocked(date, periods))
	})

	t.Run("NoPeriods", func(t *testing.T) {
		assert.False(t, isDateBlocked(date, nil))
	})
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

	t.Run("PastDateRejected", func(t *testing.T) {
		err := validateDate(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), now, 0)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("TodayAccepted", func(t *testing.T) {
		err := validateDate(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), now, 0)
		assert.NoError(t, err)
	})

	t.Run("ZeroAdvanceDaysMeansNoLimit", func(t *testing.T) {
		err := validateDate(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), now, 0)
		assert.NoError(t, err)
	})

	t.Run("AdvanceLimitBoundary", func(t *testing.T) {
		err := validateDate(time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), now, 7)
		assert.NoError(t, err)

		err = validateDate(time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC), now, 7)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})
}
