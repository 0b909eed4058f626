package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("ValidTime", func(t *testing.T) {
		ts, err := NewTimeStringFromString("09:30")
		require.NoError(t, err)
		assert.Equal(t, "09:30", ts.String())
	})

	t.Run("Midnight", func(t *testing.T) {
		ts, err := NewTimeStringFromString("00:00")
		require.NoError(t, err)
		assert.Equal(t, "00:00", ts.String())
	})

	t.Run("EndOfDay", func(t *testing.T) {
		ts, err := NewTimeStringFromString("23:59")
		require.NoError(t, err)
		assert.Equal(t, "23:59", ts.String())
	})

	t.Run("NonCanonicalFormatRejected", func(t *testing.T) {
		_, err := NewTimeStringFromString("9:05")
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})

	t.Run("GarbageRejected", func(t *testing.T) {
		for _, s := range []string{"", "25:00", "12:60", "noon", "12-30"} {
			_, err := NewTimeStringFromString(s)
			assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", s)
		}
	})
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		ts, err := NewTimeStringFromMinutes(9*60 + 30)
		require.NoError(t, err)
		assert.Equal(t, "09:30", ts.String())
	})

	t.Run("Zero", func(t *testing.T) {
		ts, err := NewTimeStringFromMinutes(0)
		require.NoError(t, err)
		assert.Equal(t, "00:00", ts.String())
	})

	t.Run("LastMinuteOfDay", func(t *testing.T) {
		ts, err := NewTimeStringFromMinutes(1439)
		require.NoError(t, err)
		assert.Equal(t, "23:59", ts.String())
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := NewTimeStringFromMinutes(1440)
		assert.ErrorIs(t, err, ErrTimeOutOfRange)

		_, err = NewTimeStringFromMinutes(-1)
		assert.ErrorIs(t, err, ErrTimeOutOfRange)
	})
}

func TestTimeStringArithmetic(t *testing.T) {
	t.Run("MinuteOfDay", func(t *testing.T) {
		minute, err := TimeString("10:15").MinuteOfDay()
		require.NoError(t, err)
		assert.Equal(t, 615, minute)
	})

	t.Run("AddMinutes", func(t *testing.T) {
		ts, err := TimeString("10:00").AddMinutes(90)
		require.NoError(t, err)
		assert.Equal(t, "11:30", ts.String())
	})

	t.Run("AddMinutesPastMidnight", func(t *testing.T) {
		_, err := TimeString("23:30").AddMinutes(60)
		assert.ErrorIs(t, err, ErrTimeOutOfRange)
	})

	t.Run("AddZeroMinutes", func(t *testing.T) {
		ts, err := TimeString("10:00").AddMinutes(0)
		require.NoError(t, err)
		assert.Equal(t, "10:00", ts.String())
	})
}

func TestTimeStringComparison(t *testing.T) {
	t.Run("IsBefore", func(t *testing.T) {
		assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
		assert.False(t, TimeString("10:00").IsBefore(TimeString("09:00")))
	})

	t.Run("EqualTimesAreNotBefore", func(t *testing.T) {
		assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
		assert.False(t, TimeString("10:00").IsAfter(TimeString("10:00")))
	})

	t.Run("IsAfter", func(t *testing.T) {
		assert.True(t, TimeString("18:00").IsAfter(TimeString("09:00")))
		assert.False(t, TimeString("09:00").IsAfter(TimeString("18:00")))
	})
}

func TestTimeStringSQL(t *testing.T) {
	t.Run("ValueValid", func(t *testing.T) {
		v, err := TimeString("12:30").Value()
		require.NoError(t, err)
		assert.Equal(t, "12:30", v)
	})

	t.Run("ValueInvalid", func(t *testing.T) {
		_, err := TimeString("bad").Value()
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})

	t.Run("ScanPostgresTime", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("14:30:00"))
		assert.Equal(t, "14:30", ts.String())
	})

	t.Run("ScanBytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("08:15:00")))
		assert.Equal(t, "08:15", ts.String())
	})

	t.Run("ScanTime", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 9, 6, 16, 45, 12, 0, time.UTC)))
		assert.Equal(t, "16:45", ts.String())
	})

	t.Run("ScanNil", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("ScanUnsupportedType", func(t *testing.T) {
		var ts TimeString
		assert.ErrorIs(t, ts.Scan(42), ErrInvalidTimeString)
	})
}
