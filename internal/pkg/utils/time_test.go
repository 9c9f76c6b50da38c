package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayWindow(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	t.Run("Afternoon Instant", func(t *testing.T) {
		instant := time.Date(2025, 3, 14, 15, 30, 45, 0, loc)

		start, end := DayWindow(instant, loc)

		assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, loc), start, "window should start at midnight")
		assert.Equal(t, time.Date(2025, 3, 14, 23, 59, 59, 999999999, loc), end, "window should end just before next midnight")
	})

	t.Run("Midnight Stays In Its Day", func(t *testing.T) {
		instant := time.Date(2025, 3, 14, 0, 0, 0, 0, loc)

		start, end := DayWindow(instant, loc)

		assert.Equal(t, instant, start, "midnight belongs to its own day")
		assert.True(t, end.After(start), "window end should follow start")
	})

	t.Run("Zone Conversion", func(t *testing.T) {
		// 2025-03-14 22:00 UTC is already 2025-03-15 in Kolkata (UTC+5:30)
		instant := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)

		start, _ := DayWindow(instant, loc)

		assert.Equal(t, 15, start.Day(), "window should follow the local calendar day")
	})

	t.Run("Fall-Back Day Is 25 Hours", func(t *testing.T) {
		nyc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		// clocks go back on 2025-11-02, the local day lasts 25 hours
		instant := time.Date(2025, 11, 2, 12, 0, 0, 0, nyc)
		start, end := DayWindow(instant, nyc)

		assert.Equal(t, time.Date(2025, 11, 2, 0, 0, 0, 0, nyc), start)
		assert.Equal(t, 2, end.Day(), "window must end on the same calendar day")
		assert.Equal(t, 23, end.Hour(), "window must reach the last hour of the long day")

		late := time.Date(2025, 11, 2, 23, 30, 0, 0, nyc)
		assert.False(t, late.After(end), "23:30 on the long day still falls inside its window")
	})

	t.Run("Spring-Forward Day Is 23 Hours", func(t *testing.T) {
		nyc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		// clocks go forward on 2025-03-09, the local day lasts 23 hours
		instant := time.Date(2025, 3, 9, 12, 0, 0, 0, nyc)
		start, end := DayWindow(instant, nyc)

		assert.Equal(t, 9, start.Day())
		assert.Equal(t, 9, end.Day(), "window must not spill into the next day")
		assert.Equal(t, 23, end.Hour())

		nextMidnight := time.Date(2025, 3, 10, 0, 0, 0, 0, nyc)
		assert.True(t, end.Before(nextMidnight), "window end stays before the next midnight")
	})
}

func TestDayWindowFromString(t *testing.T) {
	loc := time.UTC

	t.Run("Valid Day", func(t *testing.T) {
		start, end, err := DayWindowFromString("2025-06-01", loc)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, loc), start)
		assert.Equal(t, 1, end.Day())
	})

	t.Run("Invalid Day", func(t *testing.T) {
		_, _, err := DayWindowFromString("01-06-2025", loc)

		assert.Error(t, err, "non yyyy-mm-dd input should be rejected")
	})

	t.Run("Empty Day", func(t *testing.T) {
		_, _, err := DayWindowFromString("", loc)

		assert.Error(t, err)
	})
}

func TestIsSameDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	t.Run("Same Local Day", func(t *testing.T) {
		a := time.Date(2025, 3, 14, 1, 0, 0, 0, loc)
		b := time.Date(2025, 3, 14, 23, 0, 0, 0, loc)

		assert.True(t, IsSameDay(a, b, loc))
	})

	t.Run("Different Local Day", func(t *testing.T) {
		a := time.Date(2025, 3, 14, 23, 59, 0, 0, loc)
		b := time.Date(2025, 3, 15, 0, 1, 0, 0, loc)

		assert.False(t, IsSameDay(a, b, loc))
	})

	t.Run("Same Day Across Zones", func(t *testing.T) {
		// 20:00 UTC on the 14th is 01:30 on the 15th in Kolkata
		a := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)
		b := time.Date(2025, 3, 15, 10, 0, 0, 0, loc)

		assert.True(t, IsSameDay(a, b, loc), "comparison should happen in the target zone")
	})
}
