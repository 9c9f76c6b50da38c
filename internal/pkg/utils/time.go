package utils

import (
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/exceptions"
	"time"
)

// DayWindow returns the inclusive [start, end] instants of the calendar day
// containing t in the given location. Every "today" decision in the service
// (duplicate guard, realtime filter, range queries) goes through here so the
// zone-sensitive truncation happens in exactly one place.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	// next midnight, not start+24h: DST transition days are not 24h long
	end := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)
	return start, end
}

// DayWindowFromString parses a yyyy-mm-dd day string in loc and returns its
// day window.
func DayWindowFromString(day string, loc *time.Location) (time.Time, time.Time, error) {
	parsed, err := time.ParseInLocation(constvars.DayFormat, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, exceptions.ErrCannotParseDate(err)
	}
	start, end := DayWindow(parsed, loc)
	return start, end, nil
}

func TruncateToDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func IsSameDay(a, b time.Time, loc *time.Location) bool {
	return TruncateToDay(a, loc).Equal(TruncateToDay(b, loc))
}
