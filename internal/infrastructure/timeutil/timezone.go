package timeutil

import (
	"fmt"
	"sync"
	"time"

	// Embedded zone database so airport zones resolve in minimal containers
	_ "time/tzdata"
)

// locationCache stores loaded timezone locations by name.
var locationCache sync.Map

// DateLayout is the calendar-date layout used by filings and requests.
const DateLayout = "2006-01-02"

// GetLocation returns a cached timezone location.
func GetLocation(name string) (*time.Location, error) {
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}

// ParseLocal parses a local airport time. An empty timezone means UTC.
func ParseLocal(layout, value, timezone string) (time.Time, error) {
	if timezone == "" {
		return time.Parse(layout, value)
	}
	loc, err := GetLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(layout, value, loc)
}

// DateOnly drops the time of day, keeping the calendar date as seen in t's location.
// The result is in UTC so dates from different zones compare by calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar-day boundaries crossed from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ClearLocationCache clears the cached timezone locations.
func ClearLocationCache() {
	locationCache.Range(func(key, _ any) bool {
		locationCache.Delete(key)
		return true
	})
}
