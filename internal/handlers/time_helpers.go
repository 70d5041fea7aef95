package handlers

import (
	"time"
)

// parseDayIn parses YYYY-MM-DD as midnight in loc.
func parseDayIn(loc *time.Location, dateStr string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, dateStr, loc)
}

// dayAfterIn returns midnight after the day dateStr names, for exclusive
// upper bounds.
func dayAfterIn(loc *time.Location, dateStr string) (time.Time, error) {
	day, err := parseDayIn(loc, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return day.AddDate(0, 0, 1), nil
}
