package helper

import (
	"fmt"
	"strconv"

	"event_rsvp/model"
)

// CanonicalPath is the date-qualified route of an event.
func CanonicalPath(e model.Event) string {
	start := e.Start.UTC()
	return fmt.Sprintf("/api/v1/events/%04d/%02d/%02d/%s", start.Year(), int(start.Month()), start.Day(), e.Slug)
}

// MatchesCanonicalDate reports whether the date parts of a request route match
// the event start date.
func MatchesCanonicalDate(e model.Event, year, month, day string) bool {
	y, err := strconv.Atoi(year)
	if err != nil {
		return false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return false
	}
	start := e.Start.UTC()
	return start.Year() == y && int(start.Month()) == m && start.Day() == d
}
