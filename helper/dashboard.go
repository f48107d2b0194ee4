package helper

import (
	"time"

	"event_rsvp/model"
)

// PartitionEvents splits events for the staff dashboard. Templates are listed
// separately and never appear in the time-based groups.
func PartitionEvents(events []model.Event, now time.Time) model.Dashboard {
	d := model.Dashboard{
		Upcoming:  []model.Event{},
		Current:   []model.Event{},
		Past:      []model.Event{},
		Templates: []model.Event{},
	}
	for _, e := range events {
		if e.IsTemplate() {
			d.Templates = append(d.Templates, e)
			continue
		}
		if e.Start.After(now) {
			d.Upcoming = append(d.Upcoming, e)
		}
		if !e.Start.After(now) && !e.End.Before(now) {
			d.Current = append(d.Current, e)
		}
		if e.End.Before(now) {
			d.Past = append(d.Past, e)
		}
	}
	return d
}
