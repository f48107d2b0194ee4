package helper

import (
	"time"

	"event_rsvp/model"

	"github.com/jinzhu/copier"
)

const defaultEventLength = 24 * time.Hour

func EventFromInput(input model.CreateEventInput) (model.Event, error) {
	var event model.Event
	if err := copier.Copy(&event, &input); err != nil {
		return model.Event{}, err
	}
	if input.StartAt != nil {
		event.Start = *input.StartAt
	}
	if input.EndAt != nil {
		event.End = *input.EndAt
	}
	return event, nil
}

// CopyEvent returns an independent copy of e without its row identity.
func CopyEvent(e model.Event) model.Event {
	dup := e
	dup.ID = 0
	dup.Slug = ""
	dup.CreationDate = time.Time{}
	dup.Guests = nil
	if e.AvailableSeats != nil {
		seats := *e.AvailableSeats
		dup.AvailableSeats = &seats
	}
	if e.MaxSeatsPerGuest != nil {
		limit := *e.MaxSeatsPerGuest
		dup.MaxSeatsPerGuest = &limit
	}
	if e.RequiredFields != nil {
		dup.RequiredFields = append([]string{}, e.RequiredFields...)
	}
	return dup
}

func ApplyEventUpdate(event *model.Event, input model.UpdateEventInput) {
	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.StartAt != nil {
		event.Start = *input.StartAt
	}
	if input.EndAt != nil {
		event.End = *input.EndAt
	}
	if input.Venue != nil {
		event.Venue = *input.Venue
	}
	if input.Street != nil {
		event.Street = *input.Street
	}
	if input.City != nil {
		event.City = *input.City
	}
	if input.Zip != nil {
		event.Zip = *input.Zip
	}
	if input.Country != nil {
		event.Country = *input.Country
	}
	if input.ContactPerson != nil {
		event.ContactPerson = *input.ContactPerson
	}
	if input.ContactEmail != nil {
		event.ContactEmail = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		event.ContactPhone = *input.ContactPhone
	}
	if input.ClearSeatLimit {
		event.AvailableSeats = nil
	} else if input.AvailableSeats != nil {
		seats := *input.AvailableSeats
		event.AvailableSeats = &seats
	}
	if input.HideAvailableSeats != nil {
		event.HideAvailableSeats = *input.HideAvailableSeats
	}
	if input.MaxSeatsPerGuest != nil {
		limit := *input.MaxSeatsPerGuest
		event.MaxSeatsPerGuest = &limit
	}
	if input.AllowAnonymousRSVP != nil {
		event.AllowAnonymousRSVP = *input.AllowAnonymousRSVP
	}
	if input.RequiredFields != nil {
		event.RequiredFields = append([]string{}, input.RequiredFields...)
	}
	if input.TemplateName != nil {
		event.TemplateName = *input.TemplateName
	}
	if input.IsPublished != nil {
		event.IsPublished = *input.IsPublished
	}
}

// ApplyEventDefaults fills the start and end of an event at call time.
func ApplyEventDefaults(event *model.Event, now time.Time) {
	if event.Start.IsZero() {
		event.Start = now
	}
	if event.End.IsZero() {
		event.End = event.Start.Add(defaultEventLength)
	}
}
