package helper

import (
	"strings"
	"time"

	"event_rsvp/model"
)

// requiredFieldValues maps every field an event may require to its value on a guest.
var requiredFieldValues = map[model.RequiredField]func(model.Guest) string{
	model.FieldName:  func(g model.Guest) string { return g.Name },
	model.FieldEmail: func(g model.Guest) string { return g.Email },
	model.FieldPhone: func(g model.Guest) string { return g.Phone },
}

// IsRequiredField reports whether name is one of the fields an event can require.
func IsRequiredField(name string) bool {
	_, ok := requiredFieldValues[model.RequiredField(name)]
	return ok
}

// FreeSeats computes remaining capacity from the seats currently reserved.
func FreeSeats(e model.Event, reserved int) model.FreeSeats {
	if e.AvailableSeats == nil {
		return model.FreeSeats{Unlimited: true}
	}
	free := *e.AvailableSeats - reserved
	return model.FreeSeats{Count: &free}
}

// DisplayFreeSeats withholds the exact number from non-staff viewers when the
// event hides it. Enforcement always uses FreeSeats.
func DisplayFreeSeats(e model.Event, free model.FreeSeats, viewer model.Actor) model.FreeSeats {
	if free.Unlimited || !e.HideAvailableSeats || viewer.IsStaff {
		return free
	}
	return model.FreeSeats{Hidden: true}
}

// IsBookable reports whether the event still accepts reservations at now.
// Only the start gates booking; templates never do.
func IsBookable(e model.Event, now time.Time) bool {
	if e.IsTemplate() {
		return false
	}
	return now.Before(e.Start)
}

// MaxSeatsPerGuest returns the per-guest cap, 0 meaning unlimited.
func MaxSeatsPerGuest(e model.Event) int {
	if e.MaxSeatsPerGuest == nil || *e.MaxSeatsPerGuest <= 0 {
		return 0
	}
	return *e.MaxSeatsPerGuest
}

// ValidateReservation checks a proposed guest against the event rules, given
// the seats already reserved by other guests. On success the returned guest is
// ready to persist; nothing is written here.
func ValidateReservation(e model.Event, reserved int, proposed model.Guest) (model.Guest, model.Rejections) {
	guest := proposed
	guest.EventID = e.ID
	if guest.NumberOfSeats <= 0 {
		guest.NumberOfSeats = 1
	}

	var rejections model.Rejections
	free := FreeSeats(e, reserved)
	if !free.Unlimited && guest.NumberOfSeats > *free.Count {
		remaining := *free.Count
		if remaining < 0 {
			remaining = 0
		}
		rejections = append(rejections, model.Rejection{
			Code:  model.SeatsExhausted,
			Field: "numberOfSeats",
			Limit: remaining,
		})
	} else if limit := MaxSeatsPerGuest(e); limit > 0 && guest.NumberOfSeats > limit {
		rejections = append(rejections, model.Rejection{
			Code:  model.PerGuestLimitExceeded,
			Field: "numberOfSeats",
			Limit: limit,
		})
	}

	for _, name := range e.RequiredFields {
		value, ok := requiredFieldValues[model.RequiredField(name)]
		if !ok {
			continue
		}
		if strings.TrimSpace(value(guest)) == "" {
			rejections = append(rejections, model.Rejection{
				Code:  model.MissingRequiredField,
				Field: name,
			})
		}
	}

	if len(rejections) > 0 {
		return model.Guest{}, rejections
	}
	return guest, nil
}

// GuestFromInput builds the proposed guest of a reservation request.
func GuestFromInput(input model.ReservationInput, actor model.Actor) model.Guest {
	return ApplyReservationUpdate(model.Guest{UserID: actor.UserID(), IsAttending: true}, input)
}

// ApplyReservationUpdate overlays the fields present in input on guest.
func ApplyReservationUpdate(guest model.Guest, input model.ReservationInput) model.Guest {
	if input.Name != nil {
		guest.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		guest.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		guest.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Message != nil {
		guest.Message = *input.Message
	}
	if input.NumberOfSeats != nil {
		guest.NumberOfSeats = *input.NumberOfSeats
	}
	if input.IsAttending != nil {
		guest.IsAttending = *input.IsAttending
	}
	return guest
}
