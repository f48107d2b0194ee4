package middleware

import (
	"context"
	"errors"
	"log"
	"strconv"

	"event_rsvp/constants"
	"event_rsvp/helper"
	"event_rsvp/model"
	"event_rsvp/utils"

	"github.com/gofiber/fiber/v2"
)

type EventFinder interface {
	GetBySlug(ctx context.Context, actor model.Actor, slug string) (model.Event, error)
}

type GuestFinder interface {
	GetReservation(ctx context.Context, actor model.Actor, eventSlug string, guestID uint) (model.Guest, error)
}

// CanonicalEvent loads the event named by :slug and answers 404 unless the
// :year/:month/:day route parts match its start date.
func CanonicalEvent(events EventFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		event, err := events.GetBySlug(c.UserContext(), Actor(c), c.Params("slug"))
		if err != nil {
			return lookupError(c, err)
		}
		if !helper.MatchesCanonicalDate(event, c.Params("year"), c.Params("month"), c.Params("day")) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, nil)
		}
		c.Locals("event", event)
		return c.Next()
	}
}

// GuestOwner loads the guest named by :eventSlug/:guestId and answers 404
// unless the actor owns it or is staff.
func GuestOwner(guests GuestFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guestID, err := strconv.ParseUint(c.Params("guestId"), 10, 64)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		guest, err := guests.GetReservation(c.UserContext(), Actor(c), c.Params("eventSlug"), uint(guestID))
		if err != nil {
			return lookupError(c, err)
		}
		c.Locals("guest", guest)
		return c.Next()
	}
}

func lookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrPermissionDenied) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, nil)
	}
	log.Printf("lookup %s: %v", c.Path(), err)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}
