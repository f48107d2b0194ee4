package handler

import (
	"event_rsvp/helper"
	"event_rsvp/middleware"
	"event_rsvp/model"
	"event_rsvp/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListGuests(c *fiber.Ctx) error {
	eventId, ok := c.Locals("inputId").(uint)
	if !ok {
		return localsError(c, "inputId")
	}

	guests, err := h.Guests.ListGuests(c.UserContext(), middleware.Actor(c), eventId)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, guests)
}

// CreateGuest reserves seats for the event :eventSlug.
func (h *Handler) CreateGuest(c *fiber.Ctx) error {
	input, ok := c.Locals("reservationInput").(model.ReservationInput)
	if !ok {
		return localsError(c, "reservationInput")
	}

	actor := middleware.Actor(c)
	guest, err := h.Guests.Reserve(c.UserContext(), actor, c.Params("eventSlug"), helper.GuestFromInput(input, actor))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, guest)
}

func (h *Handler) GetGuest(c *fiber.Ctx) error {
	guest, ok := c.Locals("guest").(model.Guest)
	if !ok {
		return localsError(c, "guest")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, guest)
}

// UpdateGuest changes only the fields present in the body.
func (h *Handler) UpdateGuest(c *fiber.Ctx) error {
	existing, ok := c.Locals("guest").(model.Guest)
	if !ok {
		return localsError(c, "guest")
	}
	input, ok := c.Locals("reservationInput").(model.ReservationInput)
	if !ok {
		return localsError(c, "reservationInput")
	}

	proposed := helper.ApplyReservationUpdate(existing, input)
	guest, err := h.Guests.UpdateReservation(c.UserContext(), middleware.Actor(c), existing, proposed)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, guest)
}

func (h *Handler) DeleteGuest(c *fiber.Ctx) error {
	guest, ok := c.Locals("guest").(model.Guest)
	if !ok {
		return localsError(c, "guest")
	}

	if err := h.Guests.CancelReservation(c.UserContext(), middleware.Actor(c), guest); err != nil {
		return serviceError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Deleted successfully")
}
