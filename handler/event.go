package handler

import (
	"errors"

	"event_rsvp/constants"
	"event_rsvp/helper"
	"event_rsvp/middleware"
	"event_rsvp/model"
	"event_rsvp/service"
	"event_rsvp/utils"

	"github.com/gofiber/fiber/v2"
)

var errEndBeforeStart = errors.New("end must not be before start")

func (h *Handler) ListUpcomingEvents(c *fiber.Ctx) error {
	pagination, _ := c.Locals("pagination").(model.Pagination)

	events, total, err := h.Events.ListUpcoming(c.UserContext(), pagination)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       events,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: total,
	})
}

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.Events.Dashboard(c.UserContext(), middleware.Actor(c))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, dashboard)
}

func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	input, ok := c.Locals("createEventInput").(model.CreateEventInput)
	if !ok {
		return localsError(c, "createEventInput")
	}

	event, err := helper.EventFromInput(input)
	if err != nil {
		return serviceError(c, err)
	}

	result, err := h.Events.Submit(c.UserContext(), middleware.Actor(c), service.EventForm{Data: event})
	if err != nil {
		return serviceError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, result)
}

// CreateEventFromTemplate instantiates the template :templateId, with the
// request body overriding the template values.
func (h *Handler) CreateEventFromTemplate(c *fiber.Ctx) error {
	templateId, ok := c.Locals("inputId").(uint)
	if !ok {
		return localsError(c, "inputId")
	}
	input, ok := c.Locals("updateEventInput").(model.UpdateEventInput)
	if !ok {
		return localsError(c, "updateEventInput")
	}

	actor := middleware.Actor(c)
	template, err := h.Events.GetTemplate(c.UserContext(), actor, templateId)
	if err != nil {
		return serviceError(c, err)
	}

	data := helper.CopyEvent(template)
	helper.ApplyEventUpdate(&data, input)
	result, err := h.Events.Submit(c.UserContext(), actor, service.EventForm{
		Data:               data,
		Instance:           &template,
		CreateFromTemplate: true,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, result)
}

func (h *Handler) GetEvent(c *fiber.Ctx) error {
	event, ok := c.Locals("event").(model.Event)
	if !ok {
		return localsError(c, "event")
	}

	detail, err := h.Events.Detail(c.UserContext(), middleware.Actor(c), event)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, detail)
}

func (h *Handler) UpdateEvent(c *fiber.Ctx) error {
	event, ok := c.Locals("event").(model.Event)
	if !ok {
		return localsError(c, "event")
	}
	input, ok := c.Locals("updateEventInput").(model.UpdateEventInput)
	if !ok {
		return localsError(c, "updateEventInput")
	}

	data := event
	helper.ApplyEventUpdate(&data, input)
	if data.End.Before(data.Start) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errEndBeforeStart, "end")
	}

	result, err := h.Events.Submit(c.UserContext(), middleware.Actor(c), service.EventForm{
		Data:     data,
		Instance: &event,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *Handler) DeleteEvent(c *fiber.Ctx) error {
	event, ok := c.Locals("event").(model.Event)
	if !ok {
		return localsError(c, "event")
	}

	if err := h.Events.Delete(c.UserContext(), middleware.Actor(c), event.ID); err != nil {
		return serviceError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Deleted successfully")
}
