package handler

import (
	"errors"
	"log"

	"event_rsvp/constants"
	"event_rsvp/model"
	"event_rsvp/service"
	"event_rsvp/utils"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	Events *service.EventService
	Guests *service.GuestService
	Auth   *service.AuthService
}

func New(events *service.EventService, guests *service.GuestService, auth *service.AuthService) *Handler {
	return &Handler{Events: events, Guests: guests, Auth: auth}
}

type rejectionView struct {
	Code    model.RejectionCode `json:"code"`
	Field   string              `json:"field"`
	Limit   int                 `json:"limit"`
	Message string              `json:"message"`
}

// serviceError maps a service error onto a response. Permission failures are
// answered like missing records.
func serviceError(c *fiber.Ctx, err error) error {
	var rejections model.Rejections
	switch {
	case errors.As(err, &rejections):
		views := make([]rejectionView, 0, len(rejections))
		for _, r := range rejections {
			views = append(views, rejectionView{Code: r.Code, Field: r.Field, Limit: r.Limit, Message: r.Message()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":     "error",
			"message":    constants.RESERVATION_REJECTED,
			"error":      err.Error(),
			"rejections": views,
		})
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrPermissionDenied):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, nil)
	case errors.Is(err, model.ErrLoginRequired):
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, err)
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, err)
	case errors.Is(err, model.ErrNotBookable):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.EVENT_NOT_BOOKABLE, err)
	case errors.Is(err, model.ErrSlugConflict):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.SLUG_CONFLICT, err)
	}
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}

func localsError(c *fiber.Ctx, key string) error {
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse "+key+" fail"))
}
