package handler

import (
	"event_rsvp/model"
	"event_rsvp/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Login(c *fiber.Ctx) error {
	loginInput, ok := c.Locals("loginInput").(model.LoginInput)
	if !ok {
		return localsError(c, "loginInput")
	}

	tokenData, err := h.Auth.Login(c.UserContext(), loginInput)
	if err != nil {
		return serviceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    tokenData.AccessToken,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return utils.SuccessResponse(c, fiber.StatusOK, tokenData)
}
