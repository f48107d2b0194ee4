package middleware

import (
	"errors"
	"strings"

	"event_rsvp/constants"
	"event_rsvp/helper"
	"event_rsvp/model"
	"event_rsvp/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// OptionalJWT verifies a bearer token or access_token cookie when present and
// stores it under "user". Invalid or missing tokens leave the request anonymous.
func OptionalJWT(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")
		if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
		if token == "" {
			c.Locals("user", nil)
			return c.Next()
		}

		jwtToken, err := helper.ParseToken(secret, token)
		if err != nil || !jwtToken.Valid {
			c.Locals("user", nil)
			return c.Next()
		}
		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// Identify resolves the request actor from the verified token.
func Identify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals("user").(*jwt.Token)
		c.Locals("actor", helper.ActorFromToken(token))
		return c.Next()
	}
}

// Actor returns the actor stored by Identify, anonymous if none.
func Actor(c *fiber.Ctx) model.Actor {
	if actor, ok := c.Locals("actor").(model.Actor); ok {
		return actor
	}
	return model.AnonymousActor
}

func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Actor(c).Anonymous {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_REQUIRED, errors.New("no valid token"))
		}
		return c.Next()
	}
}

// RequireStaff answers 404 to everyone but staff so that staff-only routes
// do not reveal what exists.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !Actor(c).IsStaff {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, nil)
		}
		return c.Next()
	}
}
