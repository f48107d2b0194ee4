package validate

import (
	"errors"
	"strconv"

	"event_rsvp/constants"
	"event_rsvp/helper"
	"event_rsvp/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// requiredfield accepts the guest fields an event may require.
	_ = v.RegisterValidation("requiredfield", func(fl validator.FieldLevel) bool {
		return helper.IsRequiredField(fl.Field().String())
	})
	return v
}

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.ParseUint(params, 10, 64)
		if err != nil || valueKey == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("inputId", uint(valueKey))
		return c.Next()
	}
}
