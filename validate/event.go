package validate

import (
	"errors"
	"time"

	"event_rsvp/constants"
	"event_rsvp/model"
	"event_rsvp/utils"

	"github.com/gofiber/fiber/v2"
)

var errEndBeforeStart = errors.New("end must not be before start")

func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateEventInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if endsBeforeStart(input.StartAt, input.EndAt) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errEndBeforeStart, "end")
		}

		c.Locals("createEventInput", input)
		return c.Next()
	}
}

// UpdateEvent validates a partial event, used both for updates and as the
// overlay when instantiating a template. An empty body is allowed.
func UpdateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateEventInput
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
			}
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if endsBeforeStart(input.StartAt, input.EndAt) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errEndBeforeStart, "end")
		}

		c.Locals("updateEventInput", input)
		return c.Next()
	}
}

func ListEvents() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.Pagination
		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("pagination", input)
		return c.Next()
	}
}

func endsBeforeStart(start, end *time.Time) bool {
	return start != nil && end != nil && end.Before(*start)
}
