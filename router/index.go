package router

import (
	"event_rsvp/handler"
	"event_rsvp/middleware"
	"event_rsvp/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler, secret []byte) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", middleware.OptionalJWT(secret), middleware.Identify())

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), h.Login)

	events := v1.Group("/events")
	events.Get("/", validate.ListEvents(), h.ListUpcomingEvents)
	events.Get("/staff", middleware.RequireStaff(), h.Dashboard)
	events.Post("/", middleware.RequireStaff(), validate.CreateEvent(), h.CreateEvent)
	events.Post("/from-template/:templateId", middleware.RequireStaff(), validate.GetById("templateId"), validate.UpdateEvent(), h.CreateEventFromTemplate)
	events.Get("/:eventId/guests", middleware.RequireStaff(), validate.GetById("eventId"), h.ListGuests)
	events.Get("/:year/:month/:day/:slug", middleware.CanonicalEvent(h.Events), h.GetEvent)
	events.Put("/:year/:month/:day/:slug", middleware.RequireStaff(), middleware.CanonicalEvent(h.Events), validate.UpdateEvent(), h.UpdateEvent)
	events.Delete("/:year/:month/:day/:slug", middleware.RequireStaff(), middleware.CanonicalEvent(h.Events), h.DeleteEvent)

	guests := v1.Group("/guests")
	guests.Post("/:eventSlug", validate.Reservation(), h.CreateGuest)
	guests.Get("/:eventSlug/:guestId", middleware.RequireLogin(), middleware.GuestOwner(h.Guests), h.GetGuest)
	guests.Put("/:eventSlug/:guestId", middleware.RequireLogin(), middleware.GuestOwner(h.Guests), validate.Reservation(), h.UpdateGuest)
	guests.Delete("/:eventSlug/:guestId", middleware.RequireStaff(), middleware.GuestOwner(h.Guests), h.DeleteGuest)
}
