// Package service holds the seat inventory and event lifecycle rules. Storage
// is reached through the repository interfaces below.
package service

import (
	"context"
	"time"

	"event_rsvp/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("event_rsvp/service")

type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, id uint) (model.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (model.Event, error)
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
	CreateEvent(ctx context.Context, event *model.Event) error
	UpdateEvent(ctx context.Context, event *model.Event) error
	DeleteEvent(ctx context.Context, id uint) error
	ListUpcomingEvents(ctx context.Context, now time.Time, page model.Pagination) ([]model.Event, int64, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	SumReservedSeats(ctx context.Context, eventID, excludeGuestID uint) (int, error)
}

type GuestRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, id uint) (model.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (model.Event, error)
	GetEventForUpdate(ctx context.Context, id uint) (model.Event, error)
	SumReservedSeats(ctx context.Context, eventID, excludeGuestID uint) (int, error)
	CreateGuest(ctx context.Context, guest *model.Guest) error
	UpdateGuest(ctx context.Context, guest *model.Guest) error
	GetGuest(ctx context.Context, id uint) (model.Guest, error)
	DeleteGuest(ctx context.Context, id uint) error
	ListGuests(ctx context.Context, eventID uint) ([]model.Guest, error)
}

type AccountRepository interface {
	GetAccountByUsername(ctx context.Context, username string) (model.Account, error)
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
