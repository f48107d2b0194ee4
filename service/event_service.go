package service

import (
	"context"
	"errors"
	"log"

	"event_rsvp/clock"
	"event_rsvp/helper"
	"event_rsvp/model"
)

// maxSlugAttempts bounds how often a write is retried after losing a slug
// race to a concurrent transaction.
const maxSlugAttempts = 5

type EventService struct {
	repo  EventRepository
	clock clock.Clock
}

func NewEventService(repo EventRepository, clk clock.Clock) *EventService {
	return &EventService{repo: repo, clock: clk}
}

// EventForm is a submitted event. Instance is the stored row being edited, or
// the template being instantiated when CreateFromTemplate is set.
type EventForm struct {
	Data               model.Event
	Instance           *model.Event
	CreateFromTemplate bool
}

// Submit creates or updates an event. Saving a live event under a template
// name splits it: the event stays live with its slug, and a second row is
// created as the template. Instantiating a template always inserts a new
// live event and leaves the template untouched.
func (s *EventService) Submit(ctx context.Context, actor model.Actor, form EventForm) (result model.SubmitResult, err error) {
	ctx, span := tracer.Start(ctx, "EventService.Submit")
	defer func() { finish(span, err) }()

	if !actor.IsStaff {
		return model.SubmitResult{}, model.ErrPermissionDenied
	}

	event := helper.CopyEvent(form.Data)
	helper.ApplyEventDefaults(&event, s.clock.Now())

	if form.CreateFromTemplate {
		if form.Instance == nil || !form.Instance.IsTemplate() {
			return model.SubmitResult{}, model.ErrNotFound
		}
		event.TemplateName = ""
		event.CreatedBy = actor.ID
		err = s.repo.WithTx(ctx, func(ctx context.Context) error {
			return s.persist(ctx, &event)
		})
		if err != nil {
			return model.SubmitResult{}, err
		}
		log.Printf("event %d (%s) created from template %d", event.ID, event.Slug, form.Instance.ID)
		return model.SubmitResult{Event: event}, nil
	}

	wasTemplate := false
	if form.Instance != nil {
		event.ID = form.Instance.ID
		event.CreatedBy = form.Instance.CreatedBy
		event.CreationDate = form.Instance.CreationDate
		wasTemplate = form.Instance.IsTemplate()
	} else {
		event.CreatedBy = actor.ID
	}

	var template *model.Event
	err = s.repo.WithTx(ctx, func(ctx context.Context) error {
		if !event.IsTemplate() || wasTemplate {
			return s.persist(ctx, &event)
		}

		split := helper.CopyEvent(event)
		split.CreatedBy = event.CreatedBy
		event.TemplateName = ""
		if err := s.persist(ctx, &event); err != nil {
			return err
		}
		if err := s.persist(ctx, &split); err != nil {
			return err
		}
		template = &split
		return nil
	})
	if err != nil {
		return model.SubmitResult{}, err
	}
	if template != nil {
		log.Printf("event %d (%s) saved as template %d (%s)", event.ID, event.Slug, template.ID, template.Slug)
	}
	return model.SubmitResult{Event: event, Template: template}, nil
}

// AssignSlug returns the first free slug for event, ignoring the event's own row.
func (s *EventService) AssignSlug(ctx context.Context, event model.Event) (string, error) {
	return helper.UniqueSlug(helper.BaseSlug(event), func(candidate string) (bool, error) {
		return s.repo.SlugTaken(ctx, candidate, event.ID)
	})
}

func (s *EventService) persist(ctx context.Context, event *model.Event) error {
	write := s.repo.UpdateEvent
	if event.ID == 0 {
		write = s.repo.CreateEvent
	}
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		slug, err := s.AssignSlug(ctx, *event)
		if err != nil {
			return err
		}
		event.Slug = slug
		err = write(ctx, event)
		if !errors.Is(err, model.ErrSlugConflict) {
			return err
		}
		log.Printf("slug %q taken by a concurrent write, retrying (attempt %d)", slug, attempt)
	}
	return model.ErrSlugConflict
}

// GetBySlug returns an event visible to actor. Drafts and templates are only
// visible to staff.
func (s *EventService) GetBySlug(ctx context.Context, actor model.Actor, slug string) (model.Event, error) {
	event, err := s.repo.GetEventBySlug(ctx, slug)
	if err != nil {
		return model.Event{}, err
	}
	if !actor.IsStaff && (!event.IsPublished || event.IsTemplate()) {
		return model.Event{}, model.ErrNotFound
	}
	return event, nil
}

// Detail decorates an event with its free seats as the viewer may see them.
func (s *EventService) Detail(ctx context.Context, actor model.Actor, event model.Event) (model.EventDetail, error) {
	reserved, err := s.repo.SumReservedSeats(ctx, event.ID, 0)
	if err != nil {
		return model.EventDetail{}, err
	}
	free := helper.FreeSeats(event, reserved)
	return model.EventDetail{
		Event:         event,
		FreeSeats:     helper.DisplayFreeSeats(event, free, actor),
		IsBookable:    helper.IsBookable(event, s.clock.Now()),
		CanonicalPath: helper.CanonicalPath(event),
	}, nil
}

// GetTemplate returns the template with the given id; live events are not found.
func (s *EventService) GetTemplate(ctx context.Context, actor model.Actor, id uint) (model.Event, error) {
	if !actor.IsStaff {
		return model.Event{}, model.ErrPermissionDenied
	}
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return model.Event{}, err
	}
	if !event.IsTemplate() {
		return model.Event{}, model.ErrNotFound
	}
	return event, nil
}

// Delete removes an event together with its guests.
func (s *EventService) Delete(ctx context.Context, actor model.Actor, id uint) (err error) {
	ctx, span := tracer.Start(ctx, "EventService.Delete")
	defer func() { finish(span, err) }()

	if !actor.IsStaff {
		return model.ErrPermissionDenied
	}
	return s.repo.DeleteEvent(ctx, id)
}

// ListUpcoming returns published live events that have not started, soonest first.
func (s *EventService) ListUpcoming(ctx context.Context, page model.Pagination) ([]model.Event, int64, error) {
	return s.repo.ListUpcomingEvents(ctx, s.clock.Now(), page)
}

func (s *EventService) Dashboard(ctx context.Context, actor model.Actor) (model.Dashboard, error) {
	if !actor.IsStaff {
		return model.Dashboard{}, model.ErrPermissionDenied
	}
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return model.Dashboard{}, err
	}
	return helper.PartitionEvents(events, s.clock.Now()), nil
}
