package service

import (
	"context"
	"strconv"

	"event_rsvp/clock"
	"event_rsvp/helper"
	"event_rsvp/locker"
	"event_rsvp/model"
)

// GuestCreatedHook runs after a reservation has been committed.
type GuestCreatedHook func(ctx context.Context, actor model.Actor, event model.Event, guest model.Guest)

type GuestService struct {
	repo    GuestRepository
	locker  locker.Locker
	clock   clock.Clock
	created []GuestCreatedHook
}

func NewGuestService(repo GuestRepository, lk locker.Locker, clk clock.Clock) *GuestService {
	return &GuestService{repo: repo, locker: lk, clock: clk}
}

// OnGuestCreated registers a hook called after every new reservation.
func (s *GuestService) OnGuestCreated(hook GuestCreatedHook) {
	s.created = append(s.created, hook)
}

// Reserve admits a reservation for the event with the given slug. Rejections
// are returned as model.Rejections.
func (s *GuestService) Reserve(ctx context.Context, actor model.Actor, eventSlug string, proposed model.Guest) (guest model.Guest, err error) {
	ctx, span := tracer.Start(ctx, "GuestService.Reserve")
	defer func() { finish(span, err) }()

	event, err := s.repo.GetEventBySlug(ctx, eventSlug)
	if err != nil {
		return model.Guest{}, err
	}
	if err := s.checkOpen(actor, event, true); err != nil {
		return model.Guest{}, err
	}
	if actor.Anonymous && !event.AllowAnonymousRSVP {
		return model.Guest{}, model.ErrLoginRequired
	}

	proposed.ID = 0
	proposed.UserID = actor.UserID()
	event, guest, err = s.admit(ctx, actor, event.ID, proposed, true)
	if err != nil {
		return model.Guest{}, err
	}
	for _, hook := range s.created {
		hook(ctx, actor, event, guest)
	}
	return guest, nil
}

// UpdateReservation re-validates an existing reservation with new values. The
// guest's own seats do not count against the free seats.
func (s *GuestService) UpdateReservation(ctx context.Context, actor model.Actor, existing model.Guest, proposed model.Guest) (guest model.Guest, err error) {
	ctx, span := tracer.Start(ctx, "GuestService.UpdateReservation")
	defer func() { finish(span, err) }()

	if !canAccess(actor, existing) {
		return model.Guest{}, model.ErrPermissionDenied
	}
	requireBookable := !actor.IsStaff
	event, err := s.repo.GetEvent(ctx, existing.EventID)
	if err != nil {
		return model.Guest{}, err
	}
	if err := s.checkOpen(actor, event, requireBookable); err != nil {
		return model.Guest{}, err
	}

	proposed.ID = existing.ID
	proposed.UserID = existing.UserID
	proposed.CreationDate = existing.CreationDate
	_, guest, err = s.admit(ctx, actor, existing.EventID, proposed, requireBookable)
	return guest, err
}

// checkOpen reports whether actor may reserve on event. Templates, and drafts
// for non-staff, are not found.
func (s *GuestService) checkOpen(actor model.Actor, event model.Event, requireBookable bool) error {
	if event.IsTemplate() || (!event.IsPublished && !actor.IsStaff) {
		return model.ErrNotFound
	}
	if requireBookable && !helper.IsBookable(event, s.clock.Now()) {
		return model.ErrNotBookable
	}
	return nil
}

// admit runs one seat-accounting decision for an event: at most one is in
// flight per event, and the event and aggregate are re-read under a row lock
// before the guest is written.
func (s *GuestService) admit(ctx context.Context, actor model.Actor, eventID uint, proposed model.Guest, requireBookable bool) (model.Event, model.Guest, error) {
	unlock, err := s.locker.Lock(ctx, lockKey(eventID))
	if err != nil {
		return model.Event{}, model.Guest{}, err
	}
	defer unlock()

	var (
		locked   model.Event
		admitted model.Guest
	)
	err = s.repo.WithTx(ctx, func(ctx context.Context) error {
		event, err := s.repo.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if err := s.checkOpen(actor, event, requireBookable); err != nil {
			return err
		}
		reserved, err := s.repo.SumReservedSeats(ctx, eventID, proposed.ID)
		if err != nil {
			return err
		}
		guest, rejections := helper.ValidateReservation(event, reserved, proposed)
		if len(rejections) > 0 {
			return rejections
		}
		if guest.ID == 0 {
			err = s.repo.CreateGuest(ctx, &guest)
		} else {
			err = s.repo.UpdateGuest(ctx, &guest)
		}
		if err != nil {
			return err
		}
		locked, admitted = event, guest
		return nil
	})
	if err != nil {
		return model.Event{}, model.Guest{}, err
	}
	return locked, admitted, nil
}

// GetReservation returns a guest of the event with the given slug, if actor
// owns it or is staff.
func (s *GuestService) GetReservation(ctx context.Context, actor model.Actor, eventSlug string, guestID uint) (model.Guest, error) {
	event, err := s.repo.GetEventBySlug(ctx, eventSlug)
	if err != nil {
		return model.Guest{}, err
	}
	guest, err := s.repo.GetGuest(ctx, guestID)
	if err != nil {
		return model.Guest{}, err
	}
	if guest.EventID != event.ID {
		return model.Guest{}, model.ErrNotFound
	}
	if !canAccess(actor, guest) {
		return model.Guest{}, model.ErrPermissionDenied
	}
	return guest, nil
}

func (s *GuestService) CancelReservation(ctx context.Context, actor model.Actor, guest model.Guest) (err error) {
	ctx, span := tracer.Start(ctx, "GuestService.CancelReservation")
	defer func() { finish(span, err) }()

	if !actor.IsStaff {
		return model.ErrPermissionDenied
	}
	return s.repo.DeleteGuest(ctx, guest.ID)
}

func (s *GuestService) ListGuests(ctx context.Context, actor model.Actor, eventID uint) ([]model.Guest, error) {
	if !actor.IsStaff {
		return nil, model.ErrPermissionDenied
	}
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListGuests(ctx, eventID)
}

func canAccess(actor model.Actor, guest model.Guest) bool {
	if actor.IsStaff {
		return true
	}
	if actor.Anonymous || guest.UserID == nil {
		return false
	}
	return *guest.UserID == actor.ID
}

func lockKey(eventID uint) string {
	return "event:" + strconv.FormatUint(uint64(eventID), 10)
}
