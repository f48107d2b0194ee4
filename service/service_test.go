package service

import (
	"context"
	"testing"
	"time"

	"event_rsvp/clock"
	"event_rsvp/database"
	"event_rsvp/locker"
	"event_rsvp/model"
)

var (
	testNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	staff   = model.Actor{ID: 1, IsStaff: true, DisplayName: "staff"}
	alice   = model.Actor{ID: 2, DisplayName: "alice"}
	bob     = model.Actor{ID: 3, DisplayName: "bob"}
)

type testEnv struct {
	repo   *database.Memory
	events *EventService
	guests *GuestService
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	repo := database.NewMemory()
	clk := clock.NewFixed(testNow)
	return testEnv{
		repo:   repo,
		events: NewEventService(repo, clk),
		guests: NewGuestService(repo, locker.NewLocal(), clk),
	}
}

// createEvent stores a published live event starting tomorrow.
func (env testEnv) createEvent(t *testing.T, e model.Event) model.Event {
	t.Helper()
	if e.Start.IsZero() {
		e.Start = testNow.Add(24 * time.Hour)
	}
	result, err := env.events.Submit(context.Background(), staff, EventForm{Data: e})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return result.Event
}
