package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"event_rsvp/model"
)

func TestMemory_WithTx(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("rolls back on error", func(t *testing.T) {
		m := NewMemory()
		boom := errors.New("boom")
		err := m.WithTx(ctx, func(ctx context.Context) error {
			if err := m.CreateEvent(ctx, &model.Event{Title: "Foo", Slug: "foo"}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if m.CountEvents() != 0 {
			t.Fatalf("expected rollback, got %d events", m.CountEvents())
		}
	})

	t.Run("commits on success", func(t *testing.T) {
		m := NewMemory()
		err := m.WithTx(ctx, func(ctx context.Context) error {
			return m.CreateEvent(ctx, &model.Event{Title: "Foo", Slug: "foo"})
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := m.GetEventBySlug(ctx, "foo"); err != nil {
			t.Fatalf("expected committed event, got %v", err)
		}
	})
}

func TestMemory_Events(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()
	event := model.Event{Title: "Foo", Slug: "foo", Start: time.Now()}
	if err := m.CreateEvent(ctx, &event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		dup := model.Event{Title: "Foo", Slug: "foo"}
		if err := m.CreateEvent(ctx, &dup); !errors.Is(err, model.ErrSlugConflict) {
			t.Fatalf("expected slug conflict, got %v", err)
		}
		taken, _ := m.SlugTaken(ctx, "foo", event.ID)
		if taken {
			t.Fatalf("expected own slug not to count as taken")
		}
	})

	t.Run("stored copies are independent", func(t *testing.T) {
		seats := 5
		e := model.Event{Title: "Bar", Slug: "bar", AvailableSeats: &seats}
		if err := m.CreateEvent(ctx, &e); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		seats = 50
		stored, _ := m.GetEvent(ctx, e.ID)
		if *stored.AvailableSeats != 5 {
			t.Fatalf("expected stored seats to stay 5, got %d", *stored.AvailableSeats)
		}
	})

	t.Run("delete cascades to guests", func(t *testing.T) {
		guest := model.Guest{EventID: event.ID, NumberOfSeats: 2}
		if err := m.CreateGuest(ctx, &guest); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if reserved, _ := m.SumReservedSeats(ctx, event.ID, 0); reserved != 2 {
			t.Fatalf("expected 2 reserved seats, got %d", reserved)
		}
		if reserved, _ := m.SumReservedSeats(ctx, event.ID, guest.ID); reserved != 0 {
			t.Fatalf("expected excluded guest not to count, got %d", reserved)
		}
		if err := m.DeleteEvent(ctx, event.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := m.GetGuest(ctx, guest.ID); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("expected guest to be gone, got %v", err)
		}
	})
}

func TestSeedData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()
	for i := 0; i < 2; i++ {
		if err := SeedData(ctx, m, "admin", "secret123"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	account, err := m.GetAccountByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("expected seeded account, got %v", err)
	}
	if !account.IsStaff || !account.Active || account.Password == "secret123" {
		t.Fatalf("unexpected account %+v", account)
	}
	if len(m.accounts) != 1 {
		t.Fatalf("expected seeding to be idempotent, got %d accounts", len(m.accounts))
	}
}
