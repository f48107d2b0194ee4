package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"event_rsvp/model"
)

type memoryTxKey struct{}

// Memory is an in-process repository with the same contract as Repository.
// Transactions are serialized and rolled back from a snapshot on error.
type Memory struct {
	mu       sync.Mutex
	events   map[uint]model.Event
	guests   map[uint]model.Guest
	accounts map[uint]model.Account
	lastID   uint
}

func NewMemory() *Memory {
	return &Memory{
		events:   make(map[uint]model.Event),
		guests:   make(map[uint]model.Guest),
		accounts: make(map[uint]model.Account),
	}
}

func (m *Memory) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inMemoryTx(ctx) {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	events, guests, accounts, lastID := m.snapshot()
	if err := fn(context.WithValue(ctx, memoryTxKey{}, true)); err != nil {
		m.events, m.guests, m.accounts, m.lastID = events, guests, accounts, lastID
		return err
	}
	return nil
}

func inMemoryTx(ctx context.Context) bool {
	in, _ := ctx.Value(memoryTxKey{}).(bool)
	return in
}

func (m *Memory) do(ctx context.Context, fn func()) {
	if inMemoryTx(ctx) {
		fn()
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

func (m *Memory) snapshot() (map[uint]model.Event, map[uint]model.Guest, map[uint]model.Account, uint) {
	events := make(map[uint]model.Event, len(m.events))
	for id, e := range m.events {
		events[id] = cloneEvent(e)
	}
	guests := make(map[uint]model.Guest, len(m.guests))
	for id, g := range m.guests {
		guests[id] = g
	}
	accounts := make(map[uint]model.Account, len(m.accounts))
	for id, a := range m.accounts {
		accounts[id] = a
	}
	return events, guests, accounts, m.lastID
}

func (m *Memory) nextID() uint {
	m.lastID++
	return m.lastID
}

func cloneEvent(e model.Event) model.Event {
	if e.AvailableSeats != nil {
		seats := *e.AvailableSeats
		e.AvailableSeats = &seats
	}
	if e.MaxSeatsPerGuest != nil {
		limit := *e.MaxSeatsPerGuest
		e.MaxSeatsPerGuest = &limit
	}
	if e.RequiredFields != nil {
		e.RequiredFields = append([]string{}, e.RequiredFields...)
	}
	e.Guests = nil
	return e
}

func (m *Memory) slugUsedLocked(slug string, excludeID uint) bool {
	for id, e := range m.events {
		if id != excludeID && e.Slug == slug {
			return true
		}
	}
	return false
}

func (m *Memory) GetEvent(ctx context.Context, id uint) (model.Event, error) {
	var (
		event model.Event
		ok    bool
	)
	m.do(ctx, func() {
		event, ok = m.events[id]
		event = cloneEvent(event)
	})
	if !ok {
		return model.Event{}, model.ErrNotFound
	}
	return event, nil
}

// GetEventForUpdate relies on WithTx holding the store lock.
func (m *Memory) GetEventForUpdate(ctx context.Context, id uint) (model.Event, error) {
	return m.GetEvent(ctx, id)
}

func (m *Memory) GetEventBySlug(ctx context.Context, slug string) (model.Event, error) {
	var (
		event model.Event
		found bool
	)
	m.do(ctx, func() {
		for _, e := range m.events {
			if e.Slug == slug {
				event, found = cloneEvent(e), true
				return
			}
		}
	})
	if !found {
		return model.Event{}, model.ErrNotFound
	}
	return event, nil
}

func (m *Memory) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var taken bool
	m.do(ctx, func() {
		taken = m.slugUsedLocked(slug, excludeID)
	})
	return taken, nil
}

func (m *Memory) CreateEvent(ctx context.Context, event *model.Event) error {
	var err error
	m.do(ctx, func() {
		if m.slugUsedLocked(event.Slug, 0) {
			err = model.ErrSlugConflict
			return
		}
		event.ID = m.nextID()
		if event.CreationDate.IsZero() {
			event.CreationDate = time.Now().UTC()
		}
		m.events[event.ID] = cloneEvent(*event)
	})
	return err
}

func (m *Memory) UpdateEvent(ctx context.Context, event *model.Event) error {
	var err error
	m.do(ctx, func() {
		if _, ok := m.events[event.ID]; !ok {
			err = model.ErrNotFound
			return
		}
		if m.slugUsedLocked(event.Slug, event.ID) {
			err = model.ErrSlugConflict
			return
		}
		m.events[event.ID] = cloneEvent(*event)
	})
	return err
}

func (m *Memory) DeleteEvent(ctx context.Context, id uint) error {
	var err error
	m.do(ctx, func() {
		if _, ok := m.events[id]; !ok {
			err = model.ErrNotFound
			return
		}
		for guestID, g := range m.guests {
			if g.EventID == id {
				delete(m.guests, guestID)
			}
		}
		delete(m.events, id)
	})
	return err
}

func (m *Memory) ListUpcomingEvents(ctx context.Context, now time.Time, page model.Pagination) ([]model.Event, int64, error) {
	var events []model.Event
	m.do(ctx, func() {
		for _, e := range m.events {
			if e.Start.After(now) && e.IsPublished && !e.IsTemplate() {
				events = append(events, cloneEvent(e))
			}
		}
	})
	sortByStart(events)
	total := int64(len(events))

	if page.Limit != nil && *page.Limit > 0 && page.Page != nil && *page.Page >= 1 {
		offset := *page.Limit * (*page.Page - 1)
		if offset >= len(events) {
			return []model.Event{}, total, nil
		}
		end := offset + *page.Limit
		if end > len(events) {
			end = len(events)
		}
		events = events[offset:end]
	}
	return events, total, nil
}

func (m *Memory) ListEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	m.do(ctx, func() {
		for _, e := range m.events {
			events = append(events, cloneEvent(e))
		}
	})
	sortByStart(events)
	return events, nil
}

func sortByStart(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Start.Equal(events[j].Start) {
			return events[i].ID < events[j].ID
		}
		return events[i].Start.Before(events[j].Start)
	})
}

func (m *Memory) CountEvents() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func (m *Memory) SumReservedSeats(ctx context.Context, eventID, excludeGuestID uint) (int, error) {
	var total int
	m.do(ctx, func() {
		for id, g := range m.guests {
			if g.EventID == eventID && id != excludeGuestID {
				total += g.NumberOfSeats
			}
		}
	})
	return total, nil
}

func (m *Memory) CreateGuest(ctx context.Context, guest *model.Guest) error {
	var err error
	m.do(ctx, func() {
		if _, ok := m.events[guest.EventID]; !ok {
			err = model.ErrNotFound
			return
		}
		guest.ID = m.nextID()
		if guest.CreationDate.IsZero() {
			guest.CreationDate = time.Now().UTC()
		}
		m.guests[guest.ID] = *guest
	})
	return err
}

func (m *Memory) UpdateGuest(ctx context.Context, guest *model.Guest) error {
	var err error
	m.do(ctx, func() {
		if _, ok := m.guests[guest.ID]; !ok {
			err = model.ErrNotFound
			return
		}
		m.guests[guest.ID] = *guest
	})
	return err
}

func (m *Memory) GetGuest(ctx context.Context, id uint) (model.Guest, error) {
	var (
		guest model.Guest
		ok    bool
	)
	m.do(ctx, func() {
		guest, ok = m.guests[id]
	})
	if !ok {
		return model.Guest{}, model.ErrNotFound
	}
	return guest, nil
}

func (m *Memory) DeleteGuest(ctx context.Context, id uint) error {
	var err error
	m.do(ctx, func() {
		if _, ok := m.guests[id]; !ok {
			err = model.ErrNotFound
			return
		}
		delete(m.guests, id)
	})
	return err
}

func (m *Memory) ListGuests(ctx context.Context, eventID uint) ([]model.Guest, error) {
	guests := []model.Guest{}
	m.do(ctx, func() {
		for _, g := range m.guests {
			if g.EventID == eventID {
				guests = append(guests, g)
			}
		}
	})
	sort.Slice(guests, func(i, j int) bool { return guests[i].ID < guests[j].ID })
	return guests, nil
}

func (m *Memory) GetAccountByUsername(ctx context.Context, username string) (model.Account, error) {
	var (
		account model.Account
		found   bool
	)
	m.do(ctx, func() {
		for _, a := range m.accounts {
			if a.Username == username {
				account, found = a, true
				return
			}
		}
	})
	if !found {
		return model.Account{}, model.ErrNotFound
	}
	return account, nil
}

func (m *Memory) CreateAccount(ctx context.Context, account *model.Account) error {
	m.do(ctx, func() {
		account.ID = m.nextID()
		m.accounts[account.ID] = *account
	})
	return nil
}
