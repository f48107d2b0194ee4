package router

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"event_rsvp/clock"
	"event_rsvp/database"
	"event_rsvp/handler"
	"event_rsvp/helper"
	"event_rsvp/locker"
	"event_rsvp/model"
	"event_rsvp/service"
	"event_rsvp/utils"

	"github.com/gofiber/fiber/v2"
)

var testSecret = []byte("router-test-secret")

type testApp struct {
	app    *fiber.App
	events *service.EventService
	guests *service.GuestService
	now    time.Time
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	repo := database.NewMemory()
	if err := database.SeedData(context.Background(), repo, "admin", "secret123"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	clk := clock.NewFixed(now)
	h := handler.New(
		service.NewEventService(repo, clk),
		service.NewGuestService(repo, locker.NewLocal(), clk),
		service.NewAuthService(repo, testSecret, clk),
	)
	app := fiber.New()
	SetupRoutes(app, h, testSecret)
	return testApp{app: app, events: h.Events, guests: h.Guests, now: now}
}

func (ta testApp) createEvent(t *testing.T, e model.Event) model.Event {
	t.Helper()
	if e.Start.IsZero() {
		e.Start = ta.now.Add(48 * time.Hour)
	}
	result, err := ta.events.Submit(context.Background(), model.Actor{ID: 1, IsStaff: true}, service.EventForm{Data: e})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return result.Event
}

func (ta testApp) do(t *testing.T, method, path, body string, actor *model.Actor) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		token, err := helper.GenerateAccessToken(testSecret, model.TokenClaim{
			AccountId:   actor.ID,
			Username:    actor.DisplayName,
			DisplayName: actor.DisplayName,
			IsStaff:     actor.IsStaff,
		}, time.Now())
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(data)
}

var (
	staffActor = &model.Actor{ID: 1, IsStaff: true, DisplayName: "admin"}
	aliceActor = &model.Actor{ID: 2, DisplayName: "alice"}
	bobActor   = &model.Actor{ID: 3, DisplayName: "bob"}
)

func TestEventRoutes(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	event := ta.createEvent(t, model.Event{Title: "Summer Party", IsPublished: true, AvailableSeats: utils.Ptr(10)})
	draft := ta.createEvent(t, model.Event{Title: "Draft"})
	path := helper.CanonicalPath(event)

	t.Run("canonical path resolves", func(t *testing.T) {
		status, body := ta.do(t, http.MethodGet, path, "", nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
		if !strings.Contains(body, `"slug":"summer-party"`) || !strings.Contains(body, `"isBookable":true`) {
			t.Fatalf("unexpected body %s", body)
		}
	})

	t.Run("wrong date is not found", func(t *testing.T) {
		wrong := event.Start.Add(24 * time.Hour)
		status, _ := ta.do(t, http.MethodGet, fmt.Sprintf("/api/v1/events/%04d/%02d/%02d/%s", wrong.Year(), wrong.Month(), wrong.Day(), event.Slug), "", nil)
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
	})

	t.Run("drafts are hidden from guests", func(t *testing.T) {
		if status, _ := ta.do(t, http.MethodGet, helper.CanonicalPath(draft), "", aliceActor); status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
		if status, _ := ta.do(t, http.MethodGet, helper.CanonicalPath(draft), "", staffActor); status != http.StatusOK {
			t.Fatalf("expected staff to see draft, got %d", status)
		}
	})

	t.Run("upcoming listing is public", func(t *testing.T) {
		status, body := ta.do(t, http.MethodGet, "/api/v1/events?limit=10&page=1", "", nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
		if !strings.Contains(body, `"totalCount":1`) {
			t.Fatalf("expected only the published event, got %s", body)
		}
	})

	t.Run("staff routes answer 404 to others", func(t *testing.T) {
		body := `{"title":"New","venue":"Hall"}`
		if status, _ := ta.do(t, http.MethodPost, "/api/v1/events", body, aliceActor); status != http.StatusNotFound {
			t.Fatalf("expected 404 for non-staff create, got %d", status)
		}
		if status, _ := ta.do(t, http.MethodGet, "/api/v1/events/staff", "", nil); status != http.StatusNotFound {
			t.Fatalf("expected 404 for anonymous dashboard, got %d", status)
		}
		if status, _ := ta.do(t, http.MethodDelete, path, "", aliceActor); status != http.StatusNotFound {
			t.Fatalf("expected 404 for non-staff delete, got %d", status)
		}
	})

	t.Run("staff creates and updates events", func(t *testing.T) {
		start := ta.now.Add(72 * time.Hour).Format(time.RFC3339)
		status, body := ta.do(t, http.MethodPost, "/api/v1/events", fmt.Sprintf(`{"title":"Summer Party","venue":"Hall","start":%q,"isPublished":true}`, start), staffActor)
		if status != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", status, body)
		}
		if !strings.Contains(body, `"slug":"summer-party0"`) {
			t.Fatalf("expected suffixed slug, got %s", body)
		}

		status, body = ta.do(t, http.MethodPut, path, `{"templateName":"Party Template"}`, staffActor)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
		if !strings.Contains(body, `"slug":"party-template"`) || !strings.Contains(body, `"slug":"summer-party"`) {
			t.Fatalf("expected live event and template in result, got %s", body)
		}
	})

	t.Run("invalid input is rejected", func(t *testing.T) {
		status, _ := ta.do(t, http.MethodPost, "/api/v1/events", `{"title":"","venue":"Hall"}`, staffActor)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
		end := ta.now.Format(time.RFC3339)
		start := ta.now.Add(time.Hour).Format(time.RFC3339)
		status, _ = ta.do(t, http.MethodPost, "/api/v1/events", fmt.Sprintf(`{"title":"X","venue":"Hall","start":%q,"end":%q}`, start, end), staffActor)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400 for end before start, got %d", status)
		}
		status, _ = ta.do(t, http.MethodPost, "/api/v1/events", `{"title":"X","venue":"Hall","requiredFields":["name","age"]}`, staffActor)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown required field, got %d", status)
		}
	})
}

func TestGuestRoutes(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	single := ta.createEvent(t, model.Event{Title: "Single", IsPublished: true, AvailableSeats: utils.Ptr(1), AllowAnonymousRSVP: true})
	closed := ta.createEvent(t, model.Event{Title: "Closed", IsPublished: true})

	t.Run("seat rejection is reported per field", func(t *testing.T) {
		status, body := ta.do(t, http.MethodPost, "/api/v1/guests/"+single.Slug, `{"numberOfSeats":100}`, nil)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", status, body)
		}
		if !strings.Contains(body, `"code":"seats_exhausted"`) || !strings.Contains(body, "Only 1 seat left.") {
			t.Fatalf("unexpected body %s", body)
		}
	})

	t.Run("no seats left reports a zero limit", func(t *testing.T) {
		if _, err := ta.guests.Reserve(context.Background(), model.AnonymousActor, single.Slug, model.Guest{Name: "First"}); err != nil {
			t.Fatalf("reserve: %v", err)
		}
		status, body := ta.do(t, http.MethodPost, "/api/v1/guests/"+single.Slug, `{"name":"Second"}`, nil)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", status, body)
		}
		if !strings.Contains(body, `"limit":0`) || !strings.Contains(body, "Only 0 seats left.") {
			t.Fatalf("expected remaining 0 in body, got %s", body)
		}
	})

	t.Run("anonymous reservation needs permission", func(t *testing.T) {
		if status, _ := ta.do(t, http.MethodPost, "/api/v1/guests/"+closed.Slug, `{"name":"X"}`, nil); status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
	})

	t.Run("owner reads and updates a reservation", func(t *testing.T) {
		guest, err := ta.guests.Reserve(context.Background(), *aliceActor, closed.Slug, model.Guest{Name: "Alice"})
		if err != nil {
			t.Fatalf("reserve: %v", err)
		}
		guestPath := fmt.Sprintf("/api/v1/guests/%s/%d", closed.Slug, guest.ID)

		if status, body := ta.do(t, http.MethodGet, guestPath, "", aliceActor); status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
		if status, _ := ta.do(t, http.MethodGet, guestPath, "", bobActor); status != http.StatusNotFound {
			t.Fatalf("expected 404 for other user, got %d", status)
		}
		if status, _ := ta.do(t, http.MethodGet, guestPath, "", nil); status != http.StatusUnauthorized {
			t.Fatalf("expected 401 for anonymous, got %d", status)
		}

		status, body := ta.do(t, http.MethodPut, guestPath, `{"numberOfSeats":3,"isAttending":false}`, aliceActor)
		if status != http.StatusOK || !strings.Contains(body, `"numberOfSeats":3`) || !strings.Contains(body, `"isAttending":false`) {
			t.Fatalf("expected update, got %d: %s", status, body)
		}
		if !strings.Contains(body, `"name":"Alice"`) {
			t.Fatalf("expected omitted name to be kept, got %s", body)
		}

		if status, _ := ta.do(t, http.MethodDelete, guestPath, "", aliceActor); status != http.StatusNotFound {
			t.Fatalf("expected 404 for non-staff cancel, got %d", status)
		}
		if status, _ := ta.do(t, http.MethodDelete, guestPath, "", staffActor); status != http.StatusOK {
			t.Fatalf("expected staff cancel, got %d", status)
		}
	})

	t.Run("staff lists guests", func(t *testing.T) {
		status, body := ta.do(t, http.MethodGet, fmt.Sprintf("/api/v1/events/%d/guests", closed.ID), "", staffActor)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", status, body)
		}
		if status, _ := ta.do(t, http.MethodGet, "/api/v1/events/abc/guests", "", staffActor); status != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed id, got %d", status)
		}
	})
}

func TestAuthRoutes(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)

	status, body := ta.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"secret123"}`, nil)
	if status != http.StatusOK || !strings.Contains(body, `"accessToken"`) {
		t.Fatalf("expected token, got %d: %s", status, body)
	}
	if status, _ := ta.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"wrong-password"}`, nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if status, _ := ta.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":"admin"}`, nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}
