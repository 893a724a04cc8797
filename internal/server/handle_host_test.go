package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/daliev/quizroom/internal/database"
	"github.com/daliev/quizroom/internal/room"
)

func hostRouter(t *testing.T) (*chi.Mux, func() []*http.Cookie) {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	hosts, err := NewHostStore(ctx, db)
	if err != nil {
		t.Fatalf("init host store: %v", err)
	}
	if err := Seed(ctx, slog.Default(), hosts, "host@quizroom.local", "changeme"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	r := chi.NewRouter()
	r.Post("/api/host/login", handleHostLogin(hosts))
	r.Post("/api/host/logout", handleHostLogout(hosts))
	r.Group(func(r chi.Router) {
		r.Use(hostAuthMiddleware(hosts))
		r.Get("/api/host/me", handleHostMe())
		r.Route("/api/host/scenarios", func(r chi.Router) {
			r.Get("/", handleListScenarios(hosts))
			r.Post("/", handleCreateScenario(hosts))
			r.Get("/{id}", handleGetScenario(hosts))
			r.Put("/{id}", handleUpdateScenario(hosts))
			r.Delete("/{id}", handleDeleteScenario(hosts))
		})
	})

	login := func() []*http.Cookie {
		body, _ := json.Marshal(HostLoginRequest{Email: "host@quizroom.local", Password: "changeme"})
		req := httptest.NewRequest(http.MethodPost, "/api/host/login", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
		}
		return w.Result().Cookies()
	}

	return r, login
}

func TestHostLoginGoodCredentials(t *testing.T) {
	r, _ := hostRouter(t)

	body, _ := json.Marshal(HostLoginRequest{Email: "host@quizroom.local", Password: "changeme"})
	req := httptest.NewRequest(http.MethodPost, "/api/host/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp HostMeResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Email != "host@quizroom.local" {
		t.Errorf("expected email host@quizroom.local, got %q", resp.Email)
	}

	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == hostCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected host_session cookie to be set")
	}
}

func TestHostLoginBadPassword(t *testing.T) {
	r, _ := hostRouter(t)

	body, _ := json.Marshal(HostLoginRequest{Email: "host@quizroom.local", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/host/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestHostLoginUnknownEmail(t *testing.T) {
	r, _ := hostRouter(t)

	body, _ := json.Marshal(HostLoginRequest{Email: "nobody@example.com", Password: "changeme"})
	req := httptest.NewRequest(http.MethodPost, "/api/host/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestHostLoginMalformedBody(t *testing.T) {
	r, _ := hostRouter(t)

	// Host endpoints are strict about bodies, unlike the play endpoints.
	req := httptest.NewRequest(http.MethodPost, "/api/host/login", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHostMeRequiresSession(t *testing.T) {
	r, _ := hostRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/host/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestHostLogoutInvalidatesSession(t *testing.T) {
	r, login := hostRouter(t)
	cookies := login()

	req := httptest.NewRequest(http.MethodPost, "/api/host/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	// The old cookie is useless after logout.
	req = httptest.NewRequest(http.MethodGet, "/api/host/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", w.Code)
	}
}

func TestScenariosRequireSession(t *testing.T) {
	r, _ := hostRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/host/scenarios/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestScenarioLifecycle(t *testing.T) {
	r, login := hostRouter(t)
	cookies := login()

	send := func(method, path string, body any) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			json.NewEncoder(&buf).Encode(body)
		}
		req := httptest.NewRequest(method, path, &buf)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// The seed installs one demo scenario.
	w := send(http.MethodGet, "/api/host/scenarios/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list []ScenarioSummary
	json.NewDecoder(w.Body).Decode(&list)
	if len(list) != 1 {
		t.Fatalf("list: expected 1 seeded scenario, got %d", len(list))
	}

	// Create: missing round ids and points get defaults.
	w = send(http.MethodPost, "/api/host/scenarios/", ScenarioRequest{
		Title: "Network Forensics",
		Rounds: []room.Round{
			{
				Prompt: "Which port is the backdoor?",
				Choices: []room.Choice{
					{ID: "a", Text: "443"},
					{ID: "b", Text: "31337", Correct: true},
				},
			},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created ScenarioDetail
	json.NewDecoder(w.Body).Decode(&created)
	if created.ID == "" {
		t.Fatal("create: expected an id")
	}
	if created.Rounds[0].ID != "r1" {
		t.Errorf("create: expected defaulted round id r1, got %q", created.Rounds[0].ID)
	}
	if created.Rounds[0].Points != 10 || created.Rounds[0].Seconds != 30 {
		t.Errorf("create: expected defaulted points/seconds, got %d/%d",
			created.Rounds[0].Points, created.Rounds[0].Seconds)
	}

	// Get.
	w = send(http.MethodGet, "/api/host/scenarios/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Update keeps the creation timestamp.
	w = send(http.MethodPut, "/api/host/scenarios/"+created.ID, ScenarioRequest{
		Title:  "Network Forensics v2",
		Rounds: created.Rounds,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated ScenarioDetail
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Title != "Network Forensics v2" {
		t.Errorf("update: expected new title, got %q", updated.Title)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Errorf("update: createdAt changed from %q to %q", created.CreatedAt, updated.CreatedAt)
	}

	// Delete, then the scenario is gone.
	w = send(http.MethodDelete, "/api/host/scenarios/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = send(http.MethodGet, "/api/host/scenarios/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestScenarioValidation(t *testing.T) {
	r, login := hostRouter(t)
	cookies := login()

	cases := []struct {
		name string
		req  ScenarioRequest
	}{
		{"missing title", ScenarioRequest{Rounds: twoRoundScenario().Rounds}},
		{"no rounds", ScenarioRequest{Title: "Empty"}},
		{
			"no correct choice",
			ScenarioRequest{
				Title: "Broken",
				Rounds: []room.Round{
					{
						Prompt: "Pick one",
						Choices: []room.Choice{
							{ID: "a", Text: "A"},
							{ID: "b", Text: "B"},
						},
					},
				},
			},
		},
		{
			"single choice",
			ScenarioRequest{
				Title: "Broken",
				Rounds: []room.Round{
					{
						Prompt:  "Pick one",
						Choices: []room.Choice{{ID: "a", Text: "A", Correct: true}},
					},
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.req)
			req := httptest.NewRequest(http.MethodPost, "/api/host/scenarios/", bytes.NewReader(body))
			for _, c := range cookies {
				req.AddCookie(c)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}
