package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/daliev/quizroom/internal/room"
)

type ScenarioSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	RoundCount int    `json:"roundCount"`
	CreatedAt  string `json:"createdAt"`
}

type ScenarioDetail struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Rounds    []room.Round `json:"rounds"`
	CreatedAt string       `json:"createdAt"`
}

type ScenarioRequest struct {
	Title  string       `json:"title"`
	Rounds []room.Round `json:"rounds"`
}

// validate normalizes the request in place and returns a message for the
// first problem found, or "" when the scenario is playable. Round ids are
// defaulted, points and seconds get sane values; the play path itself
// stays permissive.
func (req *ScenarioRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "title is required"
	}
	if len(req.Rounds) == 0 {
		return "at least one round is required"
	}

	for i := range req.Rounds {
		rd := &req.Rounds[i]
		rd.ID = strings.TrimSpace(rd.ID)
		if rd.ID == "" {
			rd.ID = fmt.Sprintf("r%d", i+1)
		}
		if strings.TrimSpace(rd.Prompt) == "" {
			return "each round must have a prompt"
		}
		if len(rd.Choices) < 2 {
			return "each round must have at least two choices"
		}

		hasCorrect := false
		for _, c := range rd.Choices {
			if strings.TrimSpace(c.ID) == "" {
				return "each choice must have an id"
			}
			if bool(c.Correct) {
				hasCorrect = true
			}
		}
		if !hasCorrect {
			return "each round must mark a correct choice"
		}

		if rd.Points <= 0 {
			rd.Points = 10
		}
		if rd.Seconds <= 0 {
			rd.Seconds = 30
		}
	}
	return ""
}

func handleListScenarios(hosts *HostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scenarios, err := hosts.ListScenarios(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, scenarios)
	}
}

func handleCreateScenario(hosts *HostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScenarioRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		detail, err := hosts.CreateScenario(r.Context(), req)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, detail)
	}
}

func handleGetScenario(hosts *HostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := hosts.GetScenario(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, room.ErrNotFound) {
			writeError(w, http.StatusNotFound, "scenario not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func handleUpdateScenario(hosts *HostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScenarioRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		detail, err := hosts.UpdateScenario(r.Context(), chi.URLParam(r, "id"), req)
		if errors.Is(err, room.ErrNotFound) {
			writeError(w, http.StatusNotFound, "scenario not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func handleDeleteScenario(hosts *HostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := hosts.DeleteScenario(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, room.ErrNotFound) {
			writeError(w, http.StatusNotFound, "scenario not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
