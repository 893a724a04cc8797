package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/daliev/quizroom/internal/room"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// readJSONLenient decodes the body into v, treating a malformed or empty
// body as zero input. Room endpoints funnel missing fields into
// validation errors instead of rejecting unparsable bodies; clients
// depend on this leniency.
func readJSONLenient(r *http.Request, v any) {
	_ = readJSON(r, v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": msg})
}

// writeRoomError maps room error kinds onto the documented statuses: the
// three client-error kinds are all 400, everything else is an internal
// fault.
func writeRoomError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, room.ErrInvalidInput),
		errors.Is(err, room.ErrInvalidPhase),
		errors.Is(err, room.ErrNotFound):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
