package server

import (
	"net/http"

	"github.com/daliev/quizroom/internal/room"
)

type CreateRequest struct {
	Mode     room.Mode      `json:"mode"`
	Scenario *room.Scenario `json:"scenario"`
}

type CreateResponse struct {
	OK    bool      `json:"ok"`
	Code  string    `json:"code"`
	Mode  room.Mode `json:"mode"`
	Title string    `json:"title"`
}

// handleCreate binds a fresh room to the code. A missing or unparsable
// body means "no mode, no scenario": the room falls back to its current
// mode and the built-in scenario rather than failing.
func handleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		readJSONLenient(r, &req)

		res, err := roomActor(r).Create(r.Context(), req.Mode, req.Scenario)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, CreateResponse{
			OK:    true,
			Code:  roomCode(r),
			Mode:  res.Mode,
			Title: res.Title,
		})
	}
}
