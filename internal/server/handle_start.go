package server

import (
	"net/http"

	"github.com/daliev/quizroom/internal/room"
)

type StartResponse struct {
	OK   bool      `json:"ok"`
	Room room.View `json:"room"`
}

func handleStart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := roomActor(r).Start(r.Context())
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, StartResponse{OK: true, Room: view})
	}
}
