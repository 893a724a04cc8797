package server

import (
	"net/http"

	"github.com/daliev/quizroom/internal/room"
)

type ScoreboardResponse struct {
	OK      bool              `json:"ok"`
	Players []room.PlayerView `json:"players"`
}

// handleScoreboard lists players by score descending; equal scores keep
// join order.
func handleScoreboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := roomActor(r).Scoreboard(r.Context())
		if err != nil {
			writeRoomError(w, err)
			return
		}
		if players == nil {
			players = []room.PlayerView{}
		}

		writeJSON(w, http.StatusOK, ScoreboardResponse{OK: true, Players: players})
	}
}
