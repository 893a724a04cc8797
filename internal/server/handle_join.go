package server

import (
	"net/http"
	"strings"

	"github.com/daliev/quizroom/internal/room"
)

type JoinRequest struct {
	Name string `json:"name"`
}

type JoinResponse struct {
	OK       bool      `json:"ok"`
	PlayerID string    `json:"playerId"`
	Room     room.View `json:"room"`
}

func handleJoin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinRequest
		readJSONLenient(r, &req)
		req.Name = strings.TrimSpace(req.Name)

		playerID, view, err := roomActor(r).Join(r.Context(), req.Name)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, JoinResponse{
			OK:       true,
			PlayerID: playerID,
			Room:     view,
		})
	}
}
