package server

import (
	"net/http"

	"github.com/daliev/quizroom/internal/room"
)

type CurrentResponse struct {
	OK    bool            `json:"ok"`
	Phase room.Phase      `json:"phase"`
	Round *room.RoundView `json:"round"`
	Idx   int             `json:"idx"`
}

// handleCurrent reports the active round with correctness flags stripped,
// or round=null outside an active round. Valid in every phase; players
// poll this endpoint.
func handleCurrent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := roomActor(r).Current(r.Context())
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, CurrentResponse{
			OK:    true,
			Phase: state.Phase,
			Round: state.Round,
			Idx:   state.Idx,
		})
	}
}
