package server

import (
	"net/http"

	"github.com/daliev/quizroom/internal/room"
)

type NextResponse struct {
	OK    bool       `json:"ok"`
	Phase room.Phase `json:"phase,omitempty"`
	Idx   *int       `json:"idx,omitempty"`
}

// handleNext advances past the current round: the new index while rounds
// remain, the results phase after the last one.
func handleNext() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := roomActor(r).Next(r.Context())
		if err != nil {
			writeRoomError(w, err)
			return
		}

		if res.Phase == room.PhaseResults {
			writeJSON(w, http.StatusOK, NextResponse{OK: true, Phase: res.Phase})
			return
		}
		writeJSON(w, http.StatusOK, NextResponse{OK: true, Idx: &res.Idx})
	}
}
