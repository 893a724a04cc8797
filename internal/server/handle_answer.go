package server

import (
	"net/http"

	"github.com/daliev/quizroom/internal/room"
)

type AnswerRequest struct {
	PlayerID string `json:"playerId"`
	// ChoiceID tolerates numeric ids from loosely typed clients.
	ChoiceID room.FlexID `json:"choiceId"`
}

type AnswerResponse struct {
	OK      bool `json:"ok"`
	Correct bool `json:"correct"`
	Score   int  `json:"score"`
}

// AnswerRepeatResponse is returned for duplicate submissions: the
// original answer stands and the score is unchanged.
type AnswerRepeatResponse struct {
	OK      bool `json:"ok"`
	Already bool `json:"already"`
	Score   int  `json:"score"`
}

func handleAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswerRequest
		readJSONLenient(r, &req)

		res, err := roomActor(r).Answer(r.Context(), req.PlayerID, string(req.ChoiceID))
		if err != nil {
			writeRoomError(w, err)
			return
		}

		if res.Already {
			writeJSON(w, http.StatusOK, AnswerRepeatResponse{OK: true, Already: true, Score: res.Score})
			return
		}
		writeJSON(w, http.StatusOK, AnswerResponse{OK: true, Correct: res.Correct, Score: res.Score})
	}
}
