// Package room implements the authoritative state machine for one game
// room: phase progression, membership, answer scoring, and the snapshot
// write that follows every mutation. All operations on a room are
// serialized by its Actor; distinct room codes are fully independent.
package room

import "sort"

// Mode tags the flavor of scenario a room plays.
type Mode string

const (
	ModeSerious Mode = "serious"
	ModeFunny   Mode = "funny"
	ModeEaster  Mode = "easter"
)

// Phase is the room lifecycle stage. Rooms move lobby → round → results
// and never back.
type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhaseRound   Phase = "round"
	PhaseResults Phase = "results"
)

type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	// Correct is never exposed through player-facing views.
	Correct Truthy `json:"correct"`
}

type Round struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Choices []Choice `json:"choices"`
	Points  int      `json:"points"`
	// Seconds is an advisory time budget consumed by clients. The server
	// never auto-advances a round when it elapses; Next is the only way
	// forward.
	Seconds int `json:"seconds"`
}

// Scenario is immutable once attached to a room. Replacing it via Create
// replaces the whole room and clears the roster.
type Scenario struct {
	Title  string  `json:"title"`
	Rounds []Round `json:"rounds"`
}

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	// Answered maps round id to the normalized choice id the player
	// submitted. An entry, once written, is immutable; it guards against
	// double-scoring and doubles as an audit trail.
	Answered map[string]string `json:"answered"`
	// Seq is the join order, used as the deterministic scoreboard
	// tie-break.
	Seq int `json:"seq"`
}

// Room is the full snapshot persisted after every mutation.
type Room struct {
	Code            string             `json:"code"`
	Mode            Mode               `json:"mode"`
	Scenario        Scenario           `json:"scenario"`
	Players         map[string]*Player `json:"players"`
	Phase           Phase              `json:"phase"`
	CurrentRoundIdx int                `json:"currentRoundIdx"`
	StartedAt       *string            `json:"startedAt,omitempty"`
	NextSeq         int                `json:"nextSeq"`
}

func newRoom(code string, mode Mode, scenario Scenario) *Room {
	return &Room{
		Code:            code,
		Mode:            mode,
		Scenario:        scenario,
		Players:         make(map[string]*Player),
		Phase:           PhaseLobby,
		CurrentRoundIdx: -1,
		NextSeq:         1,
	}
}

// currentRound returns the active round, or nil when the index is -1 or
// out of range (e.g. a scenario with no rounds).
func (r *Room) currentRound() *Round {
	idx := r.CurrentRoundIdx
	if idx < 0 || idx >= len(r.Scenario.Rounds) {
		return nil
	}
	return &r.Scenario.Rounds[idx]
}

// FallbackScenario is the built-in single-round scenario used when no
// scenario is supplied, so a room is playable with zero configuration.
func FallbackScenario() Scenario {
	return Scenario{
		Title: "Fallback Scenario",
		Rounds: []Round{
			{
				ID:     "r1",
				Prompt: "Which log line is suspicious?",
				Choices: []Choice{
					{ID: "A", Text: "GET /intranet"},
					{ID: "B", Text: "POST /admin", Correct: true},
					{ID: "C", Text: "healthcheck"},
					{ID: "D", Text: "GET /docs"},
				},
				Points:  10,
				Seconds: 45,
			},
		},
	}
}

// PlayerView is the public projection of a player: no answer history, no
// internal fields.
type PlayerView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ChoiceView is a choice with the correctness flag redacted.
type ChoiceView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// RoundView is the redacted form of a round served to clients.
type RoundView struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"prompt"`
	Choices []ChoiceView `json:"choices"`
	Points  int          `json:"points"`
	Seconds int          `json:"seconds"`
}

// View is the public room state, safe to expose to any client including
// the host display.
type View struct {
	Code    string       `json:"code"`
	Mode    Mode         `json:"mode"`
	Title   string       `json:"title"`
	Phase   Phase        `json:"phase"`
	Idx     int          `json:"idx"`
	Players []PlayerView `json:"players"`
}

func (r *Room) view() View {
	return View{
		Code:    r.Code,
		Mode:    r.Mode,
		Title:   r.Scenario.Title,
		Phase:   r.Phase,
		Idx:     r.CurrentRoundIdx,
		Players: r.playerViews(),
	}
}

// playerViews projects the roster in join order so repeated reads of the
// same state render identically.
func (r *Room) playerViews() []PlayerView {
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p)
	}
	sortPlayersBySeq(players)

	views := make([]PlayerView, len(players))
	for i, p := range players {
		views[i] = PlayerView{ID: p.ID, Name: p.Name, Score: p.Score}
	}
	return views
}

func sortPlayersBySeq(players []*Player) {
	sort.Slice(players, func(i, j int) bool { return players[i].Seq < players[j].Seq })
}

func redact(round *Round) *RoundView {
	choices := make([]ChoiceView, len(round.Choices))
	for i, c := range round.Choices {
		choices[i] = ChoiceView{ID: c.ID, Text: c.Text}
	}
	return &RoundView{
		ID:      round.ID,
		Prompt:  round.Prompt,
		Choices: choices,
		Points:  round.Points,
		Seconds: round.Seconds,
	}
}
