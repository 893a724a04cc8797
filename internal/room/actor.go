package room

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Actor owns the mutable state of one room. Every operation takes the
// actor's mutex for its full duration, including the snapshot write, so
// callers observe each mutation as atomic. The room is loaded from its
// snapshot on first use and initialized with the fallback scenario when
// no snapshot exists.
type Actor struct {
	code        string
	defaultMode Mode
	store       Store

	mu   sync.Mutex
	room *Room
}

func NewActor(code string, defaultMode Mode, store Store) *Actor {
	return &Actor{code: code, defaultMode: defaultMode, store: store}
}

// ensureLocked loads or initializes the room. Idempotent; callers must
// hold a.mu.
func (a *Actor) ensureLocked(ctx context.Context) error {
	if a.room != nil {
		return nil
	}

	r, err := a.store.Load(ctx, a.code)
	if err == nil {
		a.room = r
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	r = newRoom(a.code, a.defaultMode, FallbackScenario())
	if err := a.store.Save(ctx, r); err != nil {
		return err
	}
	a.room = r
	return nil
}

func (a *Actor) persist(ctx context.Context) error {
	return a.store.Save(ctx, a.room)
}

// CreateResult is returned by Create.
type CreateResult struct {
	Mode  Mode
	Title string
}

// Create binds a fresh room to this code: empty roster, lobby phase, no
// active round. Mode falls back to the existing room's mode, then to
// "serious"; a nil scenario falls back to the built-in one.
func (a *Actor) Create(ctx context.Context, mode Mode, scenario *Scenario) (CreateResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLocked(ctx); err != nil {
		return CreateResult{}, err
	}

	chosenMode := mode
	if chosenMode == "" {
		chosenMode = a.room.Mode
	}
	if chosenMode == "" {
		chosenMode = ModeSerious
	}

	chosenScenario := FallbackScenario()
	if scenario != nil {
		chosenScenario = *scenario
	}

	a.room = newRoom(a.code, chosenMode, chosenScenario)
	if err := a.persist(ctx); err != nil {
		return CreateResult{}, err
	}
	return CreateResult{Mode: chosenMode, Title: chosenScenario.Title}, nil
}

// Join adds a player to the roster and returns the generated player id.
// Duplicate names are allowed; players are disambiguated by id.
func (a *Actor) Join(ctx context.Context, name string) (string, View, error) {
	if name == "" {
		return "", View{}, fmt.Errorf("%w: missing name", ErrInvalidInput)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLocked(ctx); err != nil {
		return "", View{}, err
	}

	id := uuid.NewString()
	a.room.Players[id] = &Player{
		ID:       id,
		Name:     name,
		Answered: make(map[string]string),
		Seq:      a.room.NextSeq,
	}
	a.room.NextSeq++

	if err := a.persist(ctx); err != nil {
		return "", View{}, err
	}
	return id, a.room.view(), nil
}

// Start moves the room from lobby into its first round.
func (a *Actor) Start(ctx context.Context) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLocked(ctx); err != nil {
		return View{}, err
	}
	if a.room.Phase != PhaseLobby {
		return View{}, fmt.Errorf("%w: already started", ErrInvalidPhase)
	}

	a.room.Phase = PhaseRound
	a.room.CurrentRoundIdx = 0
	startedAt := time.Now().UTC().Format(time.RFC3339Nano)
	a.room.StartedAt = &startedAt

	if err := a.persist(ctx); err != nil {
		return View{}, err
	}
	return a.room.view(), nil
}

// NextResult reports the outcome of Next: the terminal phase when the
// last round completed, or the new round index otherwise.
type NextResult struct {
	Phase Phase
	Idx   int
}

// Next advances past the current round. On the last round the phase moves
// to results and the index stays put; the index never decreases and the
// room never returns to the lobby.
func (a *Actor) Next(ctx context.Context) (NextResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLocked(ctx); err != nil {
		return NextResult{}, err
	}
	if a.room.Phase != PhaseRound {
		return NextResult{}, fmt.Errorf("%w: not in round", ErrInvalidPhase)
	}

	if a.room.CurrentRoundIdx >= len(a.room.Scenario.Rounds)-1 {
		a.room.Phase = PhaseResults
	} else {
		a.room.CurrentRoundIdx++
	}

	if err := a.persist(ctx); err != nil {
		return NextResult{}, err
	}
	return NextResult{Phase: a.room.Phase, Idx: a.room.CurrentRoundIdx}, nil
}

// CurrentState is the answer-time view of the room: the phase, the round
// index, and the active round with correctness flags stripped. Round is
// nil when no round is active.
type CurrentState struct {
	Phase Phase
	Idx   int
	Round *RoundView
}

// Current is valid in every phase.
func (a *Actor) Current(ctx context.Context) (CurrentState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLocked(ctx); err != nil {
		return CurrentState{}, err
	}

	state := CurrentState{Phase: a.room.Phase, Idx: a.room.CurrentRoundIdx}
	if r := a.room.currentRound(); r != nil {
		state.Round = redact(r)
	}
	return state, nil
}

// AnswerResult reports a submission outcome. Already is set when the
// player had previously answered the active round; in that case the
// original answer and score are untouched.
type AnswerResult struct {
	Correct bool
	Already bool
	Score   int
}

// Answer records a player's choice for the active round. The first
// submission per round is the one that counts: repeats return the current
// score with Already set and mutate nothing. Choice ids are matched under
// NormalizeID so casing, whitespace, and stringified numbers all land on
// the authored id.
func (a *Actor) Answer(ctx context.Context, playerID, choiceID string) (AnswerResult, error) {
	if playerID == "" || choiceID == "" {
		return AnswerResult{}, fmt.Errorf("%w: missing playerId or choiceId", ErrInvalidInput)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLocked(ctx); err != nil {
		return AnswerResult{}, err
	}

	round := a.room.currentRound()
	if round == nil {
		return AnswerResult{}, fmt.Errorf("%w: no active round", ErrInvalidPhase)
	}

	player, ok := a.room.Players[playerID]
	if !ok {
		return AnswerResult{}, fmt.Errorf("%w: unknown player", ErrNotFound)
	}

	if _, answered := player.Answered[round.ID]; answered {
		return AnswerResult{Already: true, Score: player.Score}, nil
	}

	normalized := NormalizeID(choiceID)
	correct := false
	for _, c := range round.Choices {
		if NormalizeID(c.ID) == normalized {
			correct = bool(c.Correct)
			break
		}
	}

	player.Answered[round.ID] = normalized
	if correct {
		player.Score += round.Points
	}

	if err := a.persist(ctx); err != nil {
		return AnswerResult{}, err
	}
	return AnswerResult{Correct: correct, Score: player.Score}, nil
}

// PublicState returns the room view served to any client.
func (a *Actor) PublicState(ctx context.Context) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLocked(ctx); err != nil {
		return View{}, err
	}
	return a.room.view(), nil
}

// Scoreboard returns all players sorted by score descending. Ties break
// by join order, so the ordering is deterministic across reads.
func (a *Actor) Scoreboard(ctx context.Context) ([]PlayerView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLocked(ctx); err != nil {
		return nil, err
	}

	players := make([]*Player, 0, len(a.room.Players))
	for _, p := range a.room.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].Seq < players[j].Seq
	})

	views := make([]PlayerView, len(players))
	for i, p := range players {
		views[i] = PlayerView{ID: p.ID, Name: p.Name, Score: p.Score}
	}
	return views, nil
}
