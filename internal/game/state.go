package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when a state change is not allowed
	// from the current state.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrQueueExhausted is returned by Continue after the last opponent in
	// the queue has been beaten, and by Start when the queue is empty.
	ErrQueueExhausted = errors.New("opponent queue exhausted")
)

// State is the match state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

const (
	playerSquadronID   = 0
	opponentSquadronID = 1

	defaultRankClearBonus = 1000
)

// Roster supplies squadron stat records. It is only consulted when a round
// is set up.
type Roster interface {
	PlayerSquadron() (SquadronRecord, error)
	OpponentQueue() ([]QueueEntry, error)
	OpponentSquadron(entry QueueEntry) (SquadronRecord, error)
}

// StaticRoster is an in-memory Roster.
type StaticRoster struct {
	Player    SquadronRecord
	Opponents []SquadronRecord
}

func (r StaticRoster) PlayerSquadron() (SquadronRecord, error) { return r.Player, nil }

func (r StaticRoster) OpponentQueue() ([]QueueEntry, error) {
	q := make([]QueueEntry, len(r.Opponents))
	for i, o := range r.Opponents {
		q[i] = QueueEntry{ID: o.ID, Seed: o.Seed, Value: o.Value, Leader: o.Leader}
	}
	return q, nil
}

func (r StaticRoster) OpponentSquadron(entry QueueEntry) (SquadronRecord, error) {
	for _, o := range r.Opponents {
		if o.ID == entry.ID && o.Seed == entry.Seed {
			return o, nil
		}
	}
	return SquadronRecord{}, fmt.Errorf("opponent %d_%s: not in roster", entry.ID, entry.Seed)
}

// RoundOutcome is reported once per decided round.
type RoundOutcome struct {
	Result           Result
	Rank             int
	Final            bool // the last opponent in the queue was beaten
	PlayerScore      int
	OpponentScore    int
	PlayerKills      int
	OpponentKills    int
	Ticks            int
	Elapsed          float64
	PlayerSquadron   string
	OpponentSquadron string
}

// OutcomeHook receives every decided round.
type OutcomeHook func(RoundOutcome)

// Option configures a Game.
type Option func(*Game)

// WithArena sets the playfield size.
func WithArena(a Arena) Option {
	return func(g *Game) { g.arena = a }
}

// WithOutcomeHook subscribes fn to round outcomes.
func WithOutcomeHook(fn OutcomeHook) Option {
	return func(g *Game) { g.hook = fn }
}

// WithRankClearBonus sets the points awarded for winning a round.
func WithRankClearBonus(points int) Option {
	return func(g *Game) { g.rankClearBonus = points }
}

// WithVerboseLog records per-tick positions in every round's log.
func WithVerboseLog(v bool) Option {
	return func(g *Game) { g.verbose = v }
}

// Game is the match state machine. It owns the current Battle and carries
// the rank and scores between rounds.
type Game struct {
	roster         Roster
	arena          Arena
	factory        SquadronFactory
	hook           OutcomeHook
	rankClearBonus int
	verbose        bool

	state     State
	rank      int
	queueLen  int
	result    Result
	completed bool
	scores    *ScoreManager
	battle    *Battle
	last      *RoundOutcome
}

// NewGame returns a stopped game.
func NewGame(roster Roster, opts ...Option) *Game {
	g := &Game{
		roster:         roster,
		arena:          DefaultArena(),
		rankClearBonus: defaultRankClearBonus,
		scores:         NewScoreManager(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) State() State { return g.state }
func (g *Game) Rank() int { return g.rank }
func (g *Game) Result() Result { return g.result }
func (g *Game) Completed() bool { return g.completed }
func (g *Game) Battle() *Battle { return g.battle }
func (g *Game) Scores() *ScoreManager { return g.scores }
func (g *Game) Arena() Arena { return g.arena }
func (g *Game) QueueLength() int { return g.queueLen }
func (g *Game) LastOutcome() *RoundOutcome { return g.last }

// Log returns the current round's event log, or nil when stopped.
func (g *Game) Log() *SimLog {
	if g.battle == nil {
		return nil
	}
	return g.battle.Log
}

// Start builds the first round at the current rank and begins playing.
func (g *Game) Start() error {
	if g.state != StateStopped {
		return fmt.Errorf("start from %s: %w", g.state, ErrInvalidTransition)
	}
	if err := g.setupRound(g.rank); err != nil {
		return err
	}
	g.completed = false
	g.enter(StatePlaying)
	return nil
}

// Continue moves on from a decided round: the next rank after a win, rank 0
// after a loss, the same rank after a draw.
func (g *Game) Continue() error {
	if g.state != StateGameOver {
		return fmt.Errorf("continue from %s: %w", g.state, ErrInvalidTransition)
	}
	prev := g.result
	next := g.rank
	switch prev {
	case ResultWin:
		if g.rank+1 >= g.queueLen {
			g.completed = true
			return ErrQueueExhausted
		}
		next = g.rank + 1
	case ResultLoss:
		next = 0
	}
	if err := g.setupRound(next); err != nil {
		return err
	}
	if prev == ResultLoss {
		g.scores.ResetPlayerOne()
	}
	g.rank = next
	g.enter(StatePlaying)
	return nil
}

// Stop discards the round and resets rank and scores.
func (g *Game) Stop() error {
	if g.state == StateStopped {
		return fmt.Errorf("stop from %s: %w", g.state, ErrInvalidTransition)
	}
	g.battle = nil
	g.scores.Reset()
	g.rank = 0
	g.result = ResultNone
	g.completed = false
	g.state = StateStopped
	return nil
}

// Tick advances the battle by dt. The round is decided at most once; after
// that the battle keeps stepping so bullets in flight play out.
func (g *Game) Tick(dt float64) {
	if g.state == StateStopped || g.battle == nil || dt <= 0 {
		return
	}
	g.battle.Tick(dt)
	if g.state != StatePlaying {
		return
	}
	r := g.battle.Result()
	if r == ResultNone {
		return
	}
	g.decide(r)
}

func (g *Game) decide(r Result) {
	g.result = r
	if r == ResultWin {
		g.scores.AddBonus(SidePlayer, g.rankClearBonus)
	}
	g.enter(StateGameOver)

	b := g.battle
	out := RoundOutcome{
		Result:           r,
		Rank:             g.rank,
		Final:            r == ResultWin && g.rank+1 >= g.queueLen,
		PlayerScore:      g.scores.PlayerOneScore(),
		OpponentScore:    g.scores.PlayerTwoScore(),
		PlayerKills:      g.scores.Side(SidePlayer).Kills,
		OpponentKills:    g.scores.Side(SideOpponent).Kills,
		Ticks:            b.Ticks(),
		Elapsed:          b.Elapsed(),
		PlayerSquadron:   b.Squadron(SidePlayer).Name,
		OpponentSquadron: b.Squadron(SideOpponent).Name,
	}
	b.Log.Add(b.Ticks(), "--", "--", "round", "outcome",
		fmt.Sprintf("%s rank=%d score=%d-%d", r, g.rank, out.PlayerScore, out.OpponentScore), float64(g.rank))
	g.last = &out
	if g.hook != nil {
		g.hook(out)
	}
}

func (g *Game) enter(s State) {
	prev := g.state
	g.state = s
	if g.battle != nil {
		g.battle.Log.Add(g.battle.Ticks(), "--", "--", "state", "change",
			fmt.Sprintf("%s -> %s", prev, s), float64(g.rank))
	}
}

// setupRound loads records and builds a fresh battle for rank. On error the
// game is left untouched.
func (g *Game) setupRound(rank int) error {
	if g.roster == nil {
		return errors.New("setup round: no roster")
	}
	queue, err := g.roster.OpponentQueue()
	if err != nil {
		return fmt.Errorf("setup round: %w", err)
	}
	if rank >= len(queue) {
		return fmt.Errorf("setup round %d of %d: %w", rank, len(queue), ErrQueueExhausted)
	}
	playerRec, err := g.roster.PlayerSquadron()
	if err != nil {
		return fmt.Errorf("setup round: %w", err)
	}
	oppRec, err := g.roster.OpponentSquadron(queue[rank])
	if err != nil {
		return fmt.Errorf("setup round: %w", err)
	}

	player, err := g.factory.Make(playerSquadronID, playerRec, SidePlayer, playerRec.Colour, 0, g.arena)
	if err != nil {
		return fmt.Errorf("build player squadron: %w", err)
	}
	if err := checkColour(oppRec.Colour); err != nil {
		return fmt.Errorf("build opponent squadron: %w", err)
	}
	oppColour := opponentColour(playerRec.Colour, rank)
	opponent, err := g.factory.Make(opponentSquadronID, oppRec, SideOpponent, oppColour, len(playerRec.Drones)+1, g.arena)
	if err != nil {
		return fmt.Errorf("build opponent squadron: %w", err)
	}

	g.scores.ResetPlayerTwo()
	g.queueLen = len(queue)
	g.result = ResultNone
	g.last = nil
	g.battle = NewBattle(g.arena, player, opponent, g.scores, NewSimLog(g.verbose))
	return nil
}

// Banner returns the game-over text: the winner and what happens next.
func (g *Game) Banner() (title, subtitle string) {
	if g.state != StateGameOver || g.battle == nil {
		return "", ""
	}
	switch g.result {
	case ResultWin:
		return g.battle.Squadron(SidePlayer).Name + " Wins", fmt.Sprintf("Level %d Cleared", g.rank+1)
	case ResultLoss:
		return g.battle.Squadron(SideOpponent).Name + " Wins", "Game Over"
	case ResultDraw:
		return "Draw", ""
	}
	return "", ""
}
