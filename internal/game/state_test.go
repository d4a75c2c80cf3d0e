package game

import (
	"errors"
	"fmt"
	"testing"
)

func squadronRecord(id int, leader string, colour, drones int) SquadronRecord {
	rec := SquadronRecord{ID: id, Seed: fmt.Sprintf("s%d", id), Leader: leader, Colour: colour, Value: 100}
	for i := 0; i < drones; i++ {
		rec.Drones = append(rec.Drones, DroneRecord{Name: fmt.Sprintf("%s-%d", leader, i), Value: 25})
	}
	return rec
}

func testRoster(opponents int) StaticRoster {
	r := StaticRoster{Player: squadronRecord(1, "Ace", 0, 3)}
	for i := 0; i < opponents; i++ {
		r.Opponents = append(r.Opponents, squadronRecord(10+i, fmt.Sprintf("Foe%d", i), 2, 2))
	}
	return r
}

func destroy(sq *Squadron) {
	for _, d := range sq.Drones {
		d.ApplyDamage(1e9, nil)
	}
}

func startedGame(t *testing.T, opponents int, opts ...Option) *Game {
	t.Helper()
	g := NewGame(testRoster(opponents), opts...)
	if err := g.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return g
}

func TestGame_StartBuildsBothSquadrons(t *testing.T) {
	g := startedGame(t, 2)
	if g.State() != StatePlaying {
		t.Fatalf("expected playing, got %s", g.State())
	}
	p := g.Battle().Squadron(SidePlayer)
	o := g.Battle().Squadron(SideOpponent)
	if len(p.Drones) != 3 || len(o.Drones) != 2 {
		t.Fatalf("expected 3v2 drones, got %dv%d", len(p.Drones), len(o.Drones))
	}
	for i, d := range p.Drones {
		if d.ID != i {
			t.Fatalf("expected player drone IDs from 0, got %d at %d", d.ID, i)
		}
	}
	if o.Drones[0].ID != 4 || o.Drones[1].ID != 5 {
		t.Fatalf("expected opponent drone IDs 4,5, got %d,%d", o.Drones[0].ID, o.Drones[1].ID)
	}
	if p.Colour == o.Colour {
		t.Fatalf("expected distinct squadron colours, both %s", p.Colour)
	}
	if o.Name != "Squadron Foe0" {
		t.Fatalf("expected opponent from queue rank 0, got %s", o.Name)
	}
	if !g.Log().HasEntry("state", "change", "stopped -> playing") {
		t.Fatal("expected state change logged")
	}
}

func TestGame_InvalidTransitions(t *testing.T) {
	g := NewGame(testRoster(1))
	if err := g.Continue(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected continue from stopped to fail, got %v", err)
	}
	if err := g.Stop(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected stop from stopped to fail, got %v", err)
	}
	if err := g.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := g.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected start from playing to fail, got %v", err)
	}
	if err := g.Continue(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected continue from playing to fail, got %v", err)
	}
}

func TestGame_GameOverAtTickN(t *testing.T) {
	g := startedGame(t, 2)
	const n = 5
	for i := 1; i < n; i++ {
		g.Tick(0.1)
		if g.State() != StatePlaying {
			t.Fatalf("expected playing at tick %d, got %s", i, g.State())
		}
	}
	destroy(g.Battle().Squadron(SideOpponent))
	if g.State() != StatePlaying {
		t.Fatal("expected no transition between ticks")
	}
	g.Tick(0.1)
	if g.State() != StateGameOver || g.Result() != ResultWin {
		t.Fatalf("expected game-over win at tick %d, got %s/%s", n, g.State(), g.Result())
	}
	if g.LastOutcome().Ticks != n {
		t.Fatalf("expected outcome at tick %d, got %d", n, g.LastOutcome().Ticks)
	}
}

func TestGame_WinAdvancesRankAndKeepsScore(t *testing.T) {
	g := startedGame(t, 3, WithRankClearBonus(500))
	destroy(g.Battle().Squadron(SideOpponent))
	g.Tick(0.1)
	if g.Scores().PlayerOneScore() != 500 {
		t.Fatalf("expected rank clear bonus 500, got %d", g.Scores().PlayerOneScore())
	}
	title, sub := g.Banner()
	if title != "Squadron Ace Wins" || sub != "Level 1 Cleared" {
		t.Fatalf("unexpected banner %q / %q", title, sub)
	}
	if err := g.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if g.Rank() != 1 || g.State() != StatePlaying {
		t.Fatalf("expected playing at rank 1, got %s rank %d", g.State(), g.Rank())
	}
	if g.Scores().PlayerOneScore() != 500 {
		t.Fatalf("expected player score kept across ranks, got %d", g.Scores().PlayerOneScore())
	}
	if g.Battle().Squadron(SideOpponent).Name != "Squadron Foe1" {
		t.Fatalf("expected rank 1 opponent, got %s", g.Battle().Squadron(SideOpponent).Name)
	}
	if g.Battle().Ticks() != 0 {
		t.Fatal("expected a fresh battle after continue")
	}
}

func TestGame_LossResetsRankAndPlayerScore(t *testing.T) {
	g := startedGame(t, 3)
	destroy(g.Battle().Squadron(SideOpponent))
	g.Tick(0.1)
	if err := g.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	destroy(g.Battle().Squadron(SidePlayer))
	g.Tick(0.1)
	if g.Result() != ResultLoss {
		t.Fatalf("expected loss, got %s", g.Result())
	}
	title, sub := g.Banner()
	if title != "Squadron Foe1 Wins" || sub != "Game Over" {
		t.Fatalf("unexpected banner %q / %q", title, sub)
	}
	if err := g.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if g.Rank() != 0 {
		t.Fatalf("expected rank reset to 0, got %d", g.Rank())
	}
	if g.Scores().PlayerOneScore() != 0 {
		t.Fatalf("expected player score reset, got %d", g.Scores().PlayerOneScore())
	}
}

func TestGame_ScoreAfterLossStartsFromZero(t *testing.T) {
	g := startedGame(t, 3)
	destroy(g.Battle().Squadron(SideOpponent))
	g.Tick(0.1)
	if err := g.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	destroy(g.Battle().Squadron(SidePlayer))
	g.Tick(0.1)
	if err := g.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}

	destroy(g.Battle().Squadron(SideOpponent))
	g.Tick(0.1)
	if g.Result() != ResultWin || g.Rank() != 0 {
		t.Fatalf("expected a rank 0 win, got %s at rank %d", g.Result(), g.Rank())
	}
	if got := g.Scores().PlayerOneScore(); got != defaultRankClearBonus {
		t.Fatalf("expected score %d after a fresh run, got %d", defaultRankClearBonus, got)
	}
	if out := g.LastOutcome(); out == nil || out.PlayerScore != defaultRankClearBonus {
		t.Fatalf("expected outcome score %d, got %+v", defaultRankClearBonus, out)
	}
}

func TestGame_SimultaneousWipeIsDraw(t *testing.T) {
	g := startedGame(t, 3)
	destroy(g.Battle().Squadron(SideOpponent))
	g.Tick(0.1)
	if err := g.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	before := g.Scores().PlayerOneScore()

	destroy(g.Battle().Squadron(SidePlayer))
	destroy(g.Battle().Squadron(SideOpponent))
	g.Tick(0.1)
	if g.Result() != ResultDraw {
		t.Fatalf("expected draw, got %s", g.Result())
	}
	if g.Scores().PlayerOneScore() != before {
		t.Fatalf("expected no bonus on draw, score %d -> %d", before, g.Scores().PlayerOneScore())
	}
	if title, _ := g.Banner(); title != "Draw" {
		t.Fatalf("expected Draw banner, got %q", title)
	}
	if err := g.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if g.Rank() != 1 {
		t.Fatalf("expected rank unchanged at 1 after draw, got %d", g.Rank())
	}
}

func TestGame_QueueExhausted(t *testing.T) {
	var outcomes []RoundOutcome
	g := startedGame(t, 1, WithOutcomeHook(func(o RoundOutcome) { outcomes = append(outcomes, o) }))
	destroy(g.Battle().Squadron(SideOpponent))
	g.Tick(0.1)

	if len(outcomes) != 1 || !outcomes[0].Final {
		t.Fatalf("expected one final outcome, got %+v", outcomes)
	}
	if err := g.Continue(); !errors.Is(err, ErrQueueExhausted) {
		t.Fatalf("expected ErrQueueExhausted, got %v", err)
	}
	if !g.Completed() || g.State() != StateGameOver {
		t.Fatalf("expected completed campaign left in game-over, got %s completed=%v", g.State(), g.Completed())
	}
	if err := g.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if g.State() != StateStopped || g.Rank() != 0 || g.Scores().PlayerOneScore() != 0 {
		t.Fatal("expected stop to reset rank and scores")
	}
}

func TestGame_OutcomeDecidedOnceBattleKeepsTicking(t *testing.T) {
	calls := 0
	g := startedGame(t, 2, WithOutcomeHook(func(RoundOutcome) { calls++ }))
	destroy(g.Battle().Squadron(SideOpponent))
	g.Tick(0.1)
	for i := 0; i < 10; i++ {
		g.Tick(0.1)
	}
	if calls != 1 {
		t.Fatalf("expected outcome hook called once, got %d", calls)
	}
	if g.Battle().Ticks() != 11 {
		t.Fatalf("expected battle to keep stepping in game-over, got %d ticks", g.Battle().Ticks())
	}
	if g.Log().CountCategory("round", "outcome") != 1 {
		t.Fatal("expected a single round/outcome entry")
	}
}

func TestGame_EmptySquadronDecidedOnFirstTick(t *testing.T) {
	r := testRoster(1)
	r.Opponents[0].Drones = nil
	g := NewGame(r)
	if err := g.Start(); err != nil {
		t.Fatalf("expected empty squadron to start, got %v", err)
	}
	g.Tick(0.1)
	if g.State() != StateGameOver || g.Result() != ResultWin {
		t.Fatalf("expected win on the first tick, got %s/%s", g.State(), g.Result())
	}
}

func TestGame_ConstructionErrorLeavesGameStopped(t *testing.T) {
	r := testRoster(1)
	r.Opponents[0].Drones[1].Scanner = 99
	g := NewGame(r)
	err := g.Start()
	var ce *ConstructionError
	if !errors.As(err, &ce) || !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected construction error, got %v", err)
	}
	if ce.Drone != 1 || ce.Field != "scanner" {
		t.Fatalf("expected drone 1 scanner named, got drone %d field %s", ce.Drone, ce.Field)
	}
	if g.State() != StateStopped || g.Battle() != nil {
		t.Fatal("expected the game left stopped with no battle")
	}
}

func TestGame_OpponentColourValidated(t *testing.T) {
	r := testRoster(1)
	r.Opponents[0].Colour = 42
	g := NewGame(r)
	err := g.Start()
	var ce *ConstructionError
	if !errors.As(err, &ce) || !errors.Is(err, ErrInvalidColour) {
		t.Fatalf("expected invalid colour error, got %v", err)
	}
	if ce.Field != "colour" || ce.Index != 42 {
		t.Fatalf("expected colour 42 named, got %s %d", ce.Field, ce.Index)
	}
	if g.State() != StateStopped {
		t.Fatalf("expected stopped, got %s", g.State())
	}
}

func TestGame_EmptyQueueCannotStart(t *testing.T) {
	g := NewGame(testRoster(0))
	if err := g.Start(); !errors.Is(err, ErrQueueExhausted) {
		t.Fatalf("expected ErrQueueExhausted, got %v", err)
	}
}

func TestGame_SnapshotCopiesFrame(t *testing.T) {
	g := NewGame(testRoster(1))
	if s := g.Snapshot(); s.State != StateStopped || len(s.Drones) != 0 {
		t.Fatalf("expected empty stopped snapshot, got %+v", s)
	}
	if err := g.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s := g.Snapshot()
	if len(s.Squadrons) != 2 || len(s.Drones) != 5 {
		t.Fatalf("expected 2 squadrons and 5 drones, got %d/%d", len(s.Squadrons), len(s.Drones))
	}
	d := s.Drones[0]
	if d.Sprite != "c1_w1_e1" || d.TargetID != -1 || d.Health != d.MaxHealth {
		t.Fatalf("unexpected first drone view %+v", d)
	}
	if s.Squadrons[0].Hex != Palette[0].Hex {
		t.Fatalf("expected player hex %s, got %s", Palette[0].Hex, s.Squadrons[0].Hex)
	}
	s.Drones[0].X = -1
	if g.Battle().Squadron(SidePlayer).Drones[0].Position.X == -1 {
		t.Fatal("expected snapshot detached from the simulation")
	}
}

func TestOpponentColour_NeverMatchesPlayer(t *testing.T) {
	for p := range Palette {
		for rank := 0; rank < 20; rank++ {
			if c := opponentColour(p, rank); c == p || c < 0 || c >= len(Palette) {
				t.Fatalf("player %d rank %d: got opponent colour %d", p, rank, c)
			}
		}
	}
}
