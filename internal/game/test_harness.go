package game

// TestBattle is a headless battle harness used by tests. It places drones
// with explicit loadouts and positions instead of going through the roster.
type TestBattle struct {
	Arena  Arena
	DT     float64
	Battle *Battle
	SimLog *SimLog

	players   []*Drone
	opponents []*Drone
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // arena, dt, verbose: applied first
	simOptDrone                      // add drones: applied after the arena is fixed
)

// SimOption is a builder function applied to a TestBattle during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestBattle)
}

// WithArenaSize sets the playfield dimensions.
func WithArenaSize(w, h float64) SimOption {
	return SimOption{simOptInfra, func(tb *TestBattle) {
		tb.Arena = Arena{Width: w, Height: h}
	}}
}

// WithTickDelta sets the seconds advanced per tick.
func WithTickDelta(dt float64) SimOption {
	return SimOption{simOptInfra, func(tb *TestBattle) {
		tb.DT = dt
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(tb *TestBattle) {
		tb.SimLog = NewSimLog(v)
	}}
}

// WithPlayerDrone adds a player drone at (x,y) facing angle.
func WithPlayerDrone(id int, x, y, angle float64, lo Loadout) SimOption {
	return SimOption{simOptDrone, func(tb *TestBattle) {
		tb.players = append(tb.players, NewDrone(id, SidePlayer, playerSquadronID, x, y, angle, lo))
	}}
}

// WithOpponentDrone adds an opponent drone at (x,y) facing angle.
func WithOpponentDrone(id int, x, y, angle float64, lo Loadout) SimOption {
	return SimOption{simOptDrone, func(tb *TestBattle) {
		tb.opponents = append(tb.opponents, NewDrone(id, SideOpponent, opponentSquadronID, x, y, angle, lo))
	}}
}

// NewTestBattle constructs a TestBattle from the given options in two
// ordered passes: infrastructure, then drones.
func NewTestBattle(opts ...SimOption) *TestBattle {
	tb := &TestBattle{
		Arena:  DefaultArena(),
		DT:     0.1,
		SimLog: NewSimLog(false),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(tb)
		}
	}
	for _, o := range opts {
		if o.kind == simOptDrone {
			o.fn(tb)
		}
	}
	player := NewSquadron(playerSquadronID, SidePlayer, "Squadron Test-P", Palette[0].Name, tb.players)
	opponent := NewSquadron(opponentSquadronID, SideOpponent, "Squadron Test-O", Palette[1].Name, tb.opponents)
	tb.Battle = NewBattle(tb.Arena, player, opponent, nil, tb.SimLog)
	return tb
}

// Drone finds a drone by ID, alive or fallen.
func (tb *TestBattle) Drone(id int) *Drone {
	return tb.Battle.Drones.Lookup(id)
}

// CurrentTick returns the number of ticks run.
func (tb *TestBattle) CurrentTick() int { return tb.Battle.Ticks() }

// RunTicks advances the battle n ticks.
func (tb *TestBattle) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tb.Battle.Tick(tb.DT)
	}
}

// RunUntil advances the battle up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (tb *TestBattle) RunUntil(predicate func(*TestBattle) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tb.Battle.Tick(tb.DT)
		if predicate(tb) {
			return tb.Battle.Ticks()
		}
	}
	return -1
}
