package game

import (
	"math"
	"testing"
)

func droneAt(id int, side Side, x, y float64) *Drone {
	return NewDrone(id, side, int(side), x, y, 0, DefaultLoadout())
}

// --- Scanner ---

func TestScanner_NearestInRange(t *testing.T) {
	self := droneAt(0, SidePlayer, 0, 0)
	near := droneAt(5, SideOpponent, 100, 0)
	far := droneAt(3, SideOpponent, 200, 0)
	out := droneAt(1, SideOpponent, 300, 0)
	sc := Scanner{Spec: ScannerSpec{DetectionRadius: 250}}

	if got := sc.Scan(self, []*Drone{far, out, near}); got != near {
		t.Fatalf("expected nearest drone 5, got %v", got)
	}
	near.Alive = false
	if got := sc.Scan(self, []*Drone{far, out, near}); got != far {
		t.Fatalf("expected dead drone skipped and drone 3 chosen, got %v", got)
	}
	if got := sc.Scan(self, []*Drone{out}); got != nil {
		t.Fatalf("expected no target beyond the detection radius, got drone %d", got.ID)
	}
}

func TestScanner_RadiusIsInclusive(t *testing.T) {
	self := droneAt(0, SidePlayer, 0, 0)
	edge := droneAt(1, SideOpponent, 250, 0)
	sc := Scanner{Spec: ScannerSpec{DetectionRadius: 250}}
	if got := sc.Scan(self, []*Drone{edge}); got != edge {
		t.Fatal("expected a candidate exactly at the detection radius to be acquired")
	}
}

func TestScanner_TieBreaksOnLowestID(t *testing.T) {
	self := droneAt(0, SidePlayer, 0, 0)
	a := droneAt(9, SideOpponent, 100, 0)
	b := droneAt(4, SideOpponent, -100, 0)
	c := droneAt(7, SideOpponent, 0, 100)
	sc := Scanner{Spec: ScannerSpec{DetectionRadius: 250}}

	for _, order := range [][]*Drone{{a, b, c}, {c, a, b}, {b, c, a}} {
		if got := sc.Scan(self, order); got != b {
			t.Fatalf("expected tie broken to drone 4 regardless of order, got %d", got.ID)
		}
	}
}

func TestScanner_TieAtInfiniteDistance(t *testing.T) {
	self := droneAt(0, SidePlayer, 0, 0)
	far := droneAt(5, SideOpponent, math.Inf(1), 0)
	farther := droneAt(3, SideOpponent, math.Inf(1), 0)
	sc := Scanner{Spec: ScannerSpec{DetectionRadius: math.Inf(1)}}

	got := sc.Scan(self, []*Drone{far, farther})
	if got != farther {
		t.Fatalf("expected drone 3 on an infinite tie, got %v", got)
	}
}

func TestScanner_Deterministic(t *testing.T) {
	self := droneAt(0, SidePlayer, 50, 50)
	cands := []*Drone{
		droneAt(1, SideOpponent, 120, 80),
		droneAt(2, SideOpponent, 60, 190),
		droneAt(3, SideOpponent, 10, 10),
	}
	sc := Scanner{Spec: Scanners[0]}
	first := sc.Scan(self, cands)
	for i := 0; i < 100; i++ {
		if got := sc.Scan(self, cands); got != first {
			t.Fatalf("scan %d: expected %d, got %d", i, first.ID, got.ID)
		}
	}
}

// --- Thruster ---

func TestThruster_Power(t *testing.T) {
	th := Thruster{Spec: ThrusterSpec{Acceleration: 100}}
	if got := th.Power(0, 120, 0.1, true, true); math.Abs(got-10) > eps {
		t.Fatalf("expected aligned acceleration to 10, got %.2f", got)
	}
	if got := th.Power(119, 120, 0.1, true, true); math.Abs(got-120) > eps {
		t.Fatalf("expected speed capped at max 120, got %.2f", got)
	}
	if got := th.Power(50, 120, 0.1, true, false); math.Abs(got-35) > eps {
		t.Fatalf("expected misaligned braking to 35, got %.2f", got)
	}
	if got := th.Power(5, 120, 0.1, true, false); math.Abs(got-0) > eps {
		t.Fatalf("expected braking to stop at 0, got %.2f", got)
	}
	if got := th.Power(100, 120, 1, false, false); math.Abs(got-48) > eps {
		t.Fatalf("expected cruise settle at 48, got %.2f", got)
	}
}

// --- Drone damage ---

func TestApplyDamage_MonotonicAndKillsOnce(t *testing.T) {
	attacker := droneAt(0, SidePlayer, 0, 0)
	victim := droneAt(7, SideOpponent, 100, 0)
	max := victim.Health.Max()

	prev := victim.Health.Current()
	for i := 0; i < 5; i++ {
		dealt, killed := victim.ApplyDamage(max/10, attacker)
		if killed {
			t.Fatalf("hit %d: expected no kill yet", i)
		}
		if victim.Health.Current() > prev || math.Abs(dealt-max/10) > eps {
			t.Fatalf("hit %d: expected health to drop by %.1f, got dealt=%.1f health=%.1f", i, max/10, dealt, victim.Health.Current())
		}
		prev = victim.Health.Current()
	}

	dealt, killed := victim.ApplyDamage(max, attacker)
	if !killed || victim.Alive {
		t.Fatal("expected the lethal hit to kill")
	}
	if math.Abs(dealt-max/2) > 1e-6 {
		t.Fatalf("expected only the remaining %.1f dealt, got %.1f", max/2, dealt)
	}

	dealt, killed = victim.ApplyDamage(10, attacker)
	if killed || dealt != 0 {
		t.Fatalf("expected damage to a dead drone to be a no-op, got dealt=%.1f killed=%v", dealt, killed)
	}
	if attacker.Kills != 1 || len(attacker.Killed) != 1 || attacker.Killed[0] != 7 {
		t.Fatalf("expected exactly one kill of drone 7 credited, got kills=%d killed=%v", attacker.Kills, attacker.Killed)
	}
	if math.Abs(attacker.DamageDealt-max) > 1e-6 {
		t.Fatalf("expected attacker damage dealt %.1f, got %.1f", max, attacker.DamageDealt)
	}
}

func TestApplyDamage_NilAttacker(t *testing.T) {
	victim := droneAt(1, SideOpponent, 0, 0)
	if _, killed := victim.ApplyDamage(1e6, nil); !killed {
		t.Fatal("expected a kill without an attacker to still destroy the drone")
	}
}

func TestDrone_SpriteKey(t *testing.T) {
	lo := DefaultLoadout()
	lo.ChassisIndex, lo.SteeringIndex, lo.ThrusterIndex = 2, 4, 1
	d := NewDrone(3, SidePlayer, 0, 0, 0, 0, lo)
	if d.SpriteKey() != "c3_w5_e2" {
		t.Fatalf("expected sprite key c3_w5_e2, got %s", d.SpriteKey())
	}
	if d.Label() != "P3" {
		t.Fatalf("expected label P3, got %s", d.Label())
	}
}

func TestDrone_PatrolsBackToCentre(t *testing.T) {
	arena := DefaultArena()
	// Outside the patrol margin, facing away from the centre.
	d := NewDrone(0, SidePlayer, 0, 20, 360, math.Pi, DefaultLoadout())
	before := math.Abs(normalizeAngle(0 - d.Angle))
	d.Update(0.1, nil, arena)
	after := math.Abs(normalizeAngle(0 - d.Angle))
	if after >= before {
		t.Fatalf("expected drone to turn toward the centre, bearing error %.3f -> %.3f", before, after)
	}
	if d.Target != nil {
		t.Fatal("expected no target with no opposing squadron")
	}
}

// --- Managers ---

func TestCollide_FirstDroneInIDOrderTakesSingleHit(t *testing.T) {
	shooter := droneAt(0, SidePlayer, 0, 0)
	a := droneAt(5, SideOpponent, 100, 0)
	b := droneAt(4, SideOpponent, 102, 0)
	dm := NewDroneManager(
		NewSquadron(0, SidePlayer, "P", "candy", []*Drone{shooter}),
		NewSquadron(1, SideOpponent, "O", "toxic", []*Drone{a, b}),
	)
	pm := NewParticleManager()
	bullet := NewBullet(shooter, PulseShot, 0)
	bullet.Position = Vector{X: 101, Y: 0}
	pm.Add(bullet)

	hits := pm.Collide(dm)
	if len(hits) != 1 {
		t.Fatalf("expected exactly one hit, got %d", len(hits))
	}
	if hits[0].Target != b {
		t.Fatalf("expected lowest-ID drone 4 hit, got %d", hits[0].Target.ID)
	}
	if a.Health.Current() != a.Health.Max() {
		t.Fatal("expected drone 5 untouched by a spent bullet")
	}
	if bullet.Alive {
		t.Fatal("expected bullet spent after its hit")
	}
	if shooter.Hits != 1 {
		t.Fatalf("expected shooter hits 1, got %d", shooter.Hits)
	}
}

func TestCollide_NoFriendlyFire(t *testing.T) {
	shooter := droneAt(0, SidePlayer, 0, 0)
	wingman := droneAt(1, SidePlayer, 50, 0)
	dm := NewDroneManager(NewSquadron(0, SidePlayer, "P", "candy", []*Drone{shooter, wingman}), nil)
	pm := NewParticleManager()
	bullet := NewBullet(shooter, PulseShot, 0)
	bullet.Position = wingman.Position
	pm.Add(bullet)

	if hits := pm.Collide(dm); len(hits) != 0 {
		t.Fatalf("expected no hits on own squadron, got %d", len(hits))
	}
	if !bullet.Alive {
		t.Fatal("expected bullet still in flight")
	}
}

func TestSweep_MovesDeadDronesOnce(t *testing.T) {
	d0 := droneAt(0, SidePlayer, 0, 0)
	d1 := droneAt(1, SidePlayer, 0, 40)
	sq := NewSquadron(0, SidePlayer, "P", "candy", []*Drone{d1, d0})
	dm := NewDroneManager(sq, nil)

	d1.ApplyDamage(1e6, nil)
	removed := dm.Sweep()
	if len(removed) != 1 || removed[0] != d1 {
		t.Fatalf("expected drone 1 swept, got %v", removed)
	}
	if len(sq.Drones) != 1 || len(sq.Fallen) != 1 {
		t.Fatalf("expected 1 alive and 1 fallen, got %d/%d", len(sq.Drones), len(sq.Fallen))
	}
	if again := dm.Sweep(); len(again) != 0 {
		t.Fatalf("expected second sweep to remove nothing, got %d", len(again))
	}
	if len(sq.Members()) != 2 || sq.Members()[0] != d0 {
		t.Fatal("expected members to list both drones in ID order")
	}
	if dm.Lookup(1) != d1 {
		t.Fatal("expected fallen drones to stay indexed by ID")
	}
}

func TestSquadron_AggregateHealth(t *testing.T) {
	d0 := droneAt(0, SideOpponent, 0, 0)
	d1 := droneAt(1, SideOpponent, 0, 40)
	sq := NewSquadron(1, SideOpponent, "O", "toxic", []*Drone{d0, d1})
	full := d0.Health.Max() + d1.Health.Max()
	if sq.Health() != full {
		t.Fatalf("expected health %.0f, got %.0f", full, sq.Health())
	}
	d0.ApplyDamage(10, nil)
	d1.ApplyDamage(1e6, nil)
	if want := d0.Health.Max() - 10; sq.Health() != want {
		t.Fatalf("expected dead members excluded, health %.0f, got %.0f", want, sq.Health())
	}
	var empty *Squadron
	if empty.Health() != 0 {
		t.Fatal("expected nil squadron to have zero health")
	}
}
