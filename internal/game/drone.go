package game

import (
	"fmt"
	"math"
)

// Side distinguishes the two squadrons of a battle.
type Side int

const (
	SidePlayer   Side = iota // local squadron, deployed on the left
	SideOpponent             // queued opponent, deployed on the right
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return "unknown"
	}
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// Drone is one combat unit.
type Drone struct {
	Particle
	SquadronID int
	Side       Side
	Colour     string
	Name       string
	Value      float64

	Weapon   Weapon
	Scanner  Scanner
	Steering Steering
	Thruster Thruster
	Chassis  ChassisSpec
	Health   Health

	Speed  float64 // current forward speed, px/s
	Target *Drone  // last scan result; nil when nothing in range

	// Combat record.
	DamageDealt float64
	Kills       int
	Killed      []int // IDs of drones this one destroyed
	ShotsFired  int
	Hits        int

	sprite string
}

// NewDrone builds a drone from a resolved loadout, alive and at rest.
func NewDrone(id int, side Side, squadronID int, x, y, angle float64, lo Loadout) *Drone {
	return &Drone{
		Particle: Particle{
			ID:       id,
			Position: Vector{X: x, Y: y},
			Angle:    normalizeAngle(angle),
			Radius:   droneRadius,
			Alive:    true,
		},
		SquadronID: squadronID,
		Side:       side,
		Weapon:     NewWeapon(lo.Weapon, lo.Gimbal),
		Scanner:    Scanner{Spec: lo.Scanner},
		Steering:   Steering{Spec: lo.Steering},
		Thruster:   Thruster{Spec: lo.Thruster},
		Chassis:    lo.Chassis,
		Health:     NewHealth(lo.Chassis.Health),
		sprite:     fmt.Sprintf("c%d_w%d_e%d", lo.ChassisIndex+1, lo.SteeringIndex+1, lo.ThrusterIndex+1),
	}
}

// Label is the short log label, e.g. "P0" or "O6".
func (d *Drone) Label() string {
	if d.Side == SidePlayer {
		return fmt.Sprintf("P%d", d.ID)
	}
	return fmt.Sprintf("O%d", d.ID)
}

// SpriteKey identifies the drone artwork for the render layer.
func (d *Drone) SpriteKey() string { return d.sprite }

// Update runs one tick: scan, steer, thrust, move, fire. opposing may be nil.
// A spawned bullet is returned for the particle manager; the drone keeps no
// reference to it.
func (d *Drone) Update(dt float64, opposing *Squadron, arena Arena) *Bullet {
	if !d.Alive {
		return nil
	}

	// 1. SCAN
	var candidates []*Drone
	if opposing != nil {
		candidates = opposing.Drones
	}
	d.Target = d.Scanner.Scan(d, candidates)

	// 2. STEER
	aligned := false
	if d.Target != nil {
		bearing := HeadingTo(d.Position.X, d.Position.Y, d.Target.Position.X, d.Target.Position.Y)
		d.Angle = d.Steering.Turn(d.Angle, bearing, dt)
		aligned = math.Abs(normalizeAngle(bearing-d.Angle)) <= alignTolerance
	} else if !arena.InPatrolZone(d.Position) {
		c := arena.Centre()
		bearing := HeadingTo(d.Position.X, d.Position.Y, c.X, c.Y)
		d.Angle = d.Steering.Turn(d.Angle, bearing, dt)
	}

	// 3. THRUST
	d.Speed = d.Thruster.Power(d.Speed, d.Chassis.MaxSpeed, dt, d.Target != nil, aligned)
	d.Velocity = VectorFromAngle(d.Angle, d.Speed)

	// 4. MOVE
	d.Move(dt)

	// 5. FIRE
	d.Weapon.Update(dt)
	if d.Target == nil {
		return nil
	}
	if d.Position.DistanceTo(d.Target.Position) > d.Weapon.Range() {
		return nil
	}
	b := d.Weapon.Fire(d)
	if b != nil {
		d.ShotsFired++
	}
	return b
}

// ApplyDamage takes a hit from attacker (which may be nil). It returns the
// health actually removed and whether this hit destroyed the drone. The
// killing hit marks the drone dead and credits the attacker exactly once.
func (d *Drone) ApplyDamage(amount float64, attacker *Drone) (float64, bool) {
	if !d.Alive {
		return 0, false
	}
	dealt := d.Health.Damage(amount)
	if attacker != nil {
		attacker.DamageDealt += dealt
	}
	if !d.Health.IsDead() {
		return dealt, false
	}
	d.Alive = false
	d.Velocity = Vector{}
	d.Speed = 0
	if attacker != nil {
		attacker.recordKill(d.ID)
	}
	return dealt, true
}

func (d *Drone) recordKill(victimID int) {
	d.Kills++
	d.Killed = append(d.Killed, victimID)
}

// Accuracy returns hits per shot fired.
func (d *Drone) Accuracy() float64 {
	if d.ShotsFired == 0 {
		return 0
	}
	return float64(d.Hits) / float64(d.ShotsFired)
}
