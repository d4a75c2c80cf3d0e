package game

import "math"

// Scanner picks targets.
type Scanner struct {
	Spec ScannerSpec
}

// Scan returns the nearest alive candidate within the detection radius of
// self, ties broken by lowest ID, or nil. It has no side effects, so equal
// inputs always give the same target.
func (sc Scanner) Scan(self *Drone, candidates []*Drone) *Drone {
	var best *Drone
	bestDist := math.Inf(1)
	for _, c := range candidates {
		if c == nil || !c.Alive || c == self {
			continue
		}
		d := self.Position.DistanceTo(c.Position)
		if d > sc.Spec.DetectionRadius {
			continue
		}
		if d < bestDist || (d == bestDist && (best == nil || c.ID < best.ID)) {
			best = c
			bestDist = d
		}
	}
	return best
}

// Steering turns the hull toward a bearing at a bounded rate.
type Steering struct {
	Spec SteeringSpec
}

// Turn returns the new heading after dt seconds of turning toward bearing.
func (st Steering) Turn(heading, bearing, dt float64) float64 {
	return rotateToward(heading, bearing, st.Spec.TurnRate*dt)
}

// Thruster sets forward speed.
type Thruster struct {
	Spec ThrusterSpec
}

// Power returns the new forward speed after dt seconds.
//
//	target acquired, aligned     → accelerate to maxSpeed
//	target acquired, misaligned  → brake toward zero
//	no target                    → settle on the idle cruise speed
func (th Thruster) Power(speed, maxSpeed, dt float64, hasTarget, aligned bool) float64 {
	accel := th.Spec.Acceleration * dt
	brake := th.Spec.Acceleration * brakeMul * dt
	var goal float64
	switch {
	case hasTarget && aligned:
		goal = maxSpeed
	case hasTarget:
		goal = 0
	default:
		goal = maxSpeed * idleCruise
	}
	if speed < goal {
		speed = math.Min(speed+accel, goal)
	} else if speed > goal {
		speed = math.Max(speed-brake, goal)
	}
	if speed > maxSpeed {
		speed = maxSpeed
	}
	if speed < 0 {
		speed = 0
	}
	return speed
}

// Loadout is the resolved set of variants a drone is built from.
type Loadout struct {
	Weapon   WeaponSpec
	Gimbal   GimbalSpec
	Steering SteeringSpec
	Thruster ThrusterSpec
	Chassis  ChassisSpec
	Scanner  ScannerSpec

	// Sprite indices, kept for the render layer.
	WeaponIndex, SteeringIndex, ThrusterIndex, ChassisIndex int
}

// DefaultLoadout is the first member of every family.
func DefaultLoadout() Loadout {
	return Loadout{
		Weapon:   Weapons[0],
		Gimbal:   Gimbals[0],
		Steering: Steerings[0],
		Thruster: Thrusters[0],
		Chassis:  Chassis[0],
		Scanner:  Scanners[0],
	}
}
