package game

// cooldownEpsilon absorbs float drift when dt does not divide the fire period.
const cooldownEpsilon = 1e-9

// Weapon is a gun mounted on a drone. It fires one round per cooldown period.
type Weapon struct {
	Spec     WeaponSpec
	Gimbal   GimbalSpec
	Cooldown float64 // seconds until the next round may be fired
}

// NewWeapon returns a loaded weapon, ready to fire.
func NewWeapon(spec WeaponSpec, gimbal GimbalSpec) Weapon {
	return Weapon{Spec: spec, Gimbal: gimbal}
}

// Period returns the seconds between shots.
func (w *Weapon) Period() float64 {
	if w.Spec.FireRate <= 0 {
		return 0
	}
	return 1 / w.Spec.FireRate
}

// Range returns the engagement distance.
func (w *Weapon) Range() float64 { return w.Spec.Range() }

// Ready reports whether the cooldown has elapsed.
func (w *Weapon) Ready() bool {
	return w.Cooldown <= cooldownEpsilon && w.Spec.FireRate > 0
}

// Update advances the cooldown by dt, never below zero.
func (w *Weapon) Update(dt float64) {
	if w.Cooldown <= 0 {
		return
	}
	w.Cooldown -= dt
	if w.Cooldown < 0 {
		w.Cooldown = 0
	}
}

// Fire spawns one round from the owner's position along the owner's heading
// plus the gimbal offset. Returns nil while cooling down.
func (w *Weapon) Fire(owner *Drone) *Bullet {
	if !w.Ready() {
		return nil
	}
	w.Cooldown = w.Period()
	angle := normalizeAngle(owner.Angle + w.Gimbal.Offset)
	return NewBullet(owner, w.Spec.Ammo, angle)
}

// Bullet is a single round in flight.
type Bullet struct {
	Particle
	OwnerID        int // lookup key into DroneManager, not an ownership link
	SquadronID     int
	Side           Side
	Ammo           AmmoSpec
	Speed          float64
	Damage         float64
	RemainingRange float64
}

// rangeEpsilon treats a remaining range this close to zero as exhausted.
const rangeEpsilon = 1e-9

// NewBullet creates a round at the owner's position travelling along angle.
func NewBullet(owner *Drone, ammo AmmoSpec, angle float64) *Bullet {
	return &Bullet{
		Particle: Particle{
			Position: owner.Position,
			Velocity: VectorFromAngle(angle, ammo.Speed),
			Angle:    angle,
			Radius:   ammo.Radius,
			Alive:    true,
		},
		OwnerID:        owner.ID,
		SquadronID:     owner.SquadronID,
		Side:           owner.Side,
		Ammo:           ammo,
		Speed:          ammo.Speed,
		Damage:         ammo.Damage,
		RemainingRange: ammo.Range(),
	}
}

// Update moves the round in a straight line and burns its range. The round
// dies the tick its range is used up.
func (b *Bullet) Update(dt float64) {
	if !b.Alive {
		return
	}
	b.Move(dt)
	b.RemainingRange -= b.Speed * dt
	if b.RemainingRange <= rangeEpsilon {
		b.RemainingRange = 0
		b.Alive = false
	}
}
