package game

// DroneManager owns stepping and removal for the drones of both squadrons
// and indexes every drone of the round by ID.
type DroneManager struct {
	squadrons [2]*Squadron
	byID      map[int]*Drone
}

// NewDroneManager indexes the drones of both squadrons. Either may be nil.
func NewDroneManager(player, opponent *Squadron) *DroneManager {
	dm := &DroneManager{
		squadrons: [2]*Squadron{player, opponent},
		byID:      make(map[int]*Drone),
	}
	for _, sq := range dm.squadrons {
		if sq == nil {
			continue
		}
		for _, d := range sq.Members() {
			dm.byID[d.ID] = d
		}
	}
	return dm
}

// Squadron returns the squadron fighting on side.
func (dm *DroneManager) Squadron(side Side) *Squadron {
	return dm.squadrons[side]
}

// Lookup finds any drone of the round by ID, fallen or not.
func (dm *DroneManager) Lookup(id int) *Drone {
	return dm.byID[id]
}

// Update advances every living drone, player side first, each squadron in ID
// order. Rounds fired during the tick are returned in spawn order.
func (dm *DroneManager) Update(dt float64, arena Arena) []*Bullet {
	var spawned []*Bullet
	for side, sq := range dm.squadrons {
		if sq == nil {
			continue
		}
		opposing := dm.squadrons[Side(side).Other()]
		for _, d := range sq.Drones {
			if b := d.Update(dt, opposing, arena); b != nil {
				spawned = append(spawned, b)
			}
		}
	}
	return spawned
}

// Sweep moves destroyed drones out of their squadrons and returns them.
func (dm *DroneManager) Sweep() []*Drone {
	var removed []*Drone
	for _, sq := range dm.squadrons {
		if sq == nil {
			continue
		}
		removed = append(removed, sq.sweep()...)
	}
	return removed
}

// Hit records one bullet striking one drone.
type Hit struct {
	Bullet   *Bullet
	Target   *Drone
	Attacker *Drone // nil if the owner is unknown to the drone manager
	Dealt    float64
	Killed   bool
}

// ParticleManager owns every bullet in flight.
type ParticleManager struct {
	bullets []*Bullet
	nextID  int
}

// NewParticleManager returns an empty manager.
func NewParticleManager() *ParticleManager {
	return &ParticleManager{}
}

// Add takes ownership of a round and gives it an ID.
func (pm *ParticleManager) Add(b *Bullet) {
	if b == nil {
		return
	}
	b.ID = pm.nextID
	pm.nextID++
	pm.bullets = append(pm.bullets, b)
}

// Bullets returns the rounds currently owned, including those marked dead
// but not yet swept.
func (pm *ParticleManager) Bullets() []*Bullet {
	return pm.bullets
}

// Len returns the number of owned rounds.
func (pm *ParticleManager) Len() int { return len(pm.bullets) }

// Update moves every round and expires those out of range or out of the arena.
func (pm *ParticleManager) Update(dt float64, arena Arena) {
	for _, b := range pm.bullets {
		b.Update(dt)
		if b.Alive && !arena.Contains(b.Position, bulletMargin) {
			b.Alive = false
		}
	}
}

// Collide tests every living round against the living drones of the
// squadron it does not belong to. The first drone in ID order that overlaps
// takes the damage and the round is spent.
func (pm *ParticleManager) Collide(dm *DroneManager) []Hit {
	var hits []Hit
	for _, b := range pm.bullets {
		if !b.Alive {
			continue
		}
		targets := dm.Squadron(b.Side.Other())
		if targets == nil {
			continue
		}
		for _, d := range targets.Drones {
			if !d.Alive || !b.Overlaps(&d.Particle) {
				continue
			}
			attacker := dm.Lookup(b.OwnerID)
			dealt, killed := d.ApplyDamage(b.Damage, attacker)
			if attacker != nil {
				attacker.Hits++
			}
			b.Alive = false
			hits = append(hits, Hit{Bullet: b, Target: d, Attacker: attacker, Dealt: dealt, Killed: killed})
			break
		}
	}
	return hits
}

// Sweep drops dead rounds and returns how many were removed.
func (pm *ParticleManager) Sweep() int {
	kept := pm.bullets[:0]
	for _, b := range pm.bullets {
		if b.Alive {
			kept = append(kept, b)
		}
	}
	removed := len(pm.bullets) - len(kept)
	for i := len(kept); i < len(pm.bullets); i++ {
		pm.bullets[i] = nil
	}
	pm.bullets = kept
	return removed
}

// Clear drops every round.
func (pm *ParticleManager) Clear() {
	pm.bullets = nil
}
