package game

import (
	"fmt"
	"math"
)

// Battle is the simulation context of one round: both squadrons, every
// bullet in flight, the score counters and the event log. Nothing outside
// the battle mutates its collections.
type Battle struct {
	Arena     Arena
	Drones    *DroneManager
	Particles *ParticleManager
	Scores    *ScoreManager
	Log       *SimLog

	tick    int
	elapsed float64
}

// NewBattle wires a round. scores may be shared across rounds; nil gets a
// fresh manager. log may be nil.
func NewBattle(arena Arena, player, opponent *Squadron, scores *ScoreManager, log *SimLog) *Battle {
	if scores == nil {
		scores = NewScoreManager()
	}
	if log == nil {
		log = NewSimLog(false)
	}
	return &Battle{
		Arena:     arena,
		Drones:    NewDroneManager(player, opponent),
		Particles: NewParticleManager(),
		Scores:    scores,
		Log:       log,
	}
}

// Squadron returns the squadron on side.
func (b *Battle) Squadron(side Side) *Squadron { return b.Drones.Squadron(side) }

// Ticks returns how many ticks have run.
func (b *Battle) Ticks() int { return b.tick }

// Elapsed returns simulated seconds.
func (b *Battle) Elapsed() float64 { return b.elapsed }

// Tick advances the round by dt seconds in fixed order: drones, bullets,
// collisions, sweep. A non-positive dt is ignored.
func (b *Battle) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	b.tick++
	b.elapsed += dt
	tick := b.tick

	prevTargets := make(map[int]*Drone)
	for _, side := range []Side{SidePlayer, SideOpponent} {
		if sq := b.Squadron(side); sq != nil {
			for _, d := range sq.Drones {
				prevTargets[d.ID] = d.Target
			}
		}
	}

	// (a) DRONES: scan, steer, thrust, move, fire.
	for _, bullet := range b.Drones.Update(dt, b.Arena) {
		b.Particles.Add(bullet)
		if owner := b.Drones.Lookup(bullet.OwnerID); owner != nil {
			b.Log.Add(tick, owner.Label(), owner.Side.String(), "weapon", "fired",
				fmt.Sprintf("%s at %.0f°", bullet.Ammo.Name, bullet.Angle*180/math.Pi), bullet.Damage)
		}
	}
	b.logTargets(tick, prevTargets)

	// (b) BULLETS: move and burn range.
	b.Particles.Update(dt, b.Arena)

	// (c) COLLISIONS: damage, kills, score.
	for _, h := range b.Particles.Collide(b.Drones) {
		side := h.Bullet.Side
		b.Scores.RecordHit(side, h.Dealt)
		label := "--"
		if h.Attacker != nil {
			label = h.Attacker.Label()
		}
		b.Log.Add(tick, label, side.String(), "combat", "hit",
			fmt.Sprintf("%s hit %s for %.0f", h.Bullet.Ammo.Name, h.Target.Label(), h.Dealt), h.Dealt)
		if h.Killed {
			b.Scores.RecordKill(side, h.Target.Value)
			b.Log.Add(tick, label, side.String(), "combat", "kill",
				fmt.Sprintf("%s destroyed", h.Target.Label()), h.Target.Value)
		}
	}

	// (d) SWEEP: every dead entity leaves its collection once.
	b.Particles.Sweep()
	for _, d := range b.Drones.Sweep() {
		b.Log.Add(tick, d.Label(), d.Side.String(), "state", "destroyed",
			fmt.Sprintf("%s down (kills=%d)", d.Name, d.Kills), 0)
	}

	if b.Log.Verbose() {
		for _, side := range []Side{SidePlayer, SideOpponent} {
			sq := b.Squadron(side)
			if sq == nil {
				continue
			}
			for _, d := range sq.Drones {
				b.Log.AddVerbose(tick, d.Label(), side.String(), "move", "position",
					fmt.Sprintf("(%.1f,%.1f) speed=%.1f", d.Position.X, d.Position.Y, d.Speed), d.Speed)
			}
		}
	}
}

func (b *Battle) logTargets(tick int, prev map[int]*Drone) {
	for _, side := range []Side{SidePlayer, SideOpponent} {
		sq := b.Squadron(side)
		if sq == nil {
			continue
		}
		for _, d := range sq.Drones {
			before := prev[d.ID]
			switch {
			case d.Target != nil && d.Target != before:
				b.Log.Add(tick, d.Label(), side.String(), "scanner", "target_acquired",
					fmt.Sprintf("locked %s at %.0fpx", d.Target.Label(), d.Position.DistanceTo(d.Target.Position)), 0)
			case d.Target == nil && before != nil:
				b.Log.Add(tick, d.Label(), side.String(), "scanner", "target_lost",
					fmt.Sprintf("lost %s", before.Label()), 0)
			}
		}
	}
}

// Result returns the round result implied by the current aggregate health.
func (b *Battle) Result() Result {
	return resultFromHealth(b.Squadron(SidePlayer).Health(), b.Squadron(SideOpponent).Health())
}
