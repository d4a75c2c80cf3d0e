package game

import "math"

const (
	defaultArenaWidth  = 1280.0
	defaultArenaHeight = 720.0

	// patrolMargin is the inner band a drone without a target turns back from.
	patrolMargin = 60.0
	// bulletMargin is how far past the arena edge a round may fly before it is expired.
	bulletMargin = 100.0
	// deployMargin is the distance from the arena edge squadrons start at.
	deployMargin = 80.0
)

// Arena is the playfield in pixels.
type Arena struct {
	Width  float64
	Height float64
}

// DefaultArena returns the standard 1280x720 playfield.
func DefaultArena() Arena {
	return Arena{Width: defaultArenaWidth, Height: defaultArenaHeight}
}

// Centre returns the middle of the arena.
func (a Arena) Centre() Vector {
	return Vector{X: a.Width / 2, Y: a.Height / 2}
}

// InPatrolZone reports whether p lies inside the arena less patrolMargin.
func (a Arena) InPatrolZone(p Vector) bool {
	if a.Width <= 0 || a.Height <= 0 {
		return true
	}
	return p.X >= patrolMargin && p.X <= a.Width-patrolMargin &&
		p.Y >= patrolMargin && p.Y <= a.Height-patrolMargin
}

// Contains reports whether p lies within the arena grown by margin.
func (a Arena) Contains(p Vector, margin float64) bool {
	if a.Width <= 0 || a.Height <= 0 {
		return true
	}
	return p.X >= -margin && p.X <= a.Width+margin &&
		p.Y >= -margin && p.Y <= a.Height+margin
}

// deployPosition returns the start point and heading of member i of n on side.
func (a Arena) deployPosition(side Side, i, n int) (x, y, angle float64) {
	y = a.Height * float64(i+1) / float64(n+1)
	if side == SidePlayer {
		return deployMargin, y, 0
	}
	return a.Width - deployMargin, y, math.Pi
}
