package game

// Particle is the shared physical body of drones and bullets.
type Particle struct {
	ID       int
	Position Vector
	Velocity Vector
	Angle    float64 // heading in radians
	Radius   float64
	Alive    bool
}

// Move integrates position over dt seconds. Only the position changes.
func (p *Particle) Move(dt float64) {
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
}

// Overlaps reports whether two particles collide: centre distance strictly
// less than the sum of radii.
func (p *Particle) Overlaps(o *Particle) bool {
	return p.Position.DistanceTo(o.Position) < p.Radius+o.Radius
}
