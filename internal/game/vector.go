package game

import "math"

// Vector is a 2D quantity in arena space: pixels for positions, pixels per
// second for velocities. Angle 0 points right (east), pi/2 points down.
type Vector struct {
	X, Y float64
}

// VectorFromAngle returns a vector of the given magnitude pointing along angle.
func VectorFromAngle(angle, magnitude float64) Vector {
	return Vector{X: math.Cos(angle) * magnitude, Y: math.Sin(angle) * magnitude}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vector) Scale(k float64) Vector {
	return Vector{X: v.X * k, Y: v.Y * k}
}

// Angle returns the direction of v in radians.
func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Magnitude returns the length of v.
func (v Vector) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// DistanceTo returns the euclidean distance between two points.
func (v Vector) DistanceTo(o Vector) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// HeadingTo returns the angle in radians from (ox,oy) toward (tx,ty).
func HeadingTo(ox, oy, tx, ty float64) float64 {
	return math.Atan2(ty-oy, tx-ox)
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// rotateToward steps heading toward target by at most maxStep radians.
// Inside one step the heading lands exactly on target.
func rotateToward(heading, target, maxStep float64) float64 {
	diff := normalizeAngle(target - heading)
	if math.Abs(diff) <= maxStep {
		return normalizeAngle(target)
	}
	if diff > 0 {
		return normalizeAngle(heading + maxStep)
	}
	return normalizeAngle(heading - maxStep)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
