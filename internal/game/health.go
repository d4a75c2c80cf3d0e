package game

// Health accumulates damage. current stays within [0, max] and never rises.
type Health struct {
	current float64
	max     float64
}

// NewHealth returns full health. Non-positive max yields a dead pool.
func NewHealth(max float64) Health {
	if max < 0 {
		max = 0
	}
	return Health{current: max, max: max}
}

// Damage removes up to amount and returns what was actually removed.
func (h *Health) Damage(amount float64) float64 {
	if amount <= 0 || h.current <= 0 {
		return 0
	}
	dealt := amount
	if dealt > h.current {
		dealt = h.current
	}
	h.current -= dealt
	return dealt
}

// Current returns remaining health.
func (h Health) Current() float64 { return h.current }

// Max returns the starting health.
func (h Health) Max() float64 { return h.max }

// IsDead reports whether health has reached zero.
func (h Health) IsDead() bool { return h.current <= 0 }

// Fraction returns current/max in [0,1].
func (h Health) Fraction() float64 {
	if h.max <= 0 {
		return 0
	}
	return clamp01(h.current / h.max)
}
