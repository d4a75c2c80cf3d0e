package game

import "sort"

// Squadron is a coloured group of drones fighting as one side.
type Squadron struct {
	ID     int
	Side   Side
	Name   string
	Leader string
	Colour string
	Value  float64

	// Drones holds the living members in ascending ID order; the sweep pass
	// moves destroyed members to Fallen.
	Drones []*Drone
	Fallen []*Drone
}

// NewSquadron groups members into a squadron. Members are sorted by ID.
func NewSquadron(id int, side Side, name, colour string, members []*Drone) *Squadron {
	sq := &Squadron{
		ID:     id,
		Side:   side,
		Name:   name,
		Colour: colour,
		Drones: append([]*Drone(nil), members...),
	}
	sort.Slice(sq.Drones, func(i, j int) bool { return sq.Drones[i].ID < sq.Drones[j].ID })
	for _, d := range sq.Drones {
		d.SquadronID = id
		d.Side = side
		d.Colour = colour
	}
	return sq
}

// Health is the aggregate: the sum of current health across living members.
func (sq *Squadron) Health() float64 {
	if sq == nil {
		return 0
	}
	total := 0.0
	for _, d := range sq.Drones {
		if d.Alive {
			total += d.Health.Current()
		}
	}
	return total
}

// MaxHealth is the aggregate starting health of every member.
func (sq *Squadron) MaxHealth() float64 {
	total := 0.0
	for _, d := range sq.Members() {
		total += d.Health.Max()
	}
	return total
}

// AliveCount returns the number of members still flying.
func (sq *Squadron) AliveCount() int {
	if sq == nil {
		return 0
	}
	n := 0
	for _, d := range sq.Drones {
		if d.Alive {
			n++
		}
	}
	return n
}

// Members returns every drone that started the round, living or fallen,
// in ID order.
func (sq *Squadron) Members() []*Drone {
	if sq == nil {
		return nil
	}
	all := make([]*Drone, 0, len(sq.Drones)+len(sq.Fallen))
	all = append(all, sq.Drones...)
	all = append(all, sq.Fallen...)
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// sweep moves dead members to Fallen and returns them.
func (sq *Squadron) sweep() []*Drone {
	var removed []*Drone
	kept := sq.Drones[:0]
	for _, d := range sq.Drones {
		if d.Alive {
			kept = append(kept, d)
		} else {
			removed = append(removed, d)
		}
	}
	for i := len(kept); i < len(sq.Drones); i++ {
		sq.Drones[i] = nil
	}
	sq.Drones = kept
	sq.Fallen = append(sq.Fallen, removed...)
	return removed
}
