package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is wrapped when a stat index does not select a variant.
	ErrIndexOutOfRange = errors.New("stat index out of range")
	// ErrInvalidColour is returned for a colour outside the palette.
	ErrInvalidColour = errors.New("invalid colour")
)

// DroneRecord is one drone's stat record as stored by the roster. Indices
// select members of the variant families.
type DroneRecord struct {
	Weapon   int     `json:"weapon"`
	Gimbal   int     `json:"gimbal"`
	Steering int     `json:"steering"`
	Thruster int     `json:"thruster"`
	Chassis  int     `json:"chassis"`
	Scanner  int     `json:"scanner"`
	Colour   int     `json:"colour"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
}

// SquadronRecord is a squadron's stat record.
type SquadronRecord struct {
	ID     int           `json:"id"`
	Seed   string        `json:"seed"`
	Leader string        `json:"leader"`
	Colour int           `json:"colour"`
	Value  float64       `json:"value"`
	Drones []DroneRecord `json:"drones"`
}

// QueueEntry is one opponent in the campaign queue.
type QueueEntry struct {
	ID     int     `json:"id"`
	Seed   string  `json:"seed"`
	Value  float64 `json:"value"`
	Leader string  `json:"leader"`
}

// ConstructionError names the drone and field whose stat could not be resolved.
type ConstructionError struct {
	Drone int    // index within the record, -1 for the squadron itself
	Field string // "weapon", "gimbal", ..., "colour"
	Index int
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Drone < 0 {
		return fmt.Sprintf("squadron %s %d: %v", e.Field, e.Index, e.Err)
	}
	return fmt.Sprintf("drone %d %s %d: %v", e.Drone, e.Field, e.Index, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// Resolve maps a drone record's indices onto variant values.
func Resolve(rec DroneRecord) (Loadout, error) {
	checks := []struct {
		field string
		index int
		size  int
	}{
		{"weapon", rec.Weapon, len(Weapons)},
		{"gimbal", rec.Gimbal, len(Gimbals)},
		{"steering", rec.Steering, len(Steerings)},
		{"thruster", rec.Thruster, len(Thrusters)},
		{"chassis", rec.Chassis, len(Chassis)},
		{"scanner", rec.Scanner, len(Scanners)},
	}
	for _, c := range checks {
		if c.index < 0 || c.index >= c.size {
			return Loadout{}, &ConstructionError{Drone: -1, Field: c.field, Index: c.index, Err: ErrIndexOutOfRange}
		}
	}
	if err := checkColour(rec.Colour); err != nil {
		return Loadout{}, err
	}
	return Loadout{
		Weapon:        Weapons[rec.Weapon],
		Gimbal:        Gimbals[rec.Gimbal],
		Steering:      Steerings[rec.Steering],
		Thruster:      Thrusters[rec.Thruster],
		Chassis:       Chassis[rec.Chassis],
		Scanner:       Scanners[rec.Scanner],
		WeaponIndex:   rec.Weapon,
		SteeringIndex: rec.Steering,
		ThrusterIndex: rec.Thruster,
		ChassisIndex:  rec.Chassis,
	}, nil
}

// SquadronFactory turns stat records into squadrons deployed in an arena.
type SquadronFactory struct{}

// Make builds a squadron. Drone IDs run from firstDroneID in record order.
// Every record is validated before any drone is built, so a failure leaves
// nothing behind.
func (SquadronFactory) Make(id int, rec SquadronRecord, side Side, colour int, firstDroneID int, arena Arena) (*Squadron, error) {
	if err := checkColour(colour); err != nil {
		return nil, err
	}
	loadouts := make([]Loadout, len(rec.Drones))
	for i, dr := range rec.Drones {
		lo, err := Resolve(dr)
		if err != nil {
			var ce *ConstructionError
			if errors.As(err, &ce) {
				ce.Drone = i
			}
			return nil, err
		}
		loadouts[i] = lo
	}

	n := len(rec.Drones)
	members := make([]*Drone, 0, n)
	for i, dr := range rec.Drones {
		x, y, angle := arena.deployPosition(side, i, n)
		d := NewDrone(firstDroneID+i, side, id, x, y, angle, loadouts[i])
		d.Name = dr.Name
		if d.Name == "" {
			d.Name = fmt.Sprintf("Drone %d", firstDroneID+i)
		}
		d.Value = dr.Value
		members = append(members, d)
	}

	sq := NewSquadron(id, side, "Squadron "+rec.Leader, Palette[colour].Name, members)
	sq.Leader = rec.Leader
	sq.Value = rec.Value
	return sq, nil
}

func checkColour(c int) error {
	if c < 0 || c >= len(Palette) {
		return &ConstructionError{Drone: -1, Field: "colour", Index: c, Err: ErrInvalidColour}
	}
	return nil
}
