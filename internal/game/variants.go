package game

import "math"

// Behaviour variant families. A squadron record selects one member of each
// family per drone by index; the tables are fixed and shared read-only, each
// drone copies the values it needs.

const (
	droneRadius = 13.0

	// alignTolerance is how far off the target bearing a drone may point
	// and still accelerate.
	alignTolerance = math.Pi / 4
	// idleCruise is the fraction of max speed held while no target is known.
	idleCruise = 0.4
	// brakeMul scales thruster acceleration when slowing down.
	brakeMul = 1.5
)

// AmmoSpec describes one projectile type.
type AmmoSpec struct {
	Name     string  // sprite key
	Colour   string  // palette name of the projectile glow
	Speed    float64 // px/s
	Radius   float64 // px
	Damage   float64
	Lifetime float64 // seconds of flight before the round burns out
}

// Range returns the distance the round travels before expiring.
func (a AmmoSpec) Range() float64 { return a.Speed * a.Lifetime }

// WeaponSpec is a gun: how often it fires and what.
type WeaponSpec struct {
	Name     string
	FireRate float64 // shots per second
	Ammo     AmmoSpec
}

// Range is the engagement distance of the weapon.
func (w WeaponSpec) Range() float64 { return w.Ammo.Range() }

// GimbalSpec is the mount of the weapon: a fixed aim offset from the hull heading.
type GimbalSpec struct {
	Name   string
	Offset float64 // radians, positive = clockwise on screen
}

// SteeringSpec bounds how fast a drone can turn.
type SteeringSpec struct {
	Name     string
	TurnRate float64 // rad/s
}

// ThrusterSpec controls how quickly a drone changes speed.
type ThrusterSpec struct {
	Name         string
	Acceleration float64 // px/s²
}

// ChassisSpec is the hull: how much punishment it takes and its top speed.
type ChassisSpec struct {
	Name     string
	Health   float64
	MaxSpeed float64 // px/s
}

// ScannerSpec is the target acquisition radius.
type ScannerSpec struct {
	Name            string
	DetectionRadius float64 // px
}

var (
	PulseShot  = AmmoSpec{Name: "pulse-shot", Colour: "orange", Speed: 450, Radius: 4, Damage: 3, Lifetime: 1.1}
	PhaseShot  = AmmoSpec{Name: "phase-shot", Colour: "acid", Speed: 520, Radius: 5, Damage: 16, Lifetime: 1.4}
	PlasmaShot = AmmoSpec{Name: "plasma-shot", Colour: "blue", Speed: 500, Radius: 10, Damage: 10, Lifetime: 1.0}
	ArcShot    = AmmoSpec{Name: "arc-shot", Colour: "ice", Speed: 380, Radius: 3, Damage: 1, Lifetime: 0.8}
	FusionShot = AmmoSpec{Name: "fusion-shot", Colour: "red", Speed: 420, Radius: 7, Damage: 24, Lifetime: 1.2}
)

// Weapons is indexed by the record's weapon field.
var Weapons = []WeaponSpec{
	{Name: "Pulse Rifle", FireRate: 4.0, Ammo: PulseShot},
	{Name: "Phase Rifle", FireRate: 0.8, Ammo: PhaseShot},
	{Name: "Plasma Cannon", FireRate: 1.2, Ammo: PlasmaShot},
	{Name: "Arc Gun", FireRate: 10, Ammo: ArcShot},
	{Name: "Fusion Cannon", FireRate: 0.6, Ammo: FusionShot},
}

// Gimbals is indexed by the record's gimbal field.
var Gimbals = []GimbalSpec{
	{Name: "Fixed Mount", Offset: 0},
	{Name: "Port Trim", Offset: -0.035},
	{Name: "Starboard Trim", Offset: 0.035},
	{Name: "Port Offset", Offset: -0.07},
	{Name: "Starboard Offset", Offset: 0.07},
	{Name: "Loose Mount", Offset: 0.12},
}

// Steerings is indexed by the record's steering field (the wing set).
var Steerings = []SteeringSpec{
	{Name: "Stub Wings", TurnRate: 1.4},
	{Name: "Swept Wings", TurnRate: 1.8},
	{Name: "Delta Wings", TurnRate: 2.2},
	{Name: "Canard Wings", TurnRate: 2.6},
	{Name: "Forward-Swept Wings", TurnRate: 3.0},
	{Name: "Vector Vanes", TurnRate: 3.5},
}

// Thrusters is indexed by the record's thruster field (the engine).
var Thrusters = []ThrusterSpec{
	{Name: "Ion Drive", Acceleration: 60},
	{Name: "Pulse Jet", Acceleration: 80},
	{Name: "Ramjet", Acceleration: 100},
	{Name: "Plasma Drive", Acceleration: 130},
	{Name: "Afterburner", Acceleration: 160},
}

// Chassis is indexed by the record's chassis field.
var Chassis = []ChassisSpec{
	{Name: "Scout", Health: 60, MaxSpeed: 140},
	{Name: "Interceptor", Health: 80, MaxSpeed: 120},
	{Name: "Striker", Health: 100, MaxSpeed: 100},
	{Name: "Gunship", Health: 130, MaxSpeed: 80},
	{Name: "Bulwark", Health: 160, MaxSpeed: 65},
}

// Scanners is indexed by the record's scanner field.
var Scanners = []ScannerSpec{
	{Name: "Short-Range Array", DetectionRadius: 250},
	{Name: "Proximity Array", DetectionRadius: 320},
	{Name: "Sweep Radar", DetectionRadius: 400},
	{Name: "Phased Radar", DetectionRadius: 480},
	{Name: "Long-Range Radar", DetectionRadius: 560},
	{Name: "Deep Scanner", DetectionRadius: 650},
}

// Colour is one entry of the squadron palette.
type Colour struct {
	Name string
	Hex  string
}

// Palette is indexed by the record's colour field.
var Palette = []Colour{
	{Name: "constructivist-real", Hex: "#FF4100"},
	{Name: "candy", Hex: "#FF2BE4"},
	{Name: "warm-grey", Hex: "#F2DABD"},
	{Name: "toxic", Hex: "#33FF9F"},
	{Name: "pistachio-and-peach", Hex: "#9C36B3"},
	{Name: "order-and-chaos", Hex: "#FFF73D"},
}

// projectileColours maps ammo glow names to hex.
var projectileColours = map[string]string{
	"orange": "#ee6c09",
	"acid":   "#08f50c",
	"blue":   "#2b59e5",
	"ice":    "#08f5c6",
	"red":    "#d20931",
}

// ColourHex resolves a palette or projectile colour name to its hex code.
func ColourHex(name string) string {
	for _, c := range Palette {
		if c.Name == name {
			return c.Hex
		}
	}
	if h, ok := projectileColours[name]; ok {
		return h
	}
	return "#b3dce2"
}

// opponentColour derives the opponent palette index from the player's and
// the rank, never equal to the player's.
func opponentColour(player, rank int) int {
	n := len(Palette)
	return (player + 1 + rank%(n-1)) % n
}
