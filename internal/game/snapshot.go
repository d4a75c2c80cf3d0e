package game

// SquadronView is the render-ready state of one squadron.
type SquadronView struct {
	Side      Side
	Name      string
	Colour    string // palette name
	Hex       string
	Health    float64
	MaxHealth float64
	Alive     int
}

// DroneView is the render-ready state of one living drone.
type DroneView struct {
	ID         int
	SquadronID int
	Side       Side
	Name       string
	Label      string
	X, Y       float64
	Angle      float64
	Radius     float64
	Sprite     string
	Colour     string // hex
	Health     float64
	MaxHealth  float64
	TargetID   int // -1 without a target
	Kills      int
}

// BulletView is the render-ready state of one bullet in flight.
type BulletView struct {
	X, Y   float64
	Angle  float64
	Radius float64
	Sprite string
	Colour string // hex
}

// Snapshot is everything the drawing layer needs for one frame. It holds no
// references into the simulation.
type Snapshot struct {
	State         State
	Result        Result
	Rank          int
	Tick          int
	PlayerScore   int
	OpponentScore int
	PlayerKills   int
	OpponentKills int
	HighlightText string
	SubText       string
	Squadrons     []SquadronView
	Drones        []DroneView
	Bullets       []BulletView
}

// Snapshot copies the current frame out of the game.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		State:         g.state,
		Result:        g.result,
		Rank:          g.rank,
		PlayerScore:   g.scores.PlayerOneScore(),
		OpponentScore: g.scores.PlayerTwoScore(),
		PlayerKills:   g.scores.Side(SidePlayer).Kills,
		OpponentKills: g.scores.Side(SideOpponent).Kills,
	}
	s.HighlightText, s.SubText = g.Banner()
	b := g.battle
	if b == nil {
		return s
	}
	s.Tick = b.Ticks()

	for _, side := range []Side{SidePlayer, SideOpponent} {
		sq := b.Squadron(side)
		if sq == nil {
			continue
		}
		s.Squadrons = append(s.Squadrons, SquadronView{
			Side:      side,
			Name:      sq.Name,
			Colour:    sq.Colour,
			Hex:       ColourHex(sq.Colour),
			Health:    sq.Health(),
			MaxHealth: sq.MaxHealth(),
			Alive:     sq.AliveCount(),
		})
		for _, d := range sq.Drones {
			if !d.Alive {
				continue
			}
			target := -1
			if d.Target != nil {
				target = d.Target.ID
			}
			s.Drones = append(s.Drones, DroneView{
				ID:         d.ID,
				SquadronID: d.SquadronID,
				Side:       side,
				Name:       d.Name,
				Label:      d.Label(),
				X:          d.Position.X,
				Y:          d.Position.Y,
				Angle:      d.Angle,
				Radius:     d.Radius,
				Sprite:     d.SpriteKey(),
				Colour:     ColourHex(d.Colour),
				Health:     d.Health.Current(),
				MaxHealth:  d.Health.Max(),
				TargetID:   target,
				Kills:      d.Kills,
			})
		}
	}

	for _, bl := range b.Particles.Bullets() {
		if !bl.Alive {
			continue
		}
		s.Bullets = append(s.Bullets, BulletView{
			X:      bl.Position.X,
			Y:      bl.Position.Y,
			Angle:  bl.Angle,
			Radius: bl.Radius,
			Sprite: bl.Ammo.Name,
			Colour: ColourHex(bl.Ammo.Colour),
		})
	}
	return s
}
