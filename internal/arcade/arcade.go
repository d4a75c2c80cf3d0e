// Package arcade is the ebiten frontend: it drives Game.Tick from the frame
// clock, draws snapshots and maps keys to state transitions.
package arcade

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Drone-Squadron/internal/game"
)

// Action is a player command, applied between ticks.
type Action int

const (
	ActionNone Action = iota
	ActionAdvance
	ActionStop
	ActionCopyReport
	ActionToggleLabels
)

// Options configures an Arcade.
type Options struct {
	Width, Height int
	MaxDelta      float64 // seconds; longer frames are clamped
	TPS           int
	Logger        zerolog.Logger
	HighScore     func() (int, error)
	Clipboard     func(string) error
	Now           func() time.Time
}

// Arcade implements ebiten.Game around a game.Game.
type Arcade struct {
	game *game.Game
	opts Options
	feed *KillFeed

	last       time.Time
	best       int
	status     string
	showLabels bool
	prevState  game.State
}

// New wraps g. Zero options fall back to a 1280x720 window at 60 TPS.
func New(g *game.Game, opts Options) *Arcade {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if opts.MaxDelta <= 0 {
		opts.MaxDelta = 0.05
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	a := &Arcade{game: g, opts: opts, feed: NewKillFeed(), status: "SPACE to launch"}
	a.refreshHighScore()
	return a
}

// Game returns the wrapped game.
func (a *Arcade) Game() *game.Game { return a.game }

// Feed returns the kill feed.
func (a *Arcade) Feed() *KillFeed { return a.feed }

// Status returns the current hint line.
func (a *Arcade) Status() string { return a.status }

// Update reads input and advances the simulation by the elapsed frame time.
func (a *Arcade) Update() error {
	for _, act := range pressedActions() {
		a.Apply(act)
	}
	a.Step(a.frameDelta())
	return nil
}

// Step ticks the game by dt and syncs the feed and high score.
func (a *Arcade) Step(dt float64) {
	a.game.Tick(dt)
	a.feed.Sync(a.game.Log())

	st := a.game.State()
	if st == game.StateGameOver && a.prevState != game.StateGameOver {
		a.refreshHighScore()
		a.status = "SPACE to continue  ESC to stop  C to copy report"
	}
	a.prevState = st
}

// Apply runs one action. Failures are logged and shown on the HUD; the game
// stays in the state it was in.
func (a *Arcade) Apply(act Action) {
	log := a.opts.Logger
	switch act {
	case ActionAdvance:
		var err error
		switch a.game.State() {
		case game.StateStopped:
			a.feed.Reset()
			err = a.game.Start()
		case game.StateGameOver:
			err = a.game.Continue()
		default:
			return
		}
		switch {
		case errors.Is(err, game.ErrQueueExhausted) && a.game.Completed():
			log.Info().Int("score", a.game.Scores().PlayerOneScore()).Msg("campaign complete")
			_ = a.game.Stop()
			a.status = "Campaign complete! SPACE to play again"
		case err != nil:
			log.Error().Err(err).Msg("failed to start round")
			a.status = "Error: " + err.Error()
		default:
			log.Info().Int("rank", a.game.Rank()).Msg("round started")
			a.status = ""
		}
	case ActionStop:
		if err := a.game.Stop(); err != nil {
			log.Debug().Err(err).Msg("stop ignored")
			return
		}
		a.feed.Reset()
		a.prevState = game.StateStopped
		a.status = "SPACE to launch"
	case ActionCopyReport:
		report := Report(a.game)
		if report == "" {
			return
		}
		if err := a.opts.Clipboard(report); err != nil {
			log.Warn().Err(err).Msg("failed to copy report to clipboard")
			a.status = "Clipboard unavailable"
			return
		}
		log.Info().Int("bytes", len(report)).Msg("report copied to clipboard")
		a.status = "Report copied"
	case ActionToggleLabels:
		a.showLabels = !a.showLabels
	}
}

func (a *Arcade) refreshHighScore() {
	if s := a.game.Scores().PlayerOneScore(); s > a.best {
		a.best = s
	}
	if a.opts.HighScore == nil {
		return
	}
	best, err := a.opts.HighScore()
	if err != nil {
		a.opts.Logger.Warn().Err(err).Msg("failed to read high score")
		return
	}
	if best > a.best {
		a.best = best
	}
}

// HighScore returns the best score known to the frontend.
func (a *Arcade) HighScore() int { return a.best }

func (a *Arcade) frameDelta() float64 {
	now := a.opts.Now()
	if a.last.IsZero() {
		a.last = now
		return 1.0 / float64(a.opts.TPS)
	}
	dt := now.Sub(a.last).Seconds()
	a.last = now
	return ClampDelta(dt, a.opts.MaxDelta)
}

// ClampDelta bounds a frame time to [0, max].
func ClampDelta(dt, max float64) float64 {
	if dt < 0 || math.IsNaN(dt) {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}

func pressedActions() []Action {
	var acts []Action
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		acts = append(acts, ActionAdvance)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		acts = append(acts, ActionStop)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		acts = append(acts, ActionCopyReport)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		acts = append(acts, ActionToggleLabels)
	}
	return acts
}

// Draw renders the current snapshot.
func (a *Arcade) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 20, A: 255})
	snap := a.game.Snapshot()
	v := newView(a.game.Arena(), a.opts.Width, a.opts.Height)

	v.drawBounds(screen)
	for _, b := range snap.Bullets {
		x, y := v.point(b.X, b.Y)
		r := float32(math.Max(b.Radius*v.scale, 1.5))
		vector.FillCircle(screen, x, y, r, ParseHex(b.Colour), true)
	}
	for _, d := range snap.Drones {
		a.drawDrone(screen, v, d)
	}

	a.drawHUD(screen, snap)
	a.feed.Draw(screen, 8, a.opts.Height-8)
	drawBanner(screen, snap, a.opts.Width, a.opts.Height)
}

func (a *Arcade) drawDrone(screen *ebiten.Image, v view, d game.DroneView) {
	x, y := v.point(d.X, d.Y)
	r := float32(d.Radius * v.scale)
	body := ParseHex(d.Colour)

	vector.FillCircle(screen, x, y, r, body, true)
	vector.StrokeCircle(screen, x, y, r, 1.5, color.RGBA{R: 230, G: 230, B: 230, A: 160}, true)
	hx := x + float32(math.Cos(d.Angle))*r*1.8
	hy := y + float32(math.Sin(d.Angle))*r*1.8
	vector.StrokeLine(screen, x, y, hx, hy, 2, body, true)

	// Health bar above the drone.
	barW := r * 2.4
	frac := float32(0)
	if d.MaxHealth > 0 {
		frac = float32(d.Health / d.MaxHealth)
	}
	bx, by := x-barW/2, y-r-8
	vector.FillRect(screen, bx, by, barW, 3, color.RGBA{R: 60, G: 20, B: 20, A: 220}, false)
	vector.FillRect(screen, bx, by, barW*frac, 3, healthColour(frac), false)

	if a.showLabels {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %s", d.Label, d.Name), int(x+r+2), int(y-r))
	}
}

func (a *Arcade) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	face := basicfont.Face7x13
	white := color.RGBA{R: 235, G: 235, B: 235, A: 255}

	left := fmt.Sprintf("P1 %06d  kills %d", snap.PlayerScore, snap.PlayerKills)
	right := fmt.Sprintf("P2 %06d  kills %d", snap.OpponentScore, snap.OpponentKills)
	text.Draw(screen, left, face, 12, 20, white)
	text.Draw(screen, right, face, a.opts.Width-12-textWidth(right), 20, white)

	mid := fmt.Sprintf("LEVEL %d   HI %06d", snap.Rank+1, a.best)
	text.Draw(screen, mid, face, (a.opts.Width-textWidth(mid))/2, 20, white)

	for i, sq := range snap.Squadrons {
		frac := 0.0
		if sq.MaxHealth > 0 {
			frac = sq.Health / sq.MaxHealth
		}
		x := 12
		if i == 1 {
			x = a.opts.Width - 12 - 200
		}
		vector.FillRect(screen, float32(x), 28, 200, 6, color.RGBA{R: 40, G: 40, B: 50, A: 220}, false)
		vector.FillRect(screen, float32(x), 28, float32(200*frac), 6, ParseHex(sq.Hex), false)
		text.Draw(screen, fmt.Sprintf("%s (%d)", sq.Name, sq.Alive), face, x, 50, ParseHex(sq.Hex))
	}

	if a.status != "" {
		text.Draw(screen, a.status, face, (a.opts.Width-textWidth(a.status))/2, a.opts.Height-12, white)
	}
}

func drawBanner(screen *ebiten.Image, snap game.Snapshot, w, h int) {
	if snap.HighlightText == "" {
		return
	}
	face := basicfont.Face7x13
	title := strings.ToUpper(snap.HighlightText)
	bw := float32(max(textWidth(title), textWidth(snap.SubText)) + 60)
	bx, by := (float32(w)-bw)/2, float32(h)/2-40
	vector.FillRect(screen, bx, by, bw, 70, color.RGBA{R: 6, G: 8, B: 12, A: 220}, false)
	vector.StrokeRect(screen, bx, by, bw, 70, 1.5, color.RGBA{R: 120, G: 140, B: 180, A: 200}, false)
	text.Draw(screen, title, face, (w-textWidth(title))/2, h/2-12, color.RGBA{R: 255, G: 220, B: 120, A: 255})
	if snap.SubText != "" {
		text.Draw(screen, snap.SubText, face, (w-textWidth(snap.SubText))/2, h/2+12, color.RGBA{R: 220, G: 220, B: 220, A: 255})
	}
}

// Layout keeps a fixed logical screen.
func (a *Arcade) Layout(_, _ int) (int, int) {
	return a.opts.Width, a.opts.Height
}

// view maps arena coordinates onto the screen, letterboxed.
type view struct {
	scale      float64
	offX, offY float64
	w, h       float64
}

func newView(arena game.Arena, w, h int) view {
	if arena.Width <= 0 || arena.Height <= 0 {
		return view{scale: 1, w: float64(w), h: float64(h)}
	}
	s := math.Min(float64(w)/arena.Width, float64(h)/arena.Height)
	return view{
		scale: s,
		offX:  (float64(w) - arena.Width*s) / 2,
		offY:  (float64(h) - arena.Height*s) / 2,
		w:     arena.Width * s,
		h:     arena.Height * s,
	}
}

func (v view) point(x, y float64) (float32, float32) {
	return float32(v.offX + x*v.scale), float32(v.offY + y*v.scale)
}

func (v view) drawBounds(screen *ebiten.Image) {
	vector.StrokeRect(screen, float32(v.offX), float32(v.offY), float32(v.w), float32(v.h), 1.0,
		color.RGBA{R: 40, G: 50, B: 70, A: 255}, false)
}

// ParseHex converts "#RRGGBB" to an opaque colour; anything else is grey.
func ParseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{R: 180, G: 180, B: 180, A: 255}
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{R: 180, G: 180, B: 180, A: 255}
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}
}

func healthColour(frac float32) color.RGBA {
	switch {
	case frac > 0.6:
		return color.RGBA{R: 80, G: 210, B: 110, A: 255}
	case frac > 0.3:
		return color.RGBA{R: 230, G: 190, B: 60, A: 255}
	default:
		return color.RGBA{R: 220, G: 70, B: 60, A: 255}
	}
}

// textWidth measures s in basicfont.Face7x13 pixels.
func textWidth(s string) int {
	return len(s) * 7
}
