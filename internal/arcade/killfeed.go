package arcade

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Drone-Squadron/internal/game"
)

const (
	feedWidth      = 300
	feedMaxEntries = 40
	feedLineHeight = 14
	feedVisible    = 8
)

// FeedEntry is one line in the kill feed.
type FeedEntry struct {
	Tick    int
	Label   string
	Side    string
	Message string
}

// KillFeed is a ring buffer of kills and losses shown in the arena corner.
type KillFeed struct {
	entries []FeedEntry
	head    int
	count   int

	log  *game.SimLog
	read int
}

// NewKillFeed creates an empty feed.
func NewKillFeed() *KillFeed {
	return &KillFeed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends an entry, overwriting the oldest when full.
func (kf *KillFeed) Add(tick int, label, side, msg string) {
	kf.entries[kf.head] = FeedEntry{Tick: tick, Label: label, Side: side, Message: msg}
	kf.head = (kf.head + 1) % feedMaxEntries
	if kf.count < feedMaxEntries {
		kf.count++
	}
}

// Recent returns entries oldest first.
func (kf *KillFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, kf.count)
	for i := 0; i < kf.count; i++ {
		idx := (kf.head - kf.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = kf.entries[idx]
	}
	return result
}

// Len returns the number of buffered entries.
func (kf *KillFeed) Len() int { return kf.count }

// Reset empties the feed and forgets the attached log.
func (kf *KillFeed) Reset() {
	kf.head, kf.count = 0, 0
	kf.log, kf.read = nil, 0
}

// Sync pulls kill and round entries recorded since the last call. A new
// log (next round) is read from its start; the feed itself is kept.
func (kf *KillFeed) Sync(log *game.SimLog) {
	if log == nil {
		return
	}
	if log != kf.log {
		kf.log, kf.read = log, 0
	}
	for _, e := range log.Since(kf.read) {
		switch {
		case e.Category == "combat" && e.Key == "kill":
			kf.Add(e.Tick, e.Drone, e.Side, e.Value)
		case e.Category == "round" && e.Key == "outcome":
			kf.Add(e.Tick, "--", e.Side, e.Value)
		}
	}
	kf.read = log.Len()
}

// Draw renders the newest entries in a panel anchored bottom-left.
func (kf *KillFeed) Draw(screen *ebiten.Image, x, bottom int) {
	entries := kf.Recent()
	if len(entries) == 0 {
		return
	}
	if len(entries) > feedVisible {
		entries = entries[len(entries)-feedVisible:]
	}
	h := len(entries)*feedLineHeight + 8
	y := bottom - h
	vector.FillRect(screen, float32(x), float32(y), feedWidth, float32(h), color.RGBA{R: 8, G: 10, B: 14, A: 200}, false)
	vector.StrokeRect(screen, float32(x), float32(y), feedWidth, float32(h), 1.0, color.RGBA{R: 60, G: 70, B: 90, A: 180}, false)

	for i, e := range entries {
		ly := y + 4 + i*feedLineHeight
		dot := sideColour(e.Side)
		vector.FillRect(screen, float32(x+5), float32(ly+4), 3, 6, dot, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d [%s] %s", e.Tick, e.Label, e.Message), x+12, ly)
	}
}

func sideColour(side string) color.RGBA {
	switch side {
	case game.SidePlayer.String():
		return color.RGBA{R: 90, G: 200, B: 120, A: 255}
	case game.SideOpponent.String():
		return color.RGBA{R: 220, G: 80, B: 80, A: 255}
	}
	return color.RGBA{R: 200, G: 200, B: 200, A: 255}
}
