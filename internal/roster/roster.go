// Package roster reads squadron stat records and the opponent queue from a
// data directory laid out as:
//
//	<dir>/player-drones/squadron.json
//	<dir>/enemy-drones/queue.json
//	<dir>/enemy-drones/<id>_<seed>/squadron.json
package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Garsondee/Drone-Squadron/internal/game"
)

// ErrEmptyQueue is returned when the queue file lists no opponents.
var ErrEmptyQueue = errors.New("opponent queue is empty")

// Dir is a game.Roster backed by JSON files. Files are read on every call,
// so edits between rounds are picked up.
type Dir struct {
	Root string
}

var _ game.Roster = Dir{}

// PlayerPath returns the player squadron file.
func (d Dir) PlayerPath() string {
	return filepath.Join(d.Root, "player-drones", "squadron.json")
}

// QueuePath returns the opponent queue file.
func (d Dir) QueuePath() string {
	return filepath.Join(d.Root, "enemy-drones", "queue.json")
}

// OpponentPath returns the squadron file of a queue entry.
func (d Dir) OpponentPath(e game.QueueEntry) string {
	return filepath.Join(d.Root, "enemy-drones", fmt.Sprintf("%d_%s", e.ID, e.Seed), "squadron.json")
}

// PlayerSquadron reads the local squadron.
func (d Dir) PlayerSquadron() (game.SquadronRecord, error) {
	var rec game.SquadronRecord
	if err := readJSON(d.PlayerPath(), &rec); err != nil {
		return game.SquadronRecord{}, fmt.Errorf("player squadron: %w", err)
	}
	return rec, nil
}

// OpponentQueue reads the ordered opponent list.
func (d Dir) OpponentQueue() ([]game.QueueEntry, error) {
	var q []game.QueueEntry
	if err := readJSON(d.QueuePath(), &q); err != nil {
		return nil, fmt.Errorf("opponent queue: %w", err)
	}
	if len(q) == 0 {
		return nil, fmt.Errorf("%s: %w", d.QueuePath(), ErrEmptyQueue)
	}
	return q, nil
}

// OpponentSquadron reads the squadron file of one queue entry. The queue
// entry's leader and value fill in fields the file leaves empty.
func (d Dir) OpponentSquadron(e game.QueueEntry) (game.SquadronRecord, error) {
	var rec game.SquadronRecord
	if err := readJSON(d.OpponentPath(e), &rec); err != nil {
		return game.SquadronRecord{}, fmt.Errorf("opponent %d_%s: %w", e.ID, e.Seed, err)
	}
	if rec.Leader == "" {
		rec.Leader = e.Leader
	}
	if rec.Value == 0 {
		rec.Value = e.Value
	}
	if rec.Seed == "" {
		rec.Seed = e.Seed
	}
	return rec, nil
}

// WritePlayer stores the local squadron, creating directories as needed.
func (d Dir) WritePlayer(rec game.SquadronRecord) error {
	return writeJSON(d.PlayerPath(), rec)
}

// WriteOpponent stores an opponent squadron and appends it to the queue.
func (d Dir) WriteOpponent(rec game.SquadronRecord) error {
	e := game.QueueEntry{ID: rec.ID, Seed: rec.Seed, Value: rec.Value, Leader: rec.Leader}
	if err := writeJSON(d.OpponentPath(e), rec); err != nil {
		return err
	}
	var q []game.QueueEntry
	if err := readJSON(d.QueuePath(), &q); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("opponent queue: %w", err)
	}
	return writeJSON(d.QueuePath(), append(q, e))
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
