// Package highscore persists round outcomes and the all-time high score.
package highscore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Garsondee/Drone-Squadron/internal/game"
)

// ErrUnknownDriver is returned by Open for a driver other than sqlite or postgres.
var ErrUnknownDriver = errors.New("unknown store driver")

// RoundRecord is one decided round.
type RoundRecord struct {
	ID               string `gorm:"primaryKey;size:36"`
	CreatedAt        time.Time
	Result           string `gorm:"size:8;index"`
	Rank             int
	Final            bool
	PlayerScore      int `gorm:"index"`
	OpponentScore    int
	PlayerKills      int
	OpponentKills    int
	Ticks            int
	ElapsedSeconds   float64
	PlayerSquadron   string `gorm:"size:128"`
	OpponentSquadron string `gorm:"size:128"`
}

// Store wraps a gorm connection.
type Store struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// Open connects and migrates. For sqlite an empty dsn opens a shared
// in-memory database; otherwise the parent directory is created.
func Open(driver, dsn string, log zerolog.Logger) (*Store, error) {
	cfg := &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "", "sqlite":
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		} else if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store dir: %w", err)
			}
		}
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	case "postgres":
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	default:
		return nil, fmt.Errorf("%q: %w", driver, ErrUnknownDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}

	if err := db.AutoMigrate(&RoundRecord{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	log.Info().Str("driver", driver).Msg("high score store ready")
	return &Store{DB: db, Logger: log}, nil
}

// Record stores one outcome and returns the new row's ID.
func (s *Store) Record(out game.RoundOutcome) (string, error) {
	rec := RoundRecord{
		ID:               uuid.NewString(),
		Result:           out.Result.String(),
		Rank:             out.Rank,
		Final:            out.Final,
		PlayerScore:      out.PlayerScore,
		OpponentScore:    out.OpponentScore,
		PlayerKills:      out.PlayerKills,
		OpponentKills:    out.OpponentKills,
		Ticks:            out.Ticks,
		ElapsedSeconds:   out.Elapsed,
		PlayerSquadron:   out.PlayerSquadron,
		OpponentSquadron: out.OpponentSquadron,
	}
	if err := s.DB.Create(&rec).Error; err != nil {
		return "", fmt.Errorf("record round: %w", err)
	}
	return rec.ID, nil
}

// HighScore returns the best player score recorded, 0 when empty.
func (s *Store) HighScore() (int, error) {
	var best int
	err := s.DB.Model(&RoundRecord{}).Select("COALESCE(MAX(player_score), 0)").Scan(&best).Error
	if err != nil {
		return 0, fmt.Errorf("high score: %w", err)
	}
	return best, nil
}

// Recent returns up to n records, newest first.
func (s *Store) Recent(n int) ([]RoundRecord, error) {
	var recs []RoundRecord
	err := s.DB.Order("created_at desc").Limit(n).Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("recent rounds: %w", err)
	}
	return recs, nil
}

// Hook returns an outcome hook that stores the run-ending outcomes: a loss
// or the final win of the campaign. Failures are logged, not returned.
func (s *Store) Hook() game.OutcomeHook {
	return func(out game.RoundOutcome) {
		if out.Result != game.ResultLoss && !out.Final {
			return
		}
		id, err := s.Record(out)
		if err != nil {
			s.Logger.Error().Err(err).Msg("failed to store round outcome")
			return
		}
		s.Logger.Info().Str("id", id).Int("score", out.PlayerScore).Str("result", out.Result.String()).
			Msg("round outcome stored")
	}
}

// Close releases the connection.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
