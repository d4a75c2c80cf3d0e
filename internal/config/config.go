// Package config loads runtime settings with viper: defaults, an optional
// config file and DRONESQUADRON_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// DRONESQUADRON_STORE_DRIVER.
const EnvPrefix = "DRONESQUADRON"

// WindowConfig sizes the arcade window.
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// ArenaConfig sizes the playfield in simulation pixels.
type ArenaConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// SimConfig controls how wall-clock time drives ticks.
type SimConfig struct {
	MaxDeltaSeconds float64 `mapstructure:"maxDeltaSeconds"`
	TPS             int     `mapstructure:"tps"`
}

// StoreConfig selects the high-score database.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // sqlite or postgres
	DSN    string `mapstructure:"dsn"`
}

// GameConfig holds scoring rules.
type GameConfig struct {
	RankClearBonus int `mapstructure:"rankClearBonus"`
}

// Config is the typed view of all settings.
type Config struct {
	LogLevel string       `mapstructure:"logLevel"`
	LogFile  string       `mapstructure:"logFile"`
	DataDir  string       `mapstructure:"dataDir"`
	Window   WindowConfig `mapstructure:"window"`
	Arena    ArenaConfig  `mapstructure:"arena"`
	Sim      SimConfig    `mapstructure:"sim"`
	Store    StoreConfig  `mapstructure:"store"`
	Game     GameConfig   `mapstructure:"game"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("dataDir", "./data")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Drone Squadron")

	v.SetDefault("arena.width", 1280)
	v.SetDefault("arena.height", 720)

	v.SetDefault("sim.maxDeltaSeconds", 0.05)
	v.SetDefault("sim.tps", 60)

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "./data/highscores.db")

	v.SetDefault("game.rankClearBonus", 1000)
}

// Load reads settings. An empty path uses defaults and environment only;
// a named file that cannot be read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		errs = append(errs, fmt.Errorf("arena size %gx%g must be positive", c.Arena.Width, c.Arena.Height))
	}
	if c.Sim.MaxDeltaSeconds <= 0 {
		errs = append(errs, fmt.Errorf("sim.maxDeltaSeconds %g must be positive", c.Sim.MaxDeltaSeconds))
	}
	if c.Sim.TPS <= 0 {
		errs = append(errs, fmt.Errorf("sim.tps %d must be positive", c.Sim.TPS))
	}
	switch c.Store.Driver {
	case "sqlite", "postgres", "":
	default:
		errs = append(errs, fmt.Errorf("store.driver %q: want sqlite or postgres", c.Store.Driver))
	}
	return errors.Join(errs...)
}
