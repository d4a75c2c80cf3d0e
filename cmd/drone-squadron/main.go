package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Drone-Squadron/internal/arcade"
	"github.com/Garsondee/Drone-Squadron/internal/config"
	"github.com/Garsondee/Drone-Squadron/internal/game"
	"github.com/Garsondee/Drone-Squadron/internal/highscore"
	"github.com/Garsondee/Drone-Squadron/internal/logging"
	"github.com/Garsondee/Drone-Squadron/internal/roster"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup runs first.
func run(args []string) int {
	fs := flag.NewFlagSet("drone-squadron", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional config file (json, yaml or toml)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	log, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closer.Close()

	opts := []game.Option{
		game.WithArena(game.Arena{Width: cfg.Arena.Width, Height: cfg.Arena.Height}),
		game.WithRankClearBonus(cfg.Game.RankClearBonus),
	}
	aopts := arcade.Options{
		Width:    cfg.Window.Width,
		Height:   cfg.Window.Height,
		MaxDelta: cfg.Sim.MaxDeltaSeconds,
		TPS:      cfg.Sim.TPS,
		Logger:   log,
	}

	store, err := highscore.Open(cfg.Store.Driver, cfg.Store.DSN, log)
	if err != nil {
		log.Error().Err(err).Msg("high score store unavailable, scores will not be saved")
	} else {
		defer store.Close()
		opts = append(opts, game.WithOutcomeHook(store.Hook()))
		aopts.HighScore = store.HighScore
	}

	g := game.NewGame(roster.Dir{Root: cfg.DataDir}, opts...)
	log.Info().Str("data", cfg.DataDir).Msg("drone squadron ready")

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetTPS(cfg.Sim.TPS)
	if err := ebiten.RunGame(arcade.New(g, aopts)); err != nil {
		log.Error().Err(err).Msg("game loop exited")
		return 1
	}
	return 0
}
