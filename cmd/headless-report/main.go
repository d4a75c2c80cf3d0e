package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Drone-Squadron/internal/config"
	"github.com/Garsondee/Drone-Squadron/internal/game"
	"github.com/Garsondee/Drone-Squadron/internal/highscore"
	"github.com/Garsondee/Drone-Squadron/internal/logging"
	"github.com/Garsondee/Drone-Squadron/internal/roster"
)

type roundStats struct {
	index    int
	rank     int
	opponent string

	decided bool
	result  game.Result
	ticks   int
	elapsed float64

	firstAcquireTick    int
	firstShotTick       int
	firstHitTick        int
	firstKillTick       int
	firstPlayerLossTick int

	shots         int
	hits          int
	kills         int
	targetChanges int

	playerScore   int
	opponentScore int

	summary game.RoundSummary
	grades  []game.DroneGrade
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the report and returns the process exit code. Deferred
// cleanup runs before main exits.
func run(args []string) int {
	fs := flag.NewFlagSet("headless-report", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional config file")
	dataDir := fs.String("data", "", "data directory (overrides config dataDir)")
	ticks := fs.Int("ticks", 3000, "tick cap per round")
	dt := fs.Float64("dt", 1.0/60.0, "seconds per tick")
	maxRounds := fs.Int("rounds", 0, "round cap (0 = queue length)")
	verbose := fs.Bool("verbose", false, "record per-tick positions in the event log")
	record := fs.Bool("record", false, "store run-ending outcomes in the high score store")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return 1
	}
	if *dt <= 0 {
		fmt.Println("error: -dt must be > 0")
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return 1
	}
	log, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return 1
	}
	defer closer.Close()

	if *dataDir == "" {
		*dataDir = cfg.DataDir
	}

	opts := []game.Option{
		game.WithArena(game.Arena{Width: cfg.Arena.Width, Height: cfg.Arena.Height}),
		game.WithRankClearBonus(cfg.Game.RankClearBonus),
		game.WithVerboseLog(*verbose),
	}
	if *record {
		store, err := highscore.Open(cfg.Store.Driver, cfg.Store.DSN, log)
		if err != nil {
			log.Error().Err(err).Msg("high score store unavailable, not recording")
		} else {
			defer store.Close()
			opts = append(opts, game.WithOutcomeHook(store.Hook()))
		}
	}

	g := game.NewGame(roster.Dir{Root: *dataDir}, opts...)

	fmt.Printf("=== Headless Campaign Report ===\n")
	fmt.Printf("data=%s ticks=%d dt=%.4f arena=%.0fx%.0f verbose=%t\n\n",
		*dataDir, *ticks, *dt, cfg.Arena.Width, cfg.Arena.Height, *verbose)

	all, err := runCampaign(g, *ticks, *dt, *maxRounds, log)
	for _, rs := range all {
		printRun(rs)
	}
	if err != nil {
		fmt.Printf("error: %v\n", err)
		printAggregate(all, g)
		return 1
	}
	printAggregate(all, g)
	return 0
}

// runCampaign plays ranks in order until the queue is cleared, a round is
// lost, drawn or undecided, or maxRounds is reached.
func runCampaign(g *game.Game, ticks int, dt float64, maxRounds int, log zerolog.Logger) ([]roundStats, error) {
	if err := g.Start(); err != nil {
		return nil, err
	}
	if maxRounds <= 0 {
		maxRounds = g.QueueLength()
	}

	var all []roundStats
	for i := 0; i < maxRounds; i++ {
		rs := runRound(g, i+1, ticks, dt)
		all = append(all, rs)
		log.Debug().Int("rank", rs.rank).Str("result", rs.result.String()).Int("ticks", rs.ticks).Msg("round finished")

		if !rs.decided || rs.result != game.ResultWin {
			break
		}
		err := g.Continue()
		if errors.Is(err, game.ErrQueueExhausted) && g.Completed() {
			break
		}
		if err != nil {
			return all, err
		}
	}
	return all, nil
}

func runRound(g *game.Game, index, ticks int, dt float64) roundStats {
	rank := g.Rank()
	for i := 0; i < ticks && g.State() == game.StatePlaying; i++ {
		g.Tick(dt)
	}

	b := g.Battle()
	entries := b.Log.Entries()
	player, opponent := b.Squadron(game.SidePlayer), b.Squadron(game.SideOpponent)

	targetChanges := 0
	for _, e := range entries {
		if e.Category == "scanner" {
			targetChanges++
		}
	}

	return roundStats{
		index:               index,
		rank:                rank,
		opponent:            opponent.Name,
		decided:             g.State() == game.StateGameOver,
		result:              g.Result(),
		ticks:               b.Ticks(),
		elapsed:             b.Elapsed(),
		firstAcquireTick:    firstTick(entries, "scanner", "target_acquired", ""),
		firstShotTick:       firstTick(entries, "weapon", "fired", ""),
		firstHitTick:        firstTick(entries, "combat", "hit", ""),
		firstKillTick:       firstTick(entries, "combat", "kill", ""),
		firstPlayerLossTick: firstSideTick(entries, "state", "destroyed", game.SidePlayer.String()),
		shots:               b.Log.CountCategory("weapon", "fired"),
		hits:                b.Log.CountCategory("combat", "hit"),
		kills:               b.Log.CountCategory("combat", "kill"),
		targetChanges:       targetChanges,
		playerScore:         g.Scores().PlayerOneScore(),
		opponentScore:       g.Scores().PlayerTwoScore(),
		summary:             game.SummarizeRound(player, opponent),
		grades:              game.GradeBattle(b),
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func firstSideTick(entries []game.SimLogEntry, category, key, side string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key && e.Side == side {
			return e.Tick
		}
	}
	return -1
}

// classifyRound labels how a round ended for the report.
func classifyRound(rs roundStats) (string, string) {
	if rs.decided {
		return rs.result.String(), rs.summary.Description
	}
	if rs.shots == 0 {
		return "undecided", "no_shots_fired"
	}
	if rs.hits == 0 {
		return "undecided", "no_hits_landed"
	}
	return "undecided", fmt.Sprintf("attrition_stalled hit_rate=%.2f", accuracy(rs.hits, rs.shots))
}

func printRun(rs roundStats) {
	label, reason := classifyRound(rs)
	fmt.Printf("--- Round %d (level %d vs %s) ---\n", rs.index, rs.rank+1, rs.opponent)
	fmt.Printf("outcome: %s (%s) ticks=%d elapsed=%.1fs score=%d-%d\n",
		label, reason, rs.ticks, rs.elapsed, rs.playerScore, rs.opponentScore)
	fmt.Printf("phase_markers: first_lock=%d first_shot=%d first_hit=%d first_kill=%d first_player_loss=%d\n",
		rs.firstAcquireTick, rs.firstShotTick, rs.firstHitTick, rs.firstKillTick, rs.firstPlayerLossTick)
	fmt.Printf("event_totals: shots=%d hits=%d kills=%d scanner_changes=%d accuracy=%.2f\n",
		rs.shots, rs.hits, rs.kills, rs.targetChanges, accuracy(rs.hits, rs.shots))
	fmt.Printf("summary: %s\n", rs.summary)
	fmt.Print(game.FormatGrades(rs.grades))
	fmt.Println()
}

func printAggregate(all []roundStats, g *game.Game) {
	totalShots := 0
	totalHits := 0
	totalKills := 0
	wins := 0

	shotTicks := make([]int, 0, len(all))
	killTicks := make([]int, 0, len(all))

	type droneAgg struct {
		scoreSum float64
		count    int
		survived int
		good     map[string]int
		bad      map[string]int
	}
	aggs := map[string]*droneAgg{}

	for _, rs := range all {
		totalShots += rs.shots
		totalHits += rs.hits
		totalKills += rs.kills
		if rs.decided && rs.result == game.ResultWin {
			wins++
		}
		if rs.firstShotTick >= 0 {
			shotTicks = append(shotTicks, rs.firstShotTick)
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		for _, gr := range rs.grades {
			if gr.Side != game.SidePlayer {
				continue
			}
			key := gr.Name
			ag, ok := aggs[key]
			if !ok {
				ag = &droneAgg{good: map[string]int{}, bad: map[string]int{}}
				aggs[key] = ag
			}
			ag.scoreSum += gr.Score
			ag.count++
			if gr.Survived {
				ag.survived++
			}
			for _, t := range gr.GoodTraits {
				ag.good[t]++
			}
			for _, t := range gr.BadTraits {
				ag.bad[t]++
			}
		}
	}

	fmt.Println("=== Campaign Aggregate ===")
	fmt.Printf("rounds=%d wins=%d completed=%t final_score=%d\n", len(all), wins, g.Completed(), g.Scores().PlayerOneScore())
	fmt.Printf("avg_events_per_round: shots=%.1f hits=%.1f kills=%.1f\n",
		avg(totalShots, len(all)), avg(totalHits, len(all)), avg(totalKills, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_shot=%s first_kill=%s\n", avgTickString(shotTicks), avgTickString(killTicks))

	fmt.Println("\n=== Player Drone Performance ===")
	type nameScore struct {
		name     string
		avgScore float64
		survRate float64
		topGood  string
		topBad   string
	}
	var rows []nameScore
	for name, ag := range aggs {
		avgS := 0.0
		survR := 0.0
		if ag.count > 0 {
			avgS = ag.scoreSum / float64(ag.count)
			survR = float64(ag.survived) / float64(ag.count) * 100
		}
		rows = append(rows, nameScore{name, avgS, survR, topTrait(ag.good), topTrait(ag.bad)})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].name < rows[j].name
	})
	for _, r := range rows {
		fmt.Printf("  %-12s %s (avg=%.1f)  survival=%.0f%%", r.name, game.PerfLetterGrade(r.avgScore), r.avgScore, r.survRate)
		if r.topGood != "" {
			fmt.Printf("  good=%s", r.topGood)
		}
		if r.topBad != "" {
			fmt.Printf("  bad=%s", r.topBad)
		}
		fmt.Println()
	}

	if len(all) > 0 {
		grades := collectAllGrades(all)
		pt, ot, pSurv, oSurv := sideSurvivalCounts(grades)
		fmt.Println("\n--- Side Summary (across all rounds) ---")
		fmt.Printf("survivors: player=%d/%d opponent=%d/%d\n", pSurv, pt, oSurv, ot)
		fmt.Print(game.FormatGradesSummary(grades))
	}
}

func sideSurvivalCounts(grades []game.DroneGrade) (playerTotal, opponentTotal, playerSurvivors, opponentSurvivors int) {
	for _, g := range grades {
		switch g.Side {
		case game.SidePlayer:
			playerTotal++
			if g.Survived {
				playerSurvivors++
			}
		case game.SideOpponent:
			opponentTotal++
			if g.Survived {
				opponentSurvivors++
			}
		}
	}
	return playerTotal, opponentTotal, playerSurvivors, opponentSurvivors
}

func accuracy(hits, shots int) float64 {
	if shots <= 0 {
		return 0
	}
	return float64(hits) / float64(shots)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func topTrait(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := ""
	bestN := 0
	for _, k := range keys {
		if counts[k] > bestN {
			best = k
			bestN = counts[k]
		}
	}
	return fmt.Sprintf("%s(%d)", best, bestN)
}

func collectAllGrades(all []roundStats) []game.DroneGrade {
	var out []game.DroneGrade
	for _, rs := range all {
		out = append(out, rs.grades...)
	}
	return out
}
