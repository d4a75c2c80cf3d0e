package game

import (
	"fmt"
	"sort"
	"strings"
)

// Grading weights. Each component scores 0-100 before weighting.
const (
	perfWeightKills    = 0.30
	perfWeightDamage   = 0.30
	perfWeightAccuracy = 0.20
	perfWeightSurvival = 0.20

	// perfDamageRef is the damage dealt that earns a full damage score,
	// as a multiple of the drone's own starting health.
	perfDamageRef = 1.5
	// perfMinShots is the fewest shots before accuracy counts.
	perfMinShots = 3
)

// DroneGrade is the after-action grade of one drone.
type DroneGrade struct {
	Label    string
	Name     string
	Side     Side
	ID       int
	Survived bool

	Score float64
	Grade string

	KillScore     float64
	DamageScore   float64
	AccuracyScore float64 // -1 when too few shots to judge
	SurvivalScore float64

	Kills       int
	DamageDealt float64
	ShotsFired  int
	Hits        int
	HealthLeft  float64

	GoodTraits []string
	BadTraits  []string
}

// GradeBattle grades every drone that started the round.
func GradeBattle(b *Battle) []DroneGrade {
	var drones []*Drone
	for _, side := range []Side{SidePlayer, SideOpponent} {
		drones = append(drones, b.Squadron(side).Members()...)
	}
	return GradeDrones(drones)
}

// GradeDrones grades drones, player side first, best score first.
func GradeDrones(drones []*Drone) []DroneGrade {
	grades := make([]DroneGrade, 0, len(drones))
	for _, d := range drones {
		grades = append(grades, computeGrade(d))
	}
	sort.SliceStable(grades, func(i, j int) bool {
		if grades[i].Side != grades[j].Side {
			return grades[i].Side < grades[j].Side
		}
		if grades[i].Score != grades[j].Score {
			return grades[i].Score > grades[j].Score
		}
		return grades[i].ID < grades[j].ID
	})
	return grades
}

func computeGrade(d *Drone) DroneGrade {
	g := DroneGrade{
		Label:         d.Label(),
		Name:          d.Name,
		Side:          d.Side,
		ID:            d.ID,
		Survived:      d.Alive,
		Kills:         d.Kills,
		DamageDealt:   d.DamageDealt,
		ShotsFired:    d.ShotsFired,
		Hits:          d.Hits,
		HealthLeft:    d.Health.Current(),
		AccuracyScore: -1,
	}

	g.KillScore = perfClamp(float64(d.Kills) * 50)
	ref := d.Health.Max() * perfDamageRef
	if ref > 0 {
		g.DamageScore = perfClamp(d.DamageDealt / ref * 100)
	}
	if d.Alive {
		g.SurvivalScore = perfClamp(50 + 50*d.Health.Fraction())
	}

	weights := perfWeightKills + perfWeightDamage + perfWeightSurvival
	total := g.KillScore*perfWeightKills + g.DamageScore*perfWeightDamage + g.SurvivalScore*perfWeightSurvival
	if d.ShotsFired >= perfMinShots {
		g.AccuracyScore = perfClamp(d.Accuracy() * 100)
		total += g.AccuracyScore * perfWeightAccuracy
		weights += perfWeightAccuracy
	}
	g.Score = perfClamp(total / weights)
	g.Grade = PerfLetterGrade(g.Score)
	g.GoodTraits, g.BadTraits = perfDetectTraits(d, g)
	return g
}

func perfDetectTraits(d *Drone, g DroneGrade) (good, bad []string) {
	if d.Kills >= 2 {
		good = append(good, "ace")
	}
	if g.AccuracyScore >= 60 {
		good = append(good, "sharpshooter")
	}
	if d.Alive && d.Health.Fraction() >= 0.9 {
		good = append(good, "untouched")
	}
	if d.ShotsFired == 0 {
		bad = append(bad, "never_fired")
	} else if g.AccuracyScore >= 0 && g.AccuracyScore < 15 {
		bad = append(bad, "spray_and_pray")
	}
	if !d.Alive && d.DamageDealt == 0 {
		bad = append(bad, "lost_without_a_hit")
	}
	return good, bad
}

// FormatGrades returns a human-readable after-action report.
func FormatGrades(grades []DroneGrade) string {
	var sb strings.Builder
	sb.WriteString("\n=== Drone Performance Grades ===\n")

	currentSide := Side(-1)
	for _, g := range grades {
		if g.Side != currentSide {
			currentSide = g.Side
			fmt.Fprintf(&sb, "\n--- %s ---\n", strings.ToUpper(g.Side.String()))
		}

		status := "survived"
		if !g.Survived {
			status = "destroyed"
		}
		fmt.Fprintf(&sb, "  %-3s  %-4s  %-16s [%s]  kills=%d  dmg=%.0f  shots=%d  hits=%d\n",
			g.Grade, g.Label, g.Name, status, g.Kills, g.DamageDealt, g.ShotsFired, g.Hits)

		if len(g.GoodTraits) > 0 {
			fmt.Fprintf(&sb, "       Good: %s\n", strings.Join(g.GoodTraits, ", "))
		}
		if len(g.BadTraits) > 0 {
			fmt.Fprintf(&sb, "       Bad:  %s\n", strings.Join(g.BadTraits, ", "))
		}

		scores := []string{
			fmt.Sprintf("Kills=%.0f", g.KillScore),
			fmt.Sprintf("Damage=%.0f", g.DamageScore),
		}
		if g.AccuracyScore >= 0 {
			scores = append(scores, fmt.Sprintf("Accuracy=%.0f", g.AccuracyScore))
		}
		scores = append(scores, fmt.Sprintf("Survival=%.0f", g.SurvivalScore))
		fmt.Fprintf(&sb, "       Scores: %s\n", strings.Join(scores, "  "))
	}

	return sb.String()
}

// FormatGradesSummary returns a compact per-side summary.
func FormatGradesSummary(grades []DroneGrade) string {
	var sb strings.Builder

	type sideStats struct {
		count     int
		scoreSum  float64
		survived  int
		goodCount map[string]int
		badCount  map[string]int
	}
	sides := map[Side]*sideStats{}
	for _, g := range grades {
		ss, ok := sides[g.Side]
		if !ok {
			ss = &sideStats{goodCount: map[string]int{}, badCount: map[string]int{}}
			sides[g.Side] = ss
		}
		ss.count++
		ss.scoreSum += g.Score
		if g.Survived {
			ss.survived++
		}
		for _, t := range g.GoodTraits {
			ss.goodCount[t]++
		}
		for _, t := range g.BadTraits {
			ss.badCount[t]++
		}
	}

	for _, side := range []Side{SidePlayer, SideOpponent} {
		ss, ok := sides[side]
		if !ok {
			continue
		}
		avg := 0.0
		if ss.count > 0 {
			avg = ss.scoreSum / float64(ss.count)
		}
		fmt.Fprintf(&sb, "  %s: avg_score=%.1f (%s)  survived=%d/%d\n",
			strings.ToUpper(side.String()), avg, PerfLetterGrade(avg), ss.survived, ss.count)

		if len(ss.goodCount) > 0 {
			fmt.Fprintf(&sb, "    Top good: %s\n", perfTopTraits(ss.goodCount, 4))
		}
		if len(ss.badCount) > 0 {
			fmt.Fprintf(&sb, "    Top bad:  %s\n", perfTopTraits(ss.badCount, 4))
		}
	}

	return sb.String()
}

func perfClamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// PerfLetterGrade maps a 0-100 score to a letter grade.
func PerfLetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

func perfTopTraits(counts map[string]int, n int) string {
	type kv struct {
		trait string
		count int
	}
	var items []kv
	for k, v := range counts {
		items = append(items, kv{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].trait < items[j].trait
	})
	if len(items) > n {
		items = items[:n]
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s(%d)", it.trait, it.count)
	}
	return strings.Join(parts, ", ")
}
