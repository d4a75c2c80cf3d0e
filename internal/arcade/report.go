package arcade

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Drone-Squadron/internal/game"
)

// Report renders the after-action report of the current round: outcome,
// squadron summary, drone grades and the event counts. Empty when stopped.
func Report(g *game.Game) string {
	b := g.Battle()
	if b == nil {
		return ""
	}
	player, opponent := b.Squadron(game.SidePlayer), b.Squadron(game.SideOpponent)

	var sb strings.Builder
	fmt.Fprintf(&sb, "DRONE SQUADRON - level %d - %s vs %s\n", g.Rank()+1, player.Name, opponent.Name)
	fmt.Fprintf(&sb, "state=%s result=%s ticks=%d elapsed=%.1fs\n", g.State(), g.Result(), b.Ticks(), b.Elapsed())
	fmt.Fprintf(&sb, "score P1=%d P2=%d\n\n", g.Scores().PlayerOneScore(), g.Scores().PlayerTwoScore())
	sb.WriteString(game.SummarizeRound(player, opponent).String())
	sb.WriteString("\n\n")
	grades := game.GradeBattle(b)
	sb.WriteString(game.FormatGrades(grades))
	sb.WriteString(game.FormatGradesSummary(grades))
	sb.WriteString("\n")
	sb.WriteString(b.Log.Summary(b.Ticks(), player, opponent))
	return sb.String()
}
