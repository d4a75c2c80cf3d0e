package game

import "fmt"

// Result is the decision of a round from the player's point of view.
type Result int

const (
	ResultNone Result = iota // undecided, or cut off before either side fell
	ResultWin
	ResultLoss
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLoss:
		return "loss"
	case ResultDraw:
		return "draw"
	case ResultNone:
		return "none"
	default:
		return "unknown"
	}
}

// resultFromHealth decides a round from the aggregate health of each side.
func resultFromHealth(player, opponent float64) Result {
	switch {
	case player <= 0 && opponent <= 0:
		return ResultDraw
	case player <= 0:
		return ResultLoss
	case opponent <= 0:
		return ResultWin
	default:
		return ResultNone
	}
}

// RoundSummary explains how a round ended.
type RoundSummary struct {
	Result            Result
	PlayerSurvivors   int
	PlayerTotal       int
	OpponentSurvivors int
	OpponentTotal     int
	PlayerHealth      float64
	OpponentHealth    float64
	Description       string
}

// SummarizeRound reads both squadrons and classifies the end of a round.
// A battle cut off while both sides still fly is reported as ResultNone with
// the side holding more health fraction named in the description.
func SummarizeRound(player, opponent *Squadron) RoundSummary {
	s := RoundSummary{
		PlayerHealth:   player.Health(),
		OpponentHealth: opponent.Health(),
	}
	if player != nil {
		s.PlayerSurvivors = player.AliveCount()
		s.PlayerTotal = len(player.Members())
	}
	if opponent != nil {
		s.OpponentSurvivors = opponent.AliveCount()
		s.OpponentTotal = len(opponent.Members())
	}
	s.Result = resultFromHealth(s.PlayerHealth, s.OpponentHealth)

	switch s.Result {
	case ResultWin:
		s.Description = "decisive_player_victory_opponent_eliminated"
	case ResultLoss:
		s.Description = "decisive_opponent_victory_player_eliminated"
	case ResultDraw:
		s.Description = "mutual_annihilation"
	default:
		pf := healthFraction(s.PlayerHealth, player)
		of := healthFraction(s.OpponentHealth, opponent)
		switch {
		case pf-of > 0.2:
			s.Description = "inconclusive_player_ahead"
		case of-pf > 0.2:
			s.Description = "inconclusive_opponent_ahead"
		default:
			s.Description = "inconclusive_even"
		}
	}
	return s
}

// String formats the summary as one report line.
func (s RoundSummary) String() string {
	return fmt.Sprintf("%s (%s) player %d/%d hp=%.0f  opponent %d/%d hp=%.0f",
		s.Result, s.Description,
		s.PlayerSurvivors, s.PlayerTotal, s.PlayerHealth,
		s.OpponentSurvivors, s.OpponentTotal, s.OpponentHealth)
}

func healthFraction(current float64, sq *Squadron) float64 {
	if sq == nil {
		return 0
	}
	max := sq.MaxHealth()
	if max <= 0 {
		return 0
	}
	return current / max
}
