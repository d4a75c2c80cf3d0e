package game

import "math"

// SideScore is the counter pair shown for one side.
type SideScore struct {
	Score int
	Kills int
}

// ScoreManager tracks per-side score and kill counters. Counters only go up
// between resets.
type ScoreManager struct {
	sides [2]SideScore
}

// NewScoreManager returns zeroed counters.
func NewScoreManager() *ScoreManager {
	return &ScoreManager{}
}

// RecordHit credits side with the damage dealt, rounded to whole points.
func (sm *ScoreManager) RecordHit(side Side, damage float64) {
	if damage <= 0 {
		return
	}
	sm.sides[side].Score += int(math.Round(damage))
}

// RecordKill credits side with one kill and the victim's value.
func (sm *ScoreManager) RecordKill(side Side, victimValue float64) {
	sm.sides[side].Kills++
	if victimValue > 0 {
		sm.sides[side].Score += int(math.Round(victimValue))
	}
}

// AddBonus adds flat points to side.
func (sm *ScoreManager) AddBonus(side Side, points int) {
	if points > 0 {
		sm.sides[side].Score += points
	}
}

// Side returns the counters for side.
func (sm *ScoreManager) Side(side Side) SideScore { return sm.sides[side] }

// PlayerOneScore is the local player's score.
func (sm *ScoreManager) PlayerOneScore() int { return sm.sides[SidePlayer].Score }

// PlayerTwoScore is the opponent's score.
func (sm *ScoreManager) PlayerTwoScore() int { return sm.sides[SideOpponent].Score }

// ResetPlayerOne zeroes the player's counters.
func (sm *ScoreManager) ResetPlayerOne() { sm.sides[SidePlayer] = SideScore{} }

// ResetPlayerTwo zeroes the opponent's counters.
func (sm *ScoreManager) ResetPlayerTwo() { sm.sides[SideOpponent] = SideScore{} }

// Reset zeroes both sides.
func (sm *ScoreManager) Reset() { sm.sides = [2]SideScore{} }
