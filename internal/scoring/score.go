// Package scoring maps a win to points.
package scoring

import "github.com/robalobadob/ninewords/internal/puzzle"

const (
	streakStep = 10
	streakCap  = 50
)

// Result is the breakdown shown to the player after a win.
type Result struct {
	Base        int `json:"base"`
	StreakBonus int `json:"streakBonus"`
	Total       int `json:"total"`
}

// baseTable is keyed by difficulty then tries remaining at the winning submit.
var baseTable = map[puzzle.Difficulty]map[int]int{
	puzzle.Easy:       {4: 125, 3: 100, 2: 75, 1: 50},
	puzzle.Hard:       {3: 250, 2: 200, 1: 150},
	puzzle.Impossible: {2: 750, 1: 500},
}

// Score computes points for a win. streak is the puzzle streak before this win.
// Unknown difficulty/tries combinations have a base of 0.
func Score(d puzzle.Difficulty, triesRemaining, streak int) Result {
	base := baseTable[d][triesRemaining]
	bonus := StreakBonus(streak)
	return Result{Base: base, StreakBonus: bonus, Total: base + bonus}
}

// StreakBonus is streak*10 capped at 50.
func StreakBonus(streak int) int {
	if streak <= 0 {
		return 0
	}
	return min(streak*streakStep, streakCap)
}
