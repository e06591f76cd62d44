// internal/game/share.go
//
// Spoiler-free share text for a stored daily result.
// The grid shows which positions were right, never the words themselves.

package game

import (
	"strconv"
	"strings"

	"github.com/robalobadob/ninewords/internal/daily"
	"github.com/robalobadob/ninewords/internal/profile"
)

const (
	shareHit  = "🟩"
	shareMiss = "⬜"
)

// ShareText renders a spoiler-free 3x3 grid for a stored result. Wins are all
// green; losses mark the positions the final board had right.
func ShareText(slot daily.Slot, r profile.DailyResult, solution []string) string {
	var b strings.Builder
	b.WriteString("Ninewords ")
	b.WriteString(slot.Date)
	b.WriteString(" ")
	b.WriteString(string(slot.Difficulty))
	b.WriteString(" ")
	if r.Solved {
		b.WriteString(strconv.Itoa(r.TriesUsed))
	} else {
		b.WriteString("X")
	}
	b.WriteString("/")
	b.WriteString(strconv.Itoa(slot.Difficulty.InitialTries()))

	for i := range solution {
		if i%3 == 0 {
			b.WriteString("\n")
		}
		hit := r.Solved || (i < len(r.Board) && r.Board[i] == solution[i])
		if hit {
			b.WriteString(shareHit)
		} else {
			b.WriteString(shareMiss)
		}
	}
	return b.String()
}
