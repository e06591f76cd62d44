// internal/badges/badges.go
//
// Collectible badges and the pure functions that advance them.
//
// Evaluation order after a win:
//   1. SyncProgress     - rewrite counters from a stats snapshot.
//   2. CheckEvent       - one-shot unlocks tied to the resolving submit.
//   3. CheckThresholds  - unlock anything whose progress reached its target.
//   4. CheckPolymath    - unlock once every tier has a solve.
//
// After a loss only streak resets, SyncProgress and CheckThresholds run.
// Every function returns a new slice; the input is never modified.

package badges

import (
	"strings"

	"github.com/robalobadob/ninewords/internal/puzzle"
)

// Manual badge ids (no target; unlocked by events).
const (
	FirstHard       = "first_hard"
	FirstImpossible = "first_impossible"
	LastGasp        = "last_gasp"
	SpeedDemon      = "speed_demon"
	Polymath        = "polymath"
)

const speedDemonSeconds = 30

// Badge is one collectible. Unlocked never reverts to false.
type Badge struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Progress     int    `json:"progress"`
	Target       int    `json:"target,omitempty"` // 0 for manual unlocks
	Unlocked     bool   `json:"unlocked"`
	DateUnlocked string `json:"dateUnlocked,omitempty"`
}

// Stats is the snapshot SyncProgress reads counters from.
type Stats struct {
	CurrentStreak    int
	DayStreak        int
	TotalSolved      int
	EasySolved       int
	HardSolved       int
	ImpossibleSolved int
	PerfectSolves    int
	TotalScore       int
}

// Event describes the winning submit for single-event checks.
type Event struct {
	Difficulty     puzzle.Difficulty
	TriesRemaining int
	ElapsedSeconds float64
}

// Defaults returns the badge set a new profile starts with.
func Defaults() []Badge {
	return []Badge{
		{ID: "streak3", Name: "On a Roll", Description: "Solve 3 puzzles in a row", Target: 3},
		{ID: "streak7", Name: "Hot Hand", Description: "Solve 7 puzzles in a row", Target: 7},
		{ID: "streak15", Name: "Unbreakable", Description: "Solve 15 puzzles in a row", Target: 15},
		{ID: "daily7", Name: "Regular", Description: "Play 7 days in a row", Target: 7},
		{ID: "daily30", Name: "Devotee", Description: "Play 30 days in a row", Target: 30},
		{ID: "solved10", Name: "Wordsmith", Description: "Solve 10 puzzles", Target: 10},
		{ID: "solved50", Name: "Loremaster", Description: "Solve 50 puzzles", Target: 50},
		{ID: "easy10", Name: "Warm Up", Description: "Solve 10 easy puzzles", Target: 10},
		{ID: "hard10", Name: "Tough Cookie", Description: "Solve 10 hard puzzles", Target: 10},
		{ID: "impossible5", Name: "Mind Bender", Description: "Solve 5 impossible puzzles", Target: 5},
		{ID: "perfect5", Name: "Flawless", Description: "Solve 5 puzzles on the first try", Target: 5},
		{ID: "score5000", Name: "High Roller", Description: "Reach 5000 total points", Target: 5000},
		{ID: FirstHard, Name: "Step Up", Description: "Solve a hard puzzle"},
		{ID: FirstImpossible, Name: "Nothing Is Impossible", Description: "Solve an impossible puzzle"},
		{ID: LastGasp, Name: "Last Gasp", Description: "Win on your last try"},
		{ID: SpeedDemon, Name: "Speed Demon", Description: "Solve an easy puzzle in under 30 seconds"},
		{ID: Polymath, Name: "Polymath", Description: "Solve a puzzle of every difficulty"},
	}
}

// Merge adds any default badges missing from list, keeping existing progress.
func Merge(list []Badge) []Badge {
	out := clone(list)
	have := make(map[string]struct{}, len(out))
	for _, b := range out {
		have[b.ID] = struct{}{}
	}
	for _, b := range Defaults() {
		if _, ok := have[b.ID]; !ok {
			out = append(out, b)
		}
	}
	return out
}

// progressFor maps a badge id to the stat it tracks.
func progressFor(id string, s Stats) (int, bool) {
	switch {
	case strings.HasPrefix(id, "streak"):
		return s.CurrentStreak, true
	case strings.HasPrefix(id, "daily"):
		return s.DayStreak, true
	case strings.HasPrefix(id, "solved"):
		return s.TotalSolved, true
	case strings.HasPrefix(id, "easy"):
		return s.EasySolved, true
	case strings.HasPrefix(id, "hard"):
		return s.HardSolved, true
	case strings.HasPrefix(id, "impossible"):
		return s.ImpossibleSolved, true
	case strings.HasPrefix(id, "perfect"):
		return s.PerfectSolves, true
	case strings.HasPrefix(id, "score"):
		return s.TotalScore, true
	}
	return 0, false
}

// SyncProgress rewrites each tracked badge's progress from s.
func SyncProgress(list []Badge, s Stats) []Badge {
	out := clone(list)
	for i := range out {
		if p, ok := progressFor(out[i].ID, s); ok {
			out[i].Progress = p
		}
	}
	return out
}

// ResetStreaks zeroes progress on streak badges. Unlocked state is kept.
func ResetStreaks(list []Badge) []Badge {
	out := clone(list)
	for i := range out {
		if strings.HasPrefix(out[i].ID, "streak") {
			out[i].Progress = 0
		}
	}
	return out
}

// Unlock marks id unlocked on date. It reports whether this call unlocked it;
// an already-unlocked or missing id is a no-op.
func Unlock(list []Badge, id, date string) ([]Badge, *Badge) {
	out := clone(list)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if out[i].Unlocked {
			return out, nil
		}
		out[i].Unlocked = true
		out[i].DateUnlocked = date
		b := out[i]
		return out, &b
	}
	return out, nil
}

// CheckEvent unlocks one-shot badges for a winning submit.
func CheckEvent(list []Badge, e Event, date string) ([]Badge, *Badge) {
	var ids []string
	switch e.Difficulty {
	case puzzle.Hard:
		ids = append(ids, FirstHard)
	case puzzle.Impossible:
		ids = append(ids, FirstImpossible)
	}
	if e.TriesRemaining == 1 {
		ids = append(ids, LastGasp)
	}
	if e.Difficulty == puzzle.Easy && e.ElapsedSeconds < speedDemonSeconds {
		ids = append(ids, SpeedDemon)
	}

	out := clone(list)
	var first *Badge
	for _, id := range ids {
		var b *Badge
		out, b = Unlock(out, id, date)
		first = firstOf(first, b)
	}
	return out, first
}

// CheckThresholds unlocks every targeted badge whose progress reached its target.
func CheckThresholds(list []Badge, date string) ([]Badge, *Badge) {
	out := clone(list)
	var first *Badge
	for _, b := range list {
		if b.Unlocked || b.Target <= 0 || b.Progress < b.Target {
			continue
		}
		var nb *Badge
		out, nb = Unlock(out, b.ID, date)
		first = firstOf(first, nb)
	}
	return out, first
}

// CheckPolymath unlocks Polymath once all three tiers have at least one solve.
func CheckPolymath(list []Badge, s Stats, date string) ([]Badge, *Badge) {
	if s.EasySolved < 1 || s.HardSolved < 1 || s.ImpossibleSolved < 1 {
		return clone(list), nil
	}
	return Unlock(list, Polymath, date)
}

// EvaluateWin runs the full win pipeline and returns the first newly unlocked badge.
func EvaluateWin(list []Badge, s Stats, e Event, date string) ([]Badge, *Badge) {
	out := SyncProgress(list, s)
	var first, b *Badge
	out, b = CheckEvent(out, e, date)
	first = firstOf(first, b)
	out, b = CheckThresholds(out, date)
	first = firstOf(first, b)
	out, b = CheckPolymath(out, s, date)
	first = firstOf(first, b)
	return out, first
}

// EvaluateLoss resets streak progress, syncs counters and re-checks thresholds.
func EvaluateLoss(list []Badge, s Stats, date string) ([]Badge, *Badge) {
	out := SyncProgress(ResetStreaks(list), s)
	return CheckThresholds(out, date)
}

// Find returns the badge with id, if present.
func Find(list []Badge, id string) (Badge, bool) {
	for _, b := range list {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

func firstOf(cur, next *Badge) *Badge {
	if cur != nil {
		return cur
	}
	return next
}

func clone(list []Badge) []Badge {
	return append([]Badge(nil), list...)
}
