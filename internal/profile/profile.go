// internal/profile/profile.go
//
// PlayerProfile: cumulative counters, badges and per-slot daily results.
//
// Profiles are treated as immutable snapshots by the session engine: it reads
// one, derives a new one with Clone, and hands the copy back. All counters
// default to zero when absent from stored data.

package profile

import (
	"slices"

	"github.com/robalobadob/ninewords/internal/badges"
	"github.com/robalobadob/ninewords/internal/daily"
	"github.com/robalobadob/ninewords/internal/puzzle"
)

// DailyResult is written once per slot on first resolution and never changed.
type DailyResult struct {
	Solved      bool     `json:"solved"`
	TriesUsed   int      `json:"triesUsed"`
	TimeSeconds int      `json:"timeSeconds,omitempty"` // wins only
	Board       []string `json:"board,omitempty"`       // losses only, for the share grid
	PuzzleIndex int      `json:"puzzleIndex"`
	ResolvedOn  string   `json:"resolvedOn,omitempty"` // UTC date the result was first recorded
}

// Profile is the persisted player aggregate.
type Profile struct {
	PlayerID         string                 `json:"playerId"`
	TotalScore       int                    `json:"totalScore"`
	CurrentStreak    int                    `json:"currentStreak"`
	DayStreak        int                    `json:"dayStreak"`
	GamesPlayed      int                    `json:"gamesPlayed"`
	TotalSolved      int                    `json:"totalSolved"`
	EasySolved       int                    `json:"easySolved"`
	HardSolved       int                    `json:"hardSolved"`
	ImpossibleSolved int                    `json:"impossibleSolved"`
	PerfectSolves    int                    `json:"perfectSolves"`
	Badges           []badges.Badge         `json:"badges"`
	DailyResults     map[string]DailyResult `json:"dailyResults"`
}

// New returns an empty profile with the default badge set.
func New(playerID string) Profile {
	return Profile{
		PlayerID:     playerID,
		Badges:       badges.Defaults(),
		DailyResults: map[string]DailyResult{},
	}
}

// Normalize fills nil collections and adds any badge definitions the stored
// profile predates.
func (p Profile) Normalize() Profile {
	out := p.Clone()
	if out.DailyResults == nil {
		out.DailyResults = map[string]DailyResult{}
	}
	out.Badges = badges.Merge(out.Badges)
	return out
}

// Clone deep-copies p.
func (p Profile) Clone() Profile {
	out := p
	out.Badges = slices.Clone(p.Badges)
	out.DailyResults = make(map[string]DailyResult, len(p.DailyResults))
	for k, r := range p.DailyResults {
		r.Board = slices.Clone(r.Board)
		out.DailyResults[k] = r
	}
	return out
}

// Result returns the stored result for a slot.
func (p Profile) Result(s daily.Slot) (DailyResult, bool) {
	r, ok := p.DailyResults[s.Key()]
	return r, ok
}

// PlayedOn reports whether any result was recorded on date, whichever slot
// it belongs to. Results stored before ResolvedOn existed count for their own
// slot date.
func (p Profile) PlayedOn(date string) bool {
	for k, r := range p.DailyResults {
		on := r.ResolvedOn
		if on == "" {
			slot, err := daily.ParseSlotKey(k)
			if err != nil {
				continue
			}
			on = slot.Date
		}
		if on == date {
			return true
		}
	}
	return false
}

// SolvedIn returns the per-tier solve counter.
func (p Profile) SolvedIn(d puzzle.Difficulty) int {
	switch d {
	case puzzle.Easy:
		return p.EasySolved
	case puzzle.Hard:
		return p.HardSolved
	case puzzle.Impossible:
		return p.ImpossibleSolved
	}
	return 0
}

// AddSolve increments the per-tier and total solve counters.
func (p *Profile) AddSolve(d puzzle.Difficulty) {
	p.TotalSolved++
	switch d {
	case puzzle.Easy:
		p.EasySolved++
	case puzzle.Hard:
		p.HardSolved++
	case puzzle.Impossible:
		p.ImpossibleSolved++
	}
}

// Stats snapshots the counters the badge engine reads.
func (p Profile) Stats() badges.Stats {
	return badges.Stats{
		CurrentStreak:    p.CurrentStreak,
		DayStreak:        p.DayStreak,
		TotalSolved:      p.TotalSolved,
		EasySolved:       p.SolvedIn(puzzle.Easy),
		HardSolved:       p.SolvedIn(puzzle.Hard),
		ImpossibleSolved: p.SolvedIn(puzzle.Impossible),
		PerfectSolves:    p.PerfectSolves,
		TotalScore:       p.TotalScore,
	}
}
