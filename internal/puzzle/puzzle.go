// internal/puzzle/puzzle.go
//
// Core type definitions for puzzles.
// Defines:
//   - Difficulty: EASY / HARD / IMPOSSIBLE tiers.
//   - Puzzle:     an immutable nine-word target ordering plus narrative text.

package puzzle

import (
	"fmt"
	"strings"
)

// Size is the number of tiles on every board (a 3x3 grid).
const Size = 9

// Difficulty tiers. The string form is what profiles and the catalog store.
type Difficulty string

const (
	Easy       Difficulty = "EASY"
	Hard       Difficulty = "HARD"
	Impossible Difficulty = "IMPOSSIBLE"
)

// Difficulties lists every tier in ascending order.
var Difficulties = []Difficulty{Easy, Hard, Impossible}

// ParseDifficulty accepts any casing ("easy", "Hard").
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Hard, Impossible:
		return true
	}
	return false
}

// InitialTries is the submission budget a fresh session of this tier starts with.
func (d Difficulty) InitialTries() int {
	switch d {
	case Easy:
		return 4
	case Hard:
		return 3
	case Impossible:
		return 2
	}
	return 0
}

// Puzzle is read-only once loaded from the catalog.
type Puzzle struct {
	Index      int        `json:"index" yaml:"-"`
	Solution   []string   `json:"-" yaml:"solution"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	Narrative  string     `json:"-" yaml:"narrative"`
}

// Words returns a copy of the solution so callers cannot mutate the catalog.
func (p Puzzle) Words() []string {
	return append([]string(nil), p.Solution...)
}

// validate checks the shape the session engine relies on.
func (p Puzzle) validate() error {
	if !p.Difficulty.Valid() {
		return fmt.Errorf("puzzle %d: unknown difficulty %q", p.Index, p.Difficulty)
	}
	if len(p.Solution) != Size {
		return fmt.Errorf("puzzle %d: want %d words, got %d", p.Index, Size, len(p.Solution))
	}
	seen := make(map[string]struct{}, Size)
	for _, w := range p.Solution {
		if w == "" {
			return fmt.Errorf("puzzle %d: empty word", p.Index)
		}
		if _, dup := seen[w]; dup {
			return fmt.Errorf("puzzle %d: duplicate word %q", p.Index, w)
		}
		seen[w] = struct{}{}
	}
	return nil
}
