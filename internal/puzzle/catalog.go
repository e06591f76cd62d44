// internal/puzzle/catalog.go
//
// Puzzle catalog loading.
//
// Initialization behavior (Load):
//   1. If PUZZLES_FILE is set, parse that YAML file.
//   2. Otherwise parse the catalog embedded in the assets package.
//
// The catalog is read-only for the lifetime of the process; a puzzle's identity
// is its index in the list.

package puzzle

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/ninewords/assets"
)

// Catalog is the read-only puzzle source consumed by the session engine.
type Catalog interface {
	// Puzzle returns the puzzle at index, or false when out of range.
	Puzzle(index int) (Puzzle, bool)
	// Len reports how many puzzles the catalog holds.
	Len() int
	// IndicesFor lists catalog indices of a difficulty tier, ascending.
	IndicesFor(d Difficulty) []int
}

type document struct {
	Puzzles []Puzzle `yaml:"puzzles"`
}

// List is a slice-backed Catalog.
type List struct {
	puzzles []Puzzle
	byTier  map[Difficulty][]int
}

// NewList validates puzzles and assigns their indices.
func NewList(puzzles []Puzzle) (*List, error) {
	l := &List{byTier: make(map[Difficulty][]int)}
	for i, p := range puzzles {
		p.Index = i
		p.Difficulty = Difficulty(strings.ToUpper(string(p.Difficulty)))
		if err := p.validate(); err != nil {
			return nil, err
		}
		l.puzzles = append(l.puzzles, p)
		l.byTier[p.Difficulty] = append(l.byTier[p.Difficulty], i)
	}
	if len(l.puzzles) == 0 {
		return nil, errors.New("puzzle: catalog is empty")
	}
	return l, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*List, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("puzzle: parse catalog: %w", err)
	}
	return NewList(doc.Puzzles)
}

func (l *List) Puzzle(index int) (Puzzle, bool) {
	if index < 0 || index >= len(l.puzzles) {
		return Puzzle{}, false
	}
	return l.puzzles[index], true
}

func (l *List) Len() int { return len(l.puzzles) }

func (l *List) IndicesFor(d Difficulty) []int {
	return append([]int(nil), l.byTier[d]...)
}

var (
	loadOnce sync.Once
	loaded   *List
	loadErr  error
)

// Load reads the catalog exactly once, from PUZZLES_FILE or the embedded default.
func Load() (*List, error) {
	loadOnce.Do(func() {
		var data []byte
		if path := os.Getenv("PUZZLES_FILE"); path != "" {
			data, loadErr = os.ReadFile(path)
		} else {
			data, loadErr = assets.Puzzles()
		}
		if loadErr != nil {
			return
		}
		loaded, loadErr = Parse(data)
	})
	return loaded, loadErr
}
