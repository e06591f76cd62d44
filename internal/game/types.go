// internal/game/types.go
//
// Core type definitions for the puzzle session engine.
// Defines:
//   - State:     loading / generating / playing / solved.
//   - Outcome:   win / loss once solved.
//   - Selection: the (date, type, index) tuple the caller supplies.
//   - View:      the snapshot handed to the presentation layer.

package game

import (
	"errors"
	"strconv"

	"github.com/robalobadob/ninewords/internal/badges"
	"github.com/robalobadob/ninewords/internal/puzzle"
	"github.com/robalobadob/ninewords/internal/scoring"
)

// State is the session lifecycle stage.
type State string

const (
	StateLoading    State = "loading"
	StateGenerating State = "generating"
	StatePlaying    State = "playing"
	StateSolved     State = "solved"
)

// Outcome is set once the session reaches StateSolved.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

var (
	ErrNotPlaying = errors.New("game: session is not playing")
	ErrBadBoard   = errors.New("game: board must hold nine words")
	ErrBadIndex   = errors.New("game: tile index out of range")
)

// Selection identifies the puzzle the caller wants loaded.
type Selection struct {
	Date  string            `json:"date"`
	Type  puzzle.Difficulty `json:"type"`
	Index int               `json:"index"`
}

// Key is the composite puzzle identity used for reload suppression.
func (s Selection) Key() string {
	return s.Date + "|" + string(s.Type) + "|" + strconv.Itoa(s.Index)
}

// View is a read-only snapshot of the session for rendering.
type View struct {
	ID             string          `json:"id"`
	State          State           `json:"state"`
	Selection      Selection       `json:"selection"`
	Difficulty     string          `json:"difficulty,omitempty"`
	Board          []string        `json:"board"`
	SystemLocked   [9]bool         `json:"systemLocked"`
	UserLocked     [9]bool         `json:"userLocked"`
	TriesRemaining int             `json:"triesRemaining"`
	InitialTries   int             `json:"initialTries"`
	MoveCount      int             `json:"moveCount"`
	Outcome        Outcome         `json:"outcome,omitempty"`
	Replay         bool            `json:"replay"`
	Feedback       string          `json:"feedback,omitempty"`
	Narrative      string          `json:"narrative,omitempty"`
	Score          *scoring.Result `json:"score,omitempty"`
	NewBadge       *badges.Badge   `json:"newBadge,omitempty"`
	Shake          bool            `json:"shake"`
	ScreenShake    bool            `json:"screenShake"`
	HintArmed      bool            `json:"hintArmed"`
	HintOpen       bool            `json:"hintOpen"`
	SaveFailed     bool            `json:"saveFailed"`
}

// SubmitResult describes what one submit did.
type SubmitResult struct {
	Correct   bool    `json:"correct"`
	Outcome   Outcome `json:"outcome,omitempty"`
	NewLocks  int     `json:"newLocks"`
	Message   string  `json:"message"`
	Replay    bool    `json:"replay"`
	HintArmed bool    `json:"hintArmed"`
}

// Resolution is reported to the OnResolved hook for first-time resolutions.
type Resolution struct {
	Selection Selection
	Outcome   Outcome
	TriesUsed int
	ElapsedMs int
}
