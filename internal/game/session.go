// internal/game/session.go
//
// Puzzle session state machine.
// Responsibilities:
//   - Resolve a Selection against the catalog and shuffle a fresh board.
//   - Suppress reloads for an unchanged puzzle identity (date, type, index),
//     so profile refreshes never reshuffle or rescore a board.
//   - Restore the solved view for today's slots that already have a result.
//   - Drive loading → generating → playing → solved.
//
// Notes:
//   - All exported methods lock the session; collaborator callbacks run while
//     the lock is held and must not call back into the session.
//   - The settle step after generating is deferred through a Scheduler and
//     canceled when a newer load arrives.

package game

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ninewords/internal/badges"
	"github.com/robalobadob/ninewords/internal/daily"
	"github.com/robalobadob/ninewords/internal/hint"
	"github.com/robalobadob/ninewords/internal/metrics"
	"github.com/robalobadob/ninewords/internal/profile"
	"github.com/robalobadob/ninewords/internal/puzzle"
	"github.com/robalobadob/ninewords/internal/scoring"
)

// HintPrefs is the persisted flag set behind the lock hint.
type HintPrefs interface {
	Load(ctx context.Context) (hint.Prefs, error)
	MarkLockUsed(ctx context.Context) error
	IncrementViews(ctx context.Context) error
	Dismiss(ctx context.Context) error
}

// Config wires a Session to its collaborators. Catalog is required; every
// other field has a usable default.
type Config struct {
	Catalog puzzle.Catalog
	Profile profile.Profile
	Saver   profile.Saver
	Hints   HintPrefs

	// OnProfile receives every new profile snapshot the session derives.
	OnProfile func(profile.Profile)
	// OnSaveError is called once per failed save; the session state is not rolled back.
	OnSaveError func(error)
	// OnResolved is called for first-time (non-replay) resolutions.
	OnResolved func(Resolution)

	SettleDelay time.Duration
	Scheduler   Scheduler
	Now         func() time.Time
	Rand        *rand.Rand
}

// Session owns the board, locks and tries of one player's current puzzle.
type Session struct {
	mu  sync.Mutex
	id  string
	cfg Config

	profile profile.Profile

	state  State
	sel    Selection
	key    string
	puzzle puzzle.Puzzle

	board          []string
	systemLocked   [9]bool
	userLocked     [9]bool
	initialTries   int
	triesRemaining int
	moveCount      int
	startedAt      time.Time

	outcome     Outcome
	replay      bool
	feedback    string
	shake       bool
	screenShake bool
	score       *scoring.Result
	newBadge    *badges.Badge
	saveFailed  bool
	hintArmed   bool
	hintOpen    bool

	navigating   bool
	generation   uint64
	cancelSettle func() bool
}

// New constructs a Session in StateLoading.
func New(cfg Config) *Session {
	if cfg.Scheduler == nil {
		cfg.Scheduler = timerScheduler{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Session{
		id:      uuid.NewString(),
		cfg:     cfg,
		profile: cfg.Profile.Normalize(),
		state:   StateLoading,
	}
}

// ID is a random identifier for correlating logs and responses.
func (s *Session) ID() string { return s.id }

// State reports the current lifecycle stage.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Profile returns the session's current profile snapshot.
func (s *Session) Profile() profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// SetProfile replaces the profile snapshot, e.g. after an external refresh.
// It never reloads or rescores the current board.
func (s *Session) SetProfile(p profile.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p.Normalize()
}

// NavigateNext forces the next Load to start fresh even if its key matches
// the current puzzle. The flag is consumed by that Load.
func (s *Session) NavigateNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigating = true
}

// Load applies a puzzle selection. It reports whether anything changed.
//
//   - An index the catalog cannot resolve (or whose tier disagrees with
//     sel.Type) drops the session back to loading.
//   - The same key while the session is past loading is a no-op, unless
//     NavigateNext was called first.
//   - Otherwise the session resets, shuffles and enters generating; the
//     settle step then moves it to playing or, for today's already
//     resolved slot, straight to solved.
func (s *Session) Load(sel Selection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.cfg.Catalog.Puzzle(sel.Index)
	if !ok || (sel.Type != "" && sel.Type != p.Difficulty) {
		log.Debug().Str("session", s.id).Int("index", sel.Index).Msg("selection unresolved; back to loading")
		wasLoading := s.state == StateLoading
		s.resetLocked()
		return !wasLoading
	}
	sel.Type = p.Difficulty

	key := sel.Key()
	if key == s.key && s.state != StateLoading && !s.navigating {
		return false
	}
	s.navigating = false

	s.resetLocked()
	s.sel = sel
	s.key = key
	s.puzzle = p
	s.initialTries = p.Difficulty.InitialTries()
	s.triesRemaining = s.initialTries
	s.board = s.shuffle(p.Solution)
	s.state = StateGenerating

	gen := s.generation
	if s.cfg.SettleDelay <= 0 {
		s.settleLocked(gen)
		return true
	}
	s.cancelSettle = s.cfg.Scheduler.AfterFunc(s.cfg.SettleDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.settleLocked(gen)
	})
	return true
}

// Reset returns the session to loading, canceling any pending settle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.generation++
	if s.cancelSettle != nil {
		if s.cancelSettle() {
			metrics.SettlesCanceled.Inc()
		}
		s.cancelSettle = nil
	}
	s.state = StateLoading
	s.sel = Selection{}
	s.key = ""
	s.puzzle = puzzle.Puzzle{}
	s.board = nil
	s.systemLocked = [9]bool{}
	s.userLocked = [9]bool{}
	s.initialTries = 0
	s.triesRemaining = 0
	s.moveCount = 0
	s.startedAt = time.Time{}
	s.outcome = OutcomeNone
	s.replay = false
	s.clearTransientLocked()
	s.hintArmed = false
	s.hintOpen = false
}

func (s *Session) clearTransientLocked() {
	s.feedback = ""
	s.shake = false
	s.screenShake = false
	s.score = nil
	s.newBadge = nil
	s.saveFailed = false
}

// settleLocked finishes a load unless a newer load or reset superseded it.
func (s *Session) settleLocked(gen uint64) {
	if gen != s.generation || s.state != StateGenerating {
		return
	}
	s.cancelSettle = nil

	slot := s.slot()
	stored, hasResult := s.profile.Result(slot)
	if hasResult && s.sel.Date == s.today() {
		s.restoreSolvedLocked(stored)
		return
	}
	// Past-dated slots always get a fresh attempt; it is a replay if a
	// result already exists.
	s.replay = hasResult
	s.startedAt = s.cfg.Now()
	s.state = StatePlaying
}

// restoreSolvedLocked shows a stored result without rescoring.
func (s *Session) restoreSolvedLocked(r profile.DailyResult) {
	s.state = StateSolved
	s.replay = true
	s.board = s.puzzle.Words()
	if r.Solved {
		s.outcome = OutcomeWin
		s.triesRemaining = max(s.initialTries-r.TriesUsed+1, 0)
	} else {
		s.outcome = OutcomeLoss
		s.triesRemaining = 0
		if len(r.Board) == puzzle.Size {
			s.board = slices.Clone(r.Board)
		}
	}
	for i := range s.systemLocked {
		s.systemLocked[i] = s.board[i] == s.puzzle.Solution[i]
	}
	s.feedback = restoredMessage(s.outcome)
}

func (s *Session) slot() daily.Slot {
	return daily.Slot{Date: s.sel.Date, Difficulty: s.puzzle.Difficulty}
}

func (s *Session) today() string { return daily.DateKey(s.cfg.Now()) }

// shuffle returns a permutation of words that differs from words itself.
func (s *Session) shuffle(words []string) []string {
	out := slices.Clone(words)
	for attempt := 0; attempt < 10; attempt++ {
		s.cfg.Rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		if !slices.Equal(out, words) {
			break
		}
	}
	return out
}

// View snapshots the session for rendering.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:             s.id,
		State:          s.state,
		Selection:      s.sel,
		Difficulty:     string(s.puzzle.Difficulty),
		Board:          slices.Clone(s.board),
		SystemLocked:   s.systemLocked,
		UserLocked:     s.userLocked,
		TriesRemaining: s.triesRemaining,
		InitialTries:   s.initialTries,
		MoveCount:      s.moveCount,
		Outcome:        s.outcome,
		Replay:         s.replay,
		Feedback:       s.feedback,
		Shake:          s.shake,
		ScreenShake:    s.screenShake,
		HintArmed:      s.hintArmed,
		HintOpen:       s.hintOpen,
		SaveFailed:     s.saveFailed,
	}
	if s.state == StateSolved {
		v.Narrative = s.puzzle.Narrative
	}
	if s.score != nil {
		sc := *s.score
		v.Score = &sc
	}
	if s.newBadge != nil {
		b := *s.newBadge
		v.NewBadge = &b
	}
	return v
}
