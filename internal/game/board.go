// internal/game/board.go
//
// Player board interactions while a puzzle is being played.
// Responsibilities:
//   - Accept reordered boards from the drag layer.
//   - Toggle the player's own tile locks and record the first one for the hint gate.
//   - Show the lock hint once armed, and let the player dismiss it for good.

package game

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ninewords/internal/metrics"
	"github.com/robalobadob/ninewords/internal/puzzle"
)

// Reorder replaces the board with a caller-supplied permutation. Only the
// length is checked; drag mechanics keep system-locked tiles in place.
func (s *Session) Reorder(board []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return ErrNotPlaying
	}
	if len(board) != puzzle.Size {
		return ErrBadBoard
	}
	s.board = slices.Clone(board)
	s.moveCount++
	s.shake = false
	return nil
}

// ToggleUserLock flips the player's hold marker on tile i. System-locked
// tiles are left alone. The first lock a player ever sets is recorded for
// the hint gate.
func (s *Session) ToggleUserLock(ctx context.Context, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return ErrNotPlaying
	}
	if i < 0 || i >= puzzle.Size {
		return ErrBadIndex
	}
	if s.systemLocked[i] {
		return nil
	}
	s.userLocked[i] = !s.userLocked[i]
	if !s.userLocked[i] || s.cfg.Hints == nil {
		return nil
	}

	// The lock stands even when the hint flags cannot be read or written.
	prefs, err := s.cfg.Hints.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Str("session", s.id).Msg("load hint prefs")
		return nil
	}
	if prefs.LockUsed {
		return nil
	}
	if err := s.cfg.Hints.MarkLockUsed(ctx); err != nil {
		log.Warn().Err(err).Str("session", s.id).Msg("mark lock used")
	}
	return nil
}

// DragStart consumes an armed hint. It reports whether the hint opened.
func (s *Session) DragStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hintArmed {
		return false
	}
	s.hintArmed = false
	s.hintOpen = true
	metrics.HintsShown.Inc()
	return true
}

// CloseHint closes an open hint and counts the view.
func (s *Session) CloseHint(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hintOpen {
		return nil
	}
	s.hintOpen = false
	if s.cfg.Hints == nil {
		return nil
	}
	return s.cfg.Hints.IncrementViews(ctx)
}

// DismissHint hides the hint permanently.
func (s *Session) DismissHint(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hintOpen = false
	s.hintArmed = false
	if s.cfg.Hints == nil {
		return nil
	}
	return s.cfg.Hints.Dismiss(ctx)
}
