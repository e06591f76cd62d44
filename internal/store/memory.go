// internal/store/memory.go
//
// In-memory registry of live puzzle sessions.
//
// Characteristics:
//   - Stores *game.Session values keyed by player ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; profiles and daily results are
//     persisted elsewhere, so a restarted session simply reloads its puzzle.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/ninewords/internal/game"
)

// ErrNotFound is returned by Get when no session is registered for a player.
var ErrNotFound = errors.New("store: session not found")

// Store keeps one live session per player.
type Store interface {
	// Save registers or replaces the player's session.
	Save(ctx context.Context, playerID string, s *game.Session) error

	// Get returns the player's session, or ErrNotFound.
	Get(ctx context.Context, playerID string) (*game.Session, error)

	// Delete drops the player's session, resetting it first.
	Delete(ctx context.Context, playerID string) error
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Session)}
}

func (m *memory) Save(ctx context.Context, playerID string, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[playerID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, playerID string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[playerID]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete resets the session so a pending settle never fires after removal.
func (m *memory) Delete(ctx context.Context, playerID string) error {
	m.mu.Lock()
	s, ok := m.sessions[playerID]
	delete(m.sessions, playerID)
	m.mu.Unlock()
	if ok {
		s.Reset()
	}
	return nil
}
