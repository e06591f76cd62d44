// internal/profile/store.go
//
// Persistence for player profiles.
// Implementations:
//   - memory: map keyed by player id, guarded by an RWMutex; lost on restart.
//   - SQLStore: one JSON document per player in the profiles table.

package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotFound is returned by Load for an unknown player.
var ErrNotFound = errors.New("profile: not found")

// Saver persists a profile snapshot. It may fail; callers decide how to surface that.
type Saver interface {
	Save(ctx context.Context, p Profile) error
}

// Store loads and saves profiles.
type Store interface {
	Saver
	Load(ctx context.Context, playerID string) (Profile, error)
}

// LoadOrNew returns the stored profile, or a fresh one for unknown players.
func LoadOrNew(ctx context.Context, st Store, playerID string) (Profile, error) {
	p, err := st.Load(ctx, playerID)
	if errors.Is(err, ErrNotFound) {
		return New(playerID), nil
	}
	if err != nil {
		return Profile{}, err
	}
	return p.Normalize(), nil
}

type memory struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewMemoryStore constructs an in-memory Store.
func NewMemoryStore() Store {
	return &memory{profiles: make(map[string]Profile)}
}

func (m *memory) Save(ctx context.Context, p Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.PlayerID] = p.Clone()
	return nil
}

func (m *memory) Load(ctx context.Context, playerID string) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.profiles[playerID]; ok {
		return p.Clone(), nil
	}
	return Profile{}, ErrNotFound
}

// SQLStore keeps profiles as JSON documents in SQLite.
type SQLStore struct{ db *sql.DB }

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Save(ctx context.Context, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO profiles (player_id, data, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(player_id) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`,
		p.PlayerID, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLStore) Load(ctx context.Context, playerID string) (Profile, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM profiles WHERE player_id=?`, playerID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile %s: %w", playerID, err)
	}
	p.PlayerID = playerID
	return p, nil
}
