// internal/daily/store.go
//
// SQLite-backed leaderboard of first-time daily resolutions.
// Rows are unique per (player, date, difficulty); later inserts for the same
// slot are ignored, so the first resolution always wins.

package daily

import (
	"context"
	"database/sql"

	"github.com/robalobadob/ninewords/internal/puzzle"
)

// Result is one leaderboard row.
type Result struct {
	PlayerID    string            `json:"playerId"`
	Date        string            `json:"date"`
	Difficulty  puzzle.Difficulty `json:"difficulty"`
	PuzzleIndex int               `json:"puzzleIndex"`
	Solved      bool              `json:"solved"`
	TriesUsed   int               `json:"triesUsed"`
	ElapsedMs   int               `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InsertResult records r unless the slot already has a row.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(player_id, date, difficulty, puzzle_idx, solved, tries_used, elapsed_ms)
		 VALUES(?,?,?,?,?,?,?)`,
		r.PlayerID, r.Date, string(r.Difficulty), r.PuzzleIndex, r.Solved, r.TriesUsed, r.ElapsedMs,
	)
	return err
}

// AlreadyPlayed reports whether the player has a row for the slot.
func (s *Store) AlreadyPlayed(ctx context.Context, playerID string, slot Slot) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE player_id=? AND date=? AND difficulty=?`,
		playerID, slot.Date, string(slot.Difficulty),
	).Scan(&cnt)
	return cnt > 0, err
}

// Leaderboard lists solved rows for a slot: fewest tries, then fastest, then earliest.
func (s *Store) Leaderboard(ctx context.Context, slot Slot, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, date, difficulty, puzzle_idx, solved, tries_used, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND difficulty=? AND solved=1
		 ORDER BY tries_used ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, slot.Date, string(slot.Difficulty), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		var diff string
		if err := rows.Scan(&r.PlayerID, &r.Date, &diff, &r.PuzzleIndex, &r.Solved, &r.TriesUsed, &r.ElapsedMs); err != nil {
			return nil, err
		}
		r.Difficulty = puzzle.Difficulty(diff)
		out = append(out, r)
	}
	return out, rows.Err()
}
