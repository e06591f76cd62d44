// internal/daily/daily.go
//
// Date keys, slots and deterministic daily puzzle selection.
//
// A slot is one (date, difficulty) pair: each day offers one puzzle per tier,
// and each slot is resolved at most once for scoring purposes.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/ninewords/internal/puzzle"
)

// DateLayout is the YYYY-MM-DD form used for every date key.
const DateLayout = "2006-01-02"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ValidDate reports whether s is a YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Slot identifies one daily puzzle attempt.
type Slot struct {
	Date       string            `json:"date"`
	Difficulty puzzle.Difficulty `json:"difficulty"`
}

// Key is the map key profiles store results under ("2026-10-17:EASY").
func (s Slot) Key() string {
	return s.Date + ":" + string(s.Difficulty)
}

// ParseSlotKey reverses Key.
func ParseSlotKey(k string) (Slot, error) {
	date, diff, ok := strings.Cut(k, ":")
	if !ok || !ValidDate(date) || !puzzle.Difficulty(diff).Valid() {
		return Slot{}, fmt.Errorf("daily: bad slot key %q", k)
	}
	return Slot{Date: date, Difficulty: puzzle.Difficulty(diff)}, nil
}

// PuzzleIndex returns a deterministic catalog index for (date, difficulty) using
// HMAC(salt, "YYYY-MM-DD:TIER") modulo the number of puzzles in that tier.
// It returns -1 when the tier has no puzzles.
func PuzzleIndex(date string, d puzzle.Difficulty, salt string, cat puzzle.Catalog) int {
	tier := cat.IndicesFor(d)
	if len(tier) == 0 {
		return -1
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(Slot{Date: date, Difficulty: d}.Key()))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return tier[int(n%uint64(len(tier)))]
}
