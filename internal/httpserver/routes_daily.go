// internal/httpserver/routes_daily.go
//
// HTTP routes for daily results and the player profile.
//   - GET /daily/leaderboard → top solved results for a (date, type) slot
//   - GET /daily/share       → spoiler-free share grid for the caller's result
//   - GET /profile/me        → the caller's profile
//
// Both /daily routes default to today (UTC) and EASY.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ninewords/internal/daily"
	"github.com/robalobadob/ninewords/internal/game"
	"github.com/robalobadob/ninewords/internal/profile"
	"github.com/robalobadob/ninewords/internal/puzzle"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/share", s.handleShare)
	})
}

// slotQuery is read from ?date=&type=. Type is matched in any casing.
type slotQuery struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
	Type string
}

// slotFromQuery parses and validates the slot query, writing 400 on failure.
func (s *Server) slotFromQuery(w http.ResponseWriter, r *http.Request) (daily.Slot, bool) {
	q := slotQuery{Date: r.URL.Query().Get("date"), Type: r.URL.Query().Get("type")}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return daily.Slot{}, false
	}
	slot := daily.Slot{Date: q.Date, Difficulty: puzzle.Easy}
	if slot.Date == "" {
		slot.Date = daily.DateKey(s.now())
	}
	if q.Type != "" {
		d, err := puzzle.ParseDifficulty(q.Type)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return daily.Slot{}, false
		}
		slot.Difficulty = d
	}
	return slot, true
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date       string            `json:"date"`
	Difficulty puzzle.Difficulty `json:"difficulty"`
	Top        []daily.Result    `json:"top"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	slot, ok := s.slotFromQuery(w, r)
	if !ok {
		return
	}
	rows, err := s.results.Leaderboard(r.Context(), slot, 20)
	if err != nil {
		log.Error().Err(err).Str("slot", slot.Key()).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: slot.Date, Difficulty: slot.Difficulty, Top: rows})
}

// -----------------------------------------------------------------------------
// /daily/share

type shareRes struct {
	Slot string `json:"slot"`
	Text string `json:"text"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	slot, ok := s.slotFromQuery(w, r)
	if !ok {
		return
	}
	p, err := s.currentProfile(w, r)
	if err != nil {
		log.Error().Err(err).Msg("load profile")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	res, ok := p.Result(slot)
	if !ok {
		writeError(w, http.StatusNotFound, "not_played")
		return
	}
	pz, ok := s.catalog.Puzzle(res.PuzzleIndex)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_puzzle")
		return
	}
	_ = json.NewEncoder(w).Encode(shareRes{Slot: slot.Key(), Text: game.ShareText(slot, res, pz.Solution)})
}

// -----------------------------------------------------------------------------
// /profile/me

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.currentProfile(w, r)
	if err != nil {
		log.Error().Err(err).Msg("load profile")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(p)
}

// currentProfile prefers the live session's snapshot, which may be ahead of
// the store when a save failed.
func (s *Server) currentProfile(w http.ResponseWriter, r *http.Request) (profile.Profile, error) {
	id := s.playerID(w, r)
	if sess, err := s.sessions.Get(r.Context(), id); err == nil {
		return sess.Profile(), nil
	}
	return profile.LoadOrNew(r.Context(), s.profiles, id)
}
