// internal/httpserver/routes_session.go
//
// HTTP routes for the player's live puzzle session.
//   - GET  /session               → current view
//   - POST /session/load          → load a (date, type, index) selection
//   - POST /session/next          → force a fresh load of the given selection
//   - POST /session/submit        → evaluate the board
//   - POST /session/reorder       → replace the board with a permutation
//   - POST /session/lock          → toggle a user lock
//   - POST /session/reset         → back to loading
//   - POST /session/dragstart     → consume an armed lock hint
//   - POST /session/hint/close    → close the hint, counting the view
//   - POST /session/hint/dismiss  → never show the hint again
//
// One session per player lives in the store. Creation is collapsed through a
// singleflight group so concurrent first requests share one session.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ninewords/internal/daily"
	"github.com/robalobadob/ninewords/internal/game"
	"github.com/robalobadob/ninewords/internal/prefs"
	"github.com/robalobadob/ninewords/internal/profile"
	"github.com/robalobadob/ninewords/internal/puzzle"
)

// mountSession registers all /session routes.
func (s *Server) mountSession(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Get("/", s.handleView)
		r.Post("/load", s.handleLoad)
		r.Post("/next", s.handleNext)
		r.Post("/submit", s.handleSubmit)
		r.Post("/reorder", s.handleReorder)
		r.Post("/lock", s.handleLock)
		r.Post("/reset", s.handleReset)
		r.Post("/dragstart", s.handleDragStart)
		r.Post("/hint/close", s.handleHintClose)
		r.Post("/hint/dismiss", s.handleHintDismiss)
	})
}

// sessionFor returns the player's session, creating it on first use.
func (s *Server) sessionFor(ctx context.Context, playerID string) (*game.Session, error) {
	if sess, err := s.sessions.Get(ctx, playerID); err == nil {
		return sess, nil
	}
	v, err, _ := s.creating.Do(playerID, func() (any, error) {
		if sess, err := s.sessions.Get(ctx, playerID); err == nil {
			return sess, nil
		}
		p, err := profile.LoadOrNew(ctx, s.profiles, playerID)
		if err != nil {
			return nil, err
		}
		sess := game.New(game.Config{
			Catalog:     s.catalog,
			Profile:     p,
			Saver:       s.profiles,
			Hints:       prefs.NewHintFlags(s.prefs, playerID),
			OnResolved:  s.recordResult(playerID),
			SettleDelay: s.settleDelay,
			Now:         s.now,
		})
		if err := s.sessions.Save(ctx, playerID, sess); err != nil {
			return nil, err
		}
		log.Debug().Str("player", playerID).Str("session", sess.ID()).Msg("session created")
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.Session), nil
}

// recordResult returns the OnResolved hook that feeds the daily leaderboard.
// The first row for a slot is the ranked one; later resolutions from another
// device or a claimed guest profile are skipped.
func (s *Server) recordResult(playerID string) func(game.Resolution) {
	return func(res game.Resolution) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slot := daily.Slot{Date: res.Selection.Date, Difficulty: res.Selection.Type}
		played, err := s.results.AlreadyPlayed(ctx, playerID, slot)
		if err != nil {
			log.Warn().Err(err).Str("player", playerID).Msg("check daily result")
			return
		}
		if played {
			log.Debug().Str("player", playerID).Str("slot", slot.Key()).Msg("daily result already ranked")
			return
		}
		err = s.results.InsertResult(ctx, daily.Result{
			PlayerID:    playerID,
			Date:        slot.Date,
			Difficulty:  slot.Difficulty,
			PuzzleIndex: res.Selection.Index,
			Solved:      res.Outcome == game.OutcomeWin,
			TriesUsed:   res.TriesUsed,
			ElapsedMs:   res.ElapsedMs,
		})
		if err != nil {
			log.Warn().Err(err).Str("player", playerID).Msg("insert daily result")
		}
	}
}

// withSession resolves the caller's session or writes an error.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	sess, err := s.sessionFor(r.Context(), s.playerID(w, r))
	if err != nil {
		log.Error().Err(err).Msg("open session")
		writeError(w, http.StatusInternalServerError, "session_failed")
		return nil, false
	}
	return sess, true
}

// writeSessionErr maps session errors onto HTTP statuses.
func writeSessionErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNotPlaying):
		writeError(w, http.StatusConflict, "not_playing")
	case errors.Is(err, game.ErrBadBoard), errors.Is(err, game.ErrBadIndex):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Warn().Err(err).Msg("session action")
		writeError(w, http.StatusInternalServerError, "session_failed")
	}
}

// -----------------------------------------------------------------------------
// views

type viewRes struct {
	Changed bool      `json:"changed"`
	View    game.View `json:"view"`
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(viewRes{View: sess.View()})
}

// -----------------------------------------------------------------------------
// /session/load, /session/next

// loadReq selects a puzzle. Date defaults to today (UTC); an omitted index
// picks the daily puzzle for the tier. Type is matched in any casing.
type loadReq struct {
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Type  string `json:"type" validate:"required"`
	Index *int   `json:"index" validate:"omitempty,min=0"`
}

func (s *Server) selection(req loadReq, d puzzle.Difficulty) (game.Selection, bool) {
	date := req.Date
	if date == "" {
		date = daily.DateKey(s.now())
	}
	idx := daily.PuzzleIndex(date, d, s.salt, s.catalog)
	if req.Index != nil {
		idx = *req.Index
	}
	if idx < 0 {
		return game.Selection{}, false
	}
	return game.Selection{Date: date, Type: d, Index: idx}, true
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	s.load(w, r, false)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.load(w, r, true)
}

func (s *Server) load(w http.ResponseWriter, r *http.Request, navigate bool) {
	var req loadReq
	if !decodeValid(w, r, &req) {
		return
	}
	d, err := puzzle.ParseDifficulty(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sel, ok := s.selection(req, d)
	if !ok {
		writeError(w, http.StatusNotFound, "no_puzzles")
		return
	}
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	if navigate {
		sess.NavigateNext()
	}
	changed := sess.Load(sel)
	_ = json.NewEncoder(w).Encode(viewRes{Changed: changed, View: sess.View()})
}

// -----------------------------------------------------------------------------
// /session/submit

type submitRes struct {
	Result game.SubmitResult `json:"result"`
	View   game.View         `json:"view"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	res, err := sess.Submit(r.Context())
	if err != nil {
		writeSessionErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(submitRes{Result: res, View: sess.View()})
}

// -----------------------------------------------------------------------------
// board edits

type reorderReq struct {
	Board []string `json:"board" validate:"len=9,dive,required"`
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderReq
	if !decodeValid(w, r, &req) {
		return
	}
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	if err := sess.Reorder(req.Board); err != nil {
		writeSessionErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewRes{Changed: true, View: sess.View()})
}

type lockReq struct {
	Index *int `json:"index" validate:"required,min=0,max=8"`
}

func (s *Server) handleLock(w http.ResponseWriter, r *http.Request) {
	var req lockReq
	if !decodeValid(w, r, &req) {
		return
	}
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	if err := sess.ToggleUserLock(r.Context(), *req.Index); err != nil {
		writeSessionErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewRes{Changed: true, View: sess.View()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	sess.Reset()
	_ = json.NewEncoder(w).Encode(viewRes{Changed: true, View: sess.View()})
}

// -----------------------------------------------------------------------------
// lock hint

func (s *Server) handleDragStart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	opened := sess.DragStart()
	_ = json.NewEncoder(w).Encode(viewRes{Changed: opened, View: sess.View()})
}

func (s *Server) handleHintClose(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	if err := sess.CloseHint(r.Context()); err != nil {
		writeSessionErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewRes{Changed: true, View: sess.View()})
}

func (s *Server) handleHintDismiss(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.withSession(w, r)
	if !ok {
		return
	}
	if err := sess.DismissHint(r.Context()); err != nil {
		writeSessionErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewRes{Changed: true, View: sess.View()})
}
