// internal/game/submit.go
//
// Submission evaluation.
//
// State transitions:
//   - board == solution          → solved/win.
//   - wrong, tries reach zero    → solved/loss.
//   - wrong, tries remain        → playing; newly matching positions lock.
//
// First-time resolutions derive a new profile (streaks, score, badges,
// DailyResult), publish it, then save it. Replays of a slot that already has
// a result skip all of that. A failed save is reported but never undoes the
// transition.

package game

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ninewords/internal/badges"
	"github.com/robalobadob/ninewords/internal/daily"
	"github.com/robalobadob/ninewords/internal/hint"
	"github.com/robalobadob/ninewords/internal/metrics"
	"github.com/robalobadob/ninewords/internal/profile"
	"github.com/robalobadob/ninewords/internal/scoring"
)

// Submit evaluates the current board against the solution.
func (s *Session) Submit(ctx context.Context) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return SubmitResult{}, ErrNotPlaying
	}
	s.clearTransientLocked()
	s.hintArmed = false

	if slices.Equal(s.board, s.puzzle.Solution) {
		return s.winLocked(ctx), nil
	}

	s.triesRemaining--
	if s.triesRemaining <= 0 {
		s.triesRemaining = 0
		return s.lossLocked(ctx), nil
	}
	return s.progressLocked(ctx), nil
}

// progressLocked handles a wrong submit that still leaves tries.
func (s *Session) progressLocked(ctx context.Context) SubmitResult {
	before := countLocked(s.systemLocked)
	for i := range s.systemLocked {
		s.systemLocked[i] = s.systemLocked[i] || s.board[i] == s.puzzle.Solution[i]
	}
	s.userLocked = [9]bool{}
	newLocks := countLocked(s.systemLocked) - before

	s.feedback = feedbackMessage(s.triesRemaining, newLocks)
	s.shake = newLocks == 0
	if newLocks > 0 {
		metrics.Submits.WithLabelValues("progress").Inc()
	} else {
		metrics.Submits.WithLabelValues("none").Inc()
	}

	if s.cfg.Hints != nil {
		prefs, err := s.cfg.Hints.Load(ctx)
		if err != nil {
			log.Warn().Err(err).Str("session", s.id).Msg("load hint prefs")
		} else {
			s.hintArmed = hint.ShouldArm(s.systemLocked, prefs)
		}
	}

	return SubmitResult{
		NewLocks:  newLocks,
		Message:   s.feedback,
		HintArmed: s.hintArmed,
	}
}

func (s *Session) winLocked(ctx context.Context) SubmitResult {
	now := s.cfg.Now()
	elapsed := now.Sub(s.startedAt)

	s.state = StateSolved
	s.outcome = OutcomeWin
	s.screenShake = true
	s.userLocked = [9]bool{}
	for i := range s.systemLocked {
		s.systemLocked[i] = true
	}

	res := SubmitResult{Correct: true, Outcome: OutcomeWin}
	slot := s.slot()
	if _, ok := s.profile.Result(slot); ok {
		s.replay = true
		s.feedback = replayWinMessage
		metrics.Resolutions.WithLabelValues(string(OutcomeWin), string(slot.Difficulty), "true").Inc()
		res.Replay, res.Message = true, s.feedback
		return res
	}

	triesUsed := s.initialTries - s.triesRemaining + 1
	today := daily.DateKey(now)
	next := s.profile.Clone()
	firstOfDay := !next.PlayedOn(today)
	next.DailyResults[slot.Key()] = profile.DailyResult{
		Solved:      true,
		TriesUsed:   triesUsed,
		TimeSeconds: int(elapsed.Seconds()),
		PuzzleIndex: s.puzzle.Index,
		ResolvedOn:  today,
	}

	streakBefore := next.CurrentStreak
	next.CurrentStreak++
	if firstOfDay {
		next.DayStreak++
	}
	next.GamesPlayed++
	next.AddSolve(slot.Difficulty)
	if triesUsed == 1 {
		next.PerfectSolves++
	}

	sc := scoring.Score(slot.Difficulty, s.triesRemaining, streakBefore)
	next.TotalScore += sc.Total
	s.score = &sc

	var nb *badges.Badge
	next.Badges, nb = badges.EvaluateWin(next.Badges, next.Stats(), badges.Event{
		Difficulty:     slot.Difficulty,
		TriesRemaining: s.triesRemaining,
		ElapsedSeconds: elapsed.Seconds(),
	}, today)
	s.newBadge = nb
	s.feedback = winMessage(triesUsed, sc)

	metrics.Resolutions.WithLabelValues(string(OutcomeWin), string(slot.Difficulty), "false").Inc()
	s.commitLocked(ctx, next, Resolution{
		Selection: s.sel,
		Outcome:   OutcomeWin,
		TriesUsed: triesUsed,
		ElapsedMs: int(elapsed / time.Millisecond),
	})

	res.Message = s.feedback
	return res
}

func (s *Session) lossLocked(ctx context.Context) SubmitResult {
	now := s.cfg.Now()
	elapsed := now.Sub(s.startedAt)

	s.state = StateSolved
	s.outcome = OutcomeLoss
	s.screenShake = true
	s.userLocked = [9]bool{}

	res := SubmitResult{Outcome: OutcomeLoss}
	slot := s.slot()
	if _, ok := s.profile.Result(slot); ok {
		s.replay = true
		s.feedback = replayLossMessage
		metrics.Resolutions.WithLabelValues(string(OutcomeLoss), string(slot.Difficulty), "true").Inc()
		res.Replay, res.Message = true, s.feedback
		return res
	}

	today := daily.DateKey(now)
	next := s.profile.Clone()
	firstOfDay := !next.PlayedOn(today)
	next.DailyResults[slot.Key()] = profile.DailyResult{
		Solved:      false,
		TriesUsed:   s.initialTries,
		Board:       slices.Clone(s.board),
		PuzzleIndex: s.puzzle.Index,
		ResolvedOn:  today,
	}

	// The puzzle streak counts wins; the day streak counts days played.
	next.CurrentStreak = 0
	if firstOfDay {
		next.DayStreak++
	}
	next.GamesPlayed++

	var nb *badges.Badge
	next.Badges, nb = badges.EvaluateLoss(next.Badges, next.Stats(), today)
	s.newBadge = nb
	s.feedback = lossMessage

	metrics.Resolutions.WithLabelValues(string(OutcomeLoss), string(slot.Difficulty), "false").Inc()
	s.commitLocked(ctx, next, Resolution{
		Selection: s.sel,
		Outcome:   OutcomeLoss,
		TriesUsed: s.initialTries,
		ElapsedMs: int(elapsed / time.Millisecond),
	})

	res.Message = s.feedback
	return res
}

// commitLocked publishes the new profile, then saves it.
func (s *Session) commitLocked(ctx context.Context, next profile.Profile, r Resolution) {
	s.profile = next
	if s.newBadge != nil {
		metrics.BadgesUnlocked.WithLabelValues(s.newBadge.ID).Inc()
	}
	if s.cfg.OnProfile != nil {
		s.cfg.OnProfile(next.Clone())
	}
	if s.cfg.OnResolved != nil {
		s.cfg.OnResolved(r)
	}
	if s.cfg.Saver == nil {
		return
	}
	if err := s.cfg.Saver.Save(ctx, next); err != nil {
		s.saveFailed = true
		metrics.SaveFailures.Inc()
		log.Warn().Err(err).Str("session", s.id).Str("player", next.PlayerID).Msg("save profile")
		if s.cfg.OnSaveError != nil {
			s.cfg.OnSaveError(err)
		}
	}
}

func countLocked(m [9]bool) int {
	n := 0
	for _, l := range m {
		if l {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// messages

const (
	lastTryMessage      = "Last try! Make it count."
	noProgressMessage   = "No new connections. Try a different arrangement."
	lossMessage         = "Out of tries! Here's how it fit together."
	replayWinMessage    = "You've already completed this puzzle. Nicely solved again!"
	replayLossMessage   = "Out of tries! This replay doesn't affect your stats."
	restoredWinMessage  = "You already solved this one today."
	restoredLossMessage = "You already played this one today."
)

var progressMessages = map[int]string{
	1: "Nice! One word locked in.",
	2: "Great! Two words locked in!",
	3: "Excellent! Three words locked in!",
	4: "Amazing! Four words locked in!",
}

var countWords = map[int]string{5: "Five", 6: "Six", 7: "Seven", 8: "Eight"}

// feedbackMessage picks the text for a non-resolving submit.
// Precedence: last try, then no progress, then the newly locked count.
func feedbackMessage(triesRemaining, newLocks int) string {
	switch {
	case triesRemaining == 1:
		return lastTryMessage
	case newLocks <= 0:
		return noProgressMessage
	}
	if msg, ok := progressMessages[newLocks]; ok {
		return msg
	}
	word, ok := countWords[newLocks]
	if !ok {
		word = strconv.Itoa(newLocks)
	}
	return "Incredible! " + word + " words locked in!"
}

func winMessage(triesUsed int, sc scoring.Result) string {
	tries := "tries"
	if triesUsed == 1 {
		tries = "try"
	}
	msg := "Solved in " + strconv.Itoa(triesUsed) + " " + tries + "! +" + strconv.Itoa(sc.Total) + " points"
	if sc.StreakBonus > 0 {
		msg += " (" + strconv.Itoa(sc.StreakBonus) + " streak bonus)"
	}
	return msg
}

func restoredMessage(o Outcome) string {
	if o == OutcomeWin {
		return restoredWinMessage
	}
	return restoredLossMessage
}
