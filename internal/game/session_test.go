package game

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/ninewords/internal/badges"
	"github.com/robalobadob/ninewords/internal/daily"
	"github.com/robalobadob/ninewords/internal/hint"
	"github.com/robalobadob/ninewords/internal/metrics"
	"github.com/robalobadob/ninewords/internal/prefs"
	"github.com/robalobadob/ninewords/internal/profile"
	"github.com/robalobadob/ninewords/internal/puzzle"
)

const (
	today     = "2026-10-17"
	yesterday = "2026-10-16"
)

var (
	easyWords       = []string{"seed", "sprout", "stem", "leaf", "bud", "flower", "fruit", "harvest", "feast"}
	hardWords       = []string{"ore", "smelt", "ingot", "forge", "blade", "temper", "hilt", "sheath", "heirloom"}
	impossibleWords = []string{"axiom", "lemma", "proof", "theorem", "corollary", "conjecture", "counterexample", "revision", "paradigm"}
)

// ---------------------------------------------------------------------------
// fakes

type clock struct{ t time.Time }

func (c *clock) now() time.Time           { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type task struct {
	f       func()
	stopped bool
}

// manualScheduler holds deferred actions until fire is called.
type manualScheduler struct{ tasks []*task }

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	t := &task{f: f}
	m.tasks = append(m.tasks, t)
	return func() bool {
		was := !t.stopped
		t.stopped = true
		return was
	}
}

// fire runs every queued action, stopped or not, to exercise the
// generation guard as if the timer had already fired.
func (m *manualScheduler) fire() {
	tasks := m.tasks
	m.tasks = nil
	for _, t := range tasks {
		t.f()
	}
}

// brokenHints fails every prefs read and write.
type brokenHints struct{ err error }

func (b brokenHints) Load(context.Context) (hint.Prefs, error) { return hint.Prefs{}, b.err }
func (b brokenHints) MarkLockUsed(context.Context) error       { return b.err }
func (b brokenHints) IncrementViews(context.Context) error     { return b.err }
func (b brokenHints) Dismiss(context.Context) error            { return b.err }

type saver struct {
	err   error
	calls int
	last  profile.Profile
}

func (s *saver) Save(ctx context.Context, p profile.Profile) error {
	s.calls++
	s.last = p
	return s.err
}

type harness struct {
	t         *testing.T
	session   *Session
	clock     *clock
	saver     *saver
	hints     *prefs.HintFlags
	sched     *manualScheduler
	published []profile.Profile
	resolved  []Resolution
	saveErrs  []error
}

func testCatalog(t *testing.T) *puzzle.List {
	t.Helper()
	l, err := puzzle.NewList([]puzzle.Puzzle{
		{Difficulty: puzzle.Easy, Solution: easyWords, Narrative: "grows"},
		{Difficulty: puzzle.Hard, Solution: hardWords, Narrative: "forged"},
		{Difficulty: puzzle.Impossible, Solution: impossibleWords, Narrative: "proven"},
	})
	require.NoError(t, err)
	return l
}

func newHarness(t *testing.T, p profile.Profile, mutate ...func(*Config)) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		clock: &clock{t: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)},
		saver: &saver{},
		hints: prefs.NewHintFlags(prefs.NewMemory(), "p1"),
		sched: &manualScheduler{},
	}
	cfg := Config{
		Catalog:     testCatalog(t),
		Profile:     p,
		Saver:       h.saver,
		Hints:       h.hints,
		OnProfile:   func(p profile.Profile) { h.published = append(h.published, p) },
		OnResolved:  func(r Resolution) { h.resolved = append(h.resolved, r) },
		OnSaveError: func(err error) { h.saveErrs = append(h.saveErrs, err) },
		Scheduler:   h.sched,
		Now:         h.clock.now,
		Rand:        rand.New(rand.NewPCG(1, 2)),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	h.session = New(cfg)
	return h
}

func sel(date string, d puzzle.Difficulty) Selection {
	idx := map[puzzle.Difficulty]int{puzzle.Easy: 0, puzzle.Hard: 1, puzzle.Impossible: 2}[d]
	return Selection{Date: date, Type: d, Index: idx}
}

// withCorrect returns a board where exactly the given indices match the
// solution; the rest are rotated among themselves.
func withCorrect(solution []string, correct ...int) []string {
	board := slices.Clone(solution)
	var free []int
	for i := range solution {
		if !slices.Contains(correct, i) {
			free = append(free, i)
		}
	}
	for k, i := range free {
		board[i] = solution[free[(k+1)%len(free)]]
	}
	return board
}

func (h *harness) submit() SubmitResult {
	h.t.Helper()
	res, err := h.session.Submit(context.Background())
	require.NoError(h.t, err)
	return res
}

func (h *harness) reorder(board []string) {
	h.t.Helper()
	require.NoError(h.t, h.session.Reorder(board))
}

// ---------------------------------------------------------------------------
// loading

func TestLoadStartsPlaying(t *testing.T) {
	h := newHarness(t, profile.New("p1"))
	require.True(t, h.session.Load(sel(today, puzzle.Easy)))

	v := h.session.View()
	assert.Equal(t, StatePlaying, v.State)
	assert.Equal(t, 4, v.TriesRemaining)
	assert.Equal(t, 4, v.InitialTries)
	assert.ElementsMatch(t, easyWords, v.Board)
	assert.NotEqual(t, easyWords, v.Board, "board starts shuffled")
	assert.False(t, v.Replay)
	assert.Empty(t, v.Narrative)
}

func TestLoadInvalidSelectionFallsBackToLoading(t *testing.T) {
	h := newHarness(t, profile.New("p1"))
	assert.False(t, h.session.Load(Selection{Date: today, Type: puzzle.Easy, Index: 42}))
	assert.Equal(t, StateLoading, h.session.State())

	require.True(t, h.session.Load(sel(today, puzzle.Easy)))
	assert.True(t, h.session.Load(Selection{Date: today, Type: puzzle.Hard, Index: 0}), "tier mismatch")
	assert.Equal(t, StateLoading, h.session.State())
}

func TestLoadSameKeyWhileSolvedIsNoop(t *testing.T) {
	h := newHarness(t, profile.New("p1"))
	s := sel(today, puzzle.Easy)
	h.session.Load(s)
	h.reorder(easyWords)
	h.submit()

	before := h.session.View()
	saved := h.saver.calls

	// A save round-trip hands the profile back and the caller re-runs load.
	h.session.SetProfile(h.saver.last)
	assert.False(t, h.session.Load(s))
	assert.False(t, h.session.Load(s))

	assert.Equal(t, before, h.session.View())
	assert.Equal(t, saved, h.saver.calls)
	assert.Len(t, h.published, 1)
}

func TestLoadSameKeyWhilePlayingKeepsBoard(t *testing.T) {
	h := newHarness(t, profile.New("p1"))
	s := sel(today, puzzle.Hard)
	h.session.Load(s)
	h.reorder(withCorrect(hardWords, 0))
	h.submit()

	before := h.session.View()
	assert.False(t, h.session.Load(s))
	assert.Equal(t, before, h.session.View())
}

func TestNavigateNextForcesOneFreshLoad(t *testing.T) {
	h := newHarness(t, profile.New("p1"))
	s := sel(yesterday, puzzle.Easy)
	h.session.Load(s)
	h.reorder(easyWords)
	h.submit()
	require.Equal(t, StateSolved, h.session.State())

	h.session.NavigateNext()
	require.True(t, h.session.Load(s))
	v := h.session.View()
	assert.Equal(t, StatePlaying, v.State, "past-dated slot starts a fresh attempt")
	assert.True(t, v.Replay)

	assert.False(t, h.session.Load(s), "navigating flag is consumed")
}

func TestTodayStoredResultRestoresSolvedView(t *testing.T) {
	p := profile.New("p1")
	p.TotalScore = 700
	p.DailyResults[daily.Slot{Date: today, Difficulty: puzzle.Hard}.Key()] = profile.DailyResult{Solved: true, TriesUsed: 2, TimeSeconds: 80, PuzzleIndex: 1}
	h := newHarness(t, p)

	require.True(t, h.session.Load(sel(today, puzzle.Hard)))
	v := h.session.View()
	assert.Equal(t, StateSolved, v.State)
	assert.Equal(t, OutcomeWin, v.Outcome)
	assert.True(t, v.Replay)
	assert.Equal(t, hardWords, v.Board)
	assert.Equal(t, 2, v.TriesRemaining)
	assert.Equal(t, "forged", v.Narrative)
	assert.Nil(t, v.Score)
	assert.Zero(t, h.saver.calls)
	assert.Equal(t, 700, h.session.Profile().TotalScore)

	_, err := h.session.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotPlaying)
}

func TestTodayStoredLossRestoresFinalBoard(t *testing.T) {
	final := withCorrect(easyWords, 0, 1)
	p := profile.New("p1")
	p.DailyResults[daily.Slot{Date: today, Difficulty: puzzle.Easy}.Key()] = profile.DailyResult{Solved: false, TriesUsed: 4, Board: final}
	h := newHarness(t, p)

	h.session.Load(sel(today, puzzle.Easy))
	v := h.session.View()
	assert.Equal(t, OutcomeLoss, v.Outcome)
	assert.Equal(t, final, v.Board)
	assert.Equal(t, [9]bool{true, true}, v.SystemLocked)
	assert.Zero(t, v.TriesRemaining)
}

func TestSettleDelayCancelsStaleLoad(t *testing.T) {
	h := newHarness(t, profile.New("p1"), func(c *Config) { c.SettleDelay = time.Second })
	canceled := testutil.ToFloat64(metrics.SettlesCanceled)

	h.session.Load(sel(today, puzzle.Easy))
	assert.Equal(t, StateGenerating, h.session.State())
	h.session.Load(sel(today, puzzle.Hard))
	assert.Equal(t, canceled+1, testutil.ToFloat64(metrics.SettlesCanceled))

	h.sched.fire()
	v := h.session.View()
	assert.Equal(t, StatePlaying, v.State)
	assert.Equal(t, puzzle.Hard, v.Selection.Type)
	assert.ElementsMatch(t, hardWords, v.Board)
}

func TestSettleDelayAfterResetIsDropped(t *testing.T) {
	h := newHarness(t, profile.New("p1"), func(c *Config) { c.SettleDelay = time.Second })
	h.session.Load(sel(today, puzzle.Easy))
	h.session.Reset()
	h.sched.fire()
	assert.Equal(t, StateLoading, h.session.State())
}

func TestSettleWithRealTimer(t *testing.T) {
	s := New(Config{Catalog: testCatalog(t), SettleDelay: 10 * time.Millisecond})
	s.Load(Selection{Date: daily.DateKey(time.Now()), Index: 0})
	assert.Equal(t, StateGenerating, s.State())
	require.Eventually(t, func() bool { return s.State() == StatePlaying }, time.Second, 5*time.Millisecond)
}

// ---------------------------------------------------------------------------
// submit

func TestWinFirstTry(t *testing.T) {
	h := newHarness(t, profile.New("p1"))
	h.session.Load(sel(today, puzzle.Easy))
	h.clock.advance(12 * time.Second)
	h.reorder(easyWords)

	res := h.submit()
	assert.True(t, res.Correct)
	assert.Equal(t, OutcomeWin, res.Outcome)
	assert.False(t, res.Replay)

	v := h.session.View()
	assert.Equal(t, StateSolved, v.State)
	assert.True(t, v.ScreenShake)
	assert.Equal(t, "grows", v.Narrative)
	require.NotNil(t, v.Score)
	assert.Equal(t, 125, v.Score.Total)
	require.NotNil(t, v.NewBadge)
	assert.Equal(t, badges.SpeedDemon, v.NewBadge.ID)

	p := h.session.Profile()
	assert.Equal(t, 125, p.TotalScore)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 1, p.DayStreak)
	assert.Equal(t, 1, p.EasySolved)
	assert.Equal(t, 1, p.PerfectSolves)
	r, ok := p.Result(daily.Slot{Date: today, Difficulty: puzzle.Easy})
	require.True(t, ok)
	assert.Equal(t, profile.DailyResult{Solved: true, TriesUsed: 1, TimeSeconds: 12, PuzzleIndex: 0, ResolvedOn: today}, r)

	assert.Equal(t, 1, h.saver.calls)
	assert.Equal(t, p, h.saver.last)
	require.Len(t, h.resolved, 1)
	assert.Equal(t, Resolution{Selection: sel(today, puzzle.Easy), Outcome: OutcomeWin, TriesUsed: 1, ElapsedMs: 12000}, h.resolved[0])
}

func TestWinRegardlessOfLocks(t *testing.T) {
	h := newHarness(t, profile.New("p1"))
	h.session.Load(sel(today, puzzle.Impossible))
	require.NoError(t, h.session.ToggleUserLock(context.Background(), 3))
	h.reorder(withCorrect(impossibleWords, 2, 4))
	h.submit()

	require.NoError(t, h.session.ToggleUserLock(context.Background(), 0))
	h.reorder(impossibleWords)
	res := h.submit()
	assert.Equal(t, OutcomeWin, res.Outcome)

	v := h.session.View()
	assert.Equal(t, [9]bool{true, true, true, true, true, true, true, true, true}, v.SystemLocked)
	assert.Equal(t, [9]bool{}, v.UserLocked)
	assert.Equal(t, 500, v.Score.Base, "won on the last try")
	p := h.session.Profile()
	b, _ := badges.Find(p.Badges, badges.LastGasp)
	assert.True(t, b.Unlocked)
}

func TestSystemLocksAreMonotonic(t *testing.T) {
	h := newHarness(t, profile.New("p1"))
	h.session.Load(sel(today, puzzle.Easy))

	h.reorder(withCorrect(easyWords, 0, 8))
	res := h.submit()
	assert.Equal(t, 2, res.NewLocks)

	// A board that no longer matches at 0 or 8 must not unlock them.
	h.reorder(withCorrect(easyWords, 4))
	res = h.submit()
	assert.Equal(t, 1, res.NewLocks)

	v := h.session.View()
	assert.True(t, v.SystemLocked[0])
	assert.True(t, v.SystemLocked[4])
	assert.True(t, v.SystemLocked[8])
}

func TestTriesExhaustion(t *testing.T) {
	for _, d := range puzzle.Difficulties {
		t.Run(string(d), func(t *testing.T) {
			h := newHarness(t, profile.New("p1"))
			h.session.Load(sel(today, d))
			solution := h.session.puzzle.Solution
			n := d.InitialTries()

			for i := 1; i < n; i++ {
				h.reorder(withCorrect(solution))
				res := h.submit()
				assert.Equal(t, OutcomeNone, res.Outcome, "submit %d", i)
				assert.Equal(t, StatePlaying, h.session.State())
				assert.Equal(t, n-i, h.session.View().TriesRemaining)
			}
			h.reorder(withCorrect(solution))
			res := h.submit()
			assert.Equal(t, OutcomeLoss, res.Outcome)

			v := h.session.View()
			assert.Equal(t, StateSolved, v.State)
			assert.Equal(t, 0, v.TriesRemaining)
		})
	}
}

func TestLossUpdatesProfile(t *testing.T) {
	p := profile.New("p1")
	p.CurrentStreak = 4
	p.DayStreak = 6
	p.TotalScore = 900
	p.Badges = badges.SyncProgress(p.Badges, p.Stats())
	h := newHarness(t, p)
	h.session.Load(sel(today, puzzle.Impossible))

	h.reorder(withCorrect(impossibleWords, 1))
	h.submit()
	final := withCorrect(impossibleWords, 1, 5)
	h.reorder(final)
	res := h.submit()
	require.Equal(t, OutcomeLoss, res.Outcome)

	got := h.session.Profile()
	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 7, got.DayStreak, "playing counts toward the day streak")
	assert.Equal(t, 900, got.TotalScore)
	assert.Equal(t, 1, got.GamesPlayed)
	streak, _ := badges.Find(got.Badges, "streak3")
	assert.Equal(t, 0, streak.Progress)
	assert.False(t, streak.Unlocked)
	daily7, _ := badges.Find(got.Badges, "daily7")
	assert.True(t, daily7.Unlocked)

	r, ok := got.Result(daily.Slot{Date: today, Difficulty: puzzle.Impossible})
	require.True(t, ok)
	assert.False(t, r.Solved)
	assert.Equal(t, 2, r.TriesUsed)
	assert.Equal(t, final, r.Board)
	assert.Equal(t, 1, h.saver.calls)
}

func TestReplayNeverRescores(t *testing.T) {
	slot := daily.Slot{Date: yesterday, Difficulty: puzzle.Easy}
	stored := profile.DailyResult{Solved: false, TriesUsed: 4, Board: withCorrect(easyWords, 3), PuzzleIndex: 0}

	for _, win := range []bool{true, false} {
		name := "loss"
		if win {
			name = "win"
		}
		t.Run(name, func(t *testing.T) {
			p := profile.New("p1")
			p.TotalScore = 300
			p.CurrentStreak = 2
			p.DailyResults[slot.Key()] = stored
			h := newHarness(t, p)
			before := h.session.Profile()

			h.session.Load(sel(yesterday, puzzle.Easy))
			require.Equal(t, StatePlaying, h.session.State())
			require.True(t, h.session.View().Replay)

			var res SubmitResult
			if win {
				h.reorder(easyWords)
				res = h.submit()
			} else {
				for h.session.State() == StatePlaying {
					h.reorder(withCorrect(easyWords))
					res = h.submit()
				}
			}
			assert.True(t, res.Replay)
			assert.Equal(t, win, res.Correct)

			after := h.session.Profile()
			assert.Equal(t, before, after)
			assert.Equal(t, stored, after.DailyResults[slot.Key()])
			assert.Zero(t, h.saver.calls)
			assert.Empty(t, h.resolved)
			assert.Nil(t, h.session.View().Score)
		})
	}
}

func TestDayStreakOncePerDate(t *testing.T) {
	h := newHarness(t, profile.New("p1"))

	h.session.Load(sel(today, puzzle.Easy))
	h.reorder(easyWords)
	h.submit()

	h.session.Load(sel(today, puzzle.Hard))
	h.reorder(hardWords)
	h.submit()

	h.session.Load(sel(today, puzzle.Impossible))
	for h.session.State() == StatePlaying {
		h.reorder(withCorrect(impossibleWords))
		h.submit()
	}

	p := h.session.Profile()
	assert.Equal(t, 1, p.DayStreak)
	assert.Equal(t, 0, p.CurrentStreak)
	assert.Equal(t, 3, p.GamesPlayed)
	assert.Equal(t, 125+250+10, p.TotalScore, "second win carries a one-game streak bonus")
}

func TestDayStreakCountsResolutionDate(t *testing.T) {
	h := newHarness(t, profile.New("p1"))

	h.session.Load(sel(yesterday, puzzle.Easy))
	require.False(t, h.session.View().Replay)
	h.reorder(easyWords)
	h.submit()

	h.session.Load(sel(today, puzzle.Hard))
	h.reorder(hardWords)
	h.submit()

	p := h.session.Profile()
	assert.Equal(t, 1, p.DayStreak, "both slots were resolved on the same calendar date")
	assert.Equal(t, 2, p.GamesPlayed)
	r, ok := p.Result(daily.Slot{Date: yesterday, Difficulty: puzzle.Easy})
	require.True(t, ok)
	assert.Equal(t, today, r.ResolvedOn)
}

func TestSaveFailureDoesNotRollBack(t *testing.T) {
	h := newHarness(t, profile.New("p1"))
	h.saver.err = errors.New("disk full")
	h.session.Load(sel(today, puzzle.Hard))
	h.reorder(hardWords)
	res := h.submit()

	assert.Equal(t, OutcomeWin, res.Outcome)
	v := h.session.View()
	assert.Equal(t, StateSolved, v.State)
	assert.True(t, v.SaveFailed)
	require.Len(t, h.saveErrs, 1)
	assert.EqualError(t, h.saveErrs[0], "disk full")
	assert.Equal(t, 250, h.session.Profile().TotalScore, "in-memory profile keeps the result")
}

func TestSubmitRequiresPlaying(t *testing.T) {
	h := newHarness(t, profile.New("p1"))
	_, err := h.session.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotPlaying)
	assert.ErrorIs(t, h.session.Reorder(easyWords), ErrNotPlaying)
}

func TestFeedbackAndShake(t *testing.T) {
	h := newHarness(t, profile.New("p1"))
	h.session.Load(sel(today, puzzle.Easy))

	h.reorder(withCorrect(easyWords))
	res := h.submit()
	assert.Equal(t, noProgressMessage, res.Message)
	assert.True(t, h.session.View().Shake)

	h.reorder(withCorrect(easyWords, 0, 2))
	res = h.submit()
	assert.Equal(t, "Great! Two words locked in!", res.Message)
	assert.False(t, h.session.View().Shake)

	h.reorder(withCorrect(easyWords, 0, 2, 3, 5))
	res = h.submit()
	assert.Equal(t, lastTryMessage, res.Message, "last try wins over progress")
}

func TestFeedbackMessage(t *testing.T) {
	cases := []struct {
		tries, locks int
		want         string
	}{
		{1, 3, lastTryMessage},
		{1, 0, lastTryMessage},
		{3, 0, noProgressMessage},
		{3, 1, "Nice! One word locked in."},
		{2, 4, "Amazing! Four words locked in!"},
		{3, 5, "Incredible! Five words locked in!"},
		{3, 8, "Incredible! Eight words locked in!"},
		{3, 9, "Incredible! 9 words locked in!"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, feedbackMessage(tc.tries, tc.locks))
	}
}

// ---------------------------------------------------------------------------
// locks and hints

func TestToggleUserLock(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, profile.New("p1"))
	h.session.Load(sel(today, puzzle.Easy))
	h.reorder(withCorrect(easyWords, 0))
	h.submit()

	require.NoError(t, h.session.ToggleUserLock(ctx, 0))
	assert.False(t, h.session.View().UserLocked[0], "system-locked tiles ignore user locks")
	p, _ := h.hints.Load(ctx)
	assert.False(t, p.LockUsed)

	require.NoError(t, h.session.ToggleUserLock(ctx, 2))
	assert.True(t, h.session.View().UserLocked[2])
	p, _ = h.hints.Load(ctx)
	assert.True(t, p.LockUsed)

	require.NoError(t, h.session.ToggleUserLock(ctx, 2))
	assert.False(t, h.session.View().UserLocked[2])

	assert.ErrorIs(t, h.session.ToggleUserLock(ctx, 9), ErrBadIndex)

	require.NoError(t, h.session.ToggleUserLock(ctx, 5))
	h.reorder(withCorrect(easyWords, 0))
	h.submit()
	assert.Equal(t, [9]bool{}, h.session.View().UserLocked, "submit clears user locks")
}

func TestToggleUserLockSurvivesPrefsFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, profile.New("p1"), func(c *Config) {
		c.Hints = brokenHints{err: errors.New("prefs offline")}
	})
	h.session.Load(sel(today, puzzle.Easy))

	require.NoError(t, h.session.ToggleUserLock(ctx, 3))
	assert.True(t, h.session.View().UserLocked[3])

	h.reorder(withCorrect(easyWords, 0, 4))
	res := h.submit()
	assert.False(t, res.HintArmed)
}

func TestHintArmsOnFrustratingPattern(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, profile.New("p1"))
	h.session.Load(sel(today, puzzle.Easy))

	h.reorder(withCorrect(easyWords, 0))
	res := h.submit()
	assert.False(t, res.HintArmed, "single edge lock is fine")
	assert.False(t, h.session.DragStart())

	h.reorder(withCorrect(easyWords, 0, 4))
	res = h.submit()
	assert.True(t, res.HintArmed)

	assert.True(t, h.session.DragStart())
	assert.False(t, h.session.DragStart(), "arming is one-shot")
	assert.True(t, h.session.View().HintOpen)

	require.NoError(t, h.session.CloseHint(ctx))
	assert.False(t, h.session.View().HintOpen)
	p, err := h.hints.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Views)
}

func TestHintSuppressedWhenDismissed(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, profile.New("p1"))
	require.NoError(t, h.session.DismissHint(ctx))

	h.session.Load(sel(today, puzzle.Easy))
	h.reorder(withCorrect(easyWords, 1))
	res := h.submit()
	assert.False(t, res.HintArmed)
}

func TestShareText(t *testing.T) {
	slot := daily.Slot{Date: today, Difficulty: puzzle.Easy}
	win := ShareText(slot, profile.DailyResult{Solved: true, TriesUsed: 2}, easyWords)
	assert.Equal(t, "Ninewords 2026-10-17 EASY 2/4\n🟩🟩🟩\n🟩🟩🟩\n🟩🟩🟩", win)

	loss := ShareText(slot, profile.DailyResult{TriesUsed: 4, Board: withCorrect(easyWords, 0, 4)}, easyWords)
	assert.Equal(t, "Ninewords 2026-10-17 EASY X/4\n🟩⬜⬜\n⬜🟩⬜\n⬜⬜⬜", loss)
}
