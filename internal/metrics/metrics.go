// Package metrics exposes prometheus counters for session outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Resolutions counts terminal submits by outcome ("win"/"loss"),
	// difficulty, and whether the slot was a replay.
	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ninewords",
		Name:      "resolutions_total",
		Help:      "Puzzle sessions resolved, by outcome, difficulty and replay.",
	}, []string{"outcome", "difficulty", "replay"})

	// Submits counts non-terminal submits by whether new tiles locked.
	Submits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ninewords",
		Name:      "submits_total",
		Help:      "Non-resolving submits, by progress.",
	}, []string{"progress"})

	SaveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ninewords",
		Name:      "profile_save_failures_total",
		Help:      "Profile saves that returned an error.",
	})

	BadgesUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ninewords",
		Name:      "badges_unlocked_total",
		Help:      "Badges surfaced as newly unlocked.",
	}, []string{"badge"})

	HintsShown = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ninewords",
		Name:      "lock_hints_shown_total",
		Help:      "Lock hints opened on drag start.",
	})

	SettlesCanceled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ninewords",
		Name:      "settles_canceled_total",
		Help:      "Pending puzzle settles superseded by a newer load.",
	})
)
