// internal/game/scheduler.go
//
// Deferred actions for the settle step after a board is generated.
// Tests swap in a manual scheduler; production uses time.AfterFunc.

package game

import "time"

// Scheduler runs deferred actions. The returned stop func cancels a pending
// action and reports whether it was still pending.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}
