package scheduler

import (
	"time"

	"github.com/iho/bankist/internal/usecase"
)

// Clock schedules callbacks on the wall clock.
type Clock struct {
	loc *time.Location
}

// New creates a Clock reporting times in loc. A nil loc means time.Local.
func New(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.Local
	}
	return &Clock{loc: loc}
}

// Now returns the current time in the configured location.
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// AfterFunc runs fn on its own goroutine after d.
func (c *Clock) AfterFunc(d time.Duration, fn func()) usecase.Task {
	return timerTask{t: time.AfterFunc(d, fn)}
}

type timerTask struct {
	t *time.Timer
}

func (t timerTask) Cancel() bool {
	return t.t.Stop()
}
