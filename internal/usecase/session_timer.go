package usecase

import "time"

// SessionTimer schedules countdown ticks one at a time. Every Reset or Stop
// starts a new generation, and ticks carrying an older generation are stale.
// It is not safe for concurrent use; BankUseCase calls it under its lock.
type SessionTimer struct {
	scheduler  Scheduler
	tick       time.Duration
	onTick     func(gen uint64)
	task       Task
	generation uint64
}

// NewSessionTimer creates a timer that calls onTick once per tick.
func NewSessionTimer(scheduler Scheduler, tick time.Duration, onTick func(gen uint64)) *SessionTimer {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &SessionTimer{
		scheduler: scheduler,
		tick:      tick,
		onTick:    onTick,
	}
}

// Reset cancels the live countdown and schedules the first tick of a new one.
func (t *SessionTimer) Reset() uint64 {
	t.Stop()
	t.schedule(t.generation)
	return t.generation
}

// Next schedules the following tick if gen is still the live countdown.
func (t *SessionTimer) Next(gen uint64) bool {
	if !t.Current(gen) {
		return false
	}
	t.schedule(gen)
	return true
}

// Current reports whether gen belongs to the live countdown.
func (t *SessionTimer) Current(gen uint64) bool {
	return t.task != nil && gen == t.generation
}

// Running reports whether a countdown is live.
func (t *SessionTimer) Running() bool {
	return t.task != nil
}

// Stop cancels the live countdown, if any.
func (t *SessionTimer) Stop() {
	if t.task != nil {
		t.task.Cancel()
		t.task = nil
	}
	t.generation++
}

func (t *SessionTimer) schedule(gen uint64) {
	onTick := t.onTick
	t.task = t.scheduler.AfterFunc(t.tick, func() { onTick(gen) })
}
