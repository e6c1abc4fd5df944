package entity

import "time"

// TimerMode selects whether a Timer stops or wraps when it completes
type TimerMode int

// Timer modes
const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer counts game time toward a fixed duration. It only advances when ticked.
type Timer struct {
	Duration     time.Duration `json:"duration"`
	Elapsed      time.Duration `json:"elapsed"`
	Mode         TimerMode     `json:"mode"`
	justFinished bool
	timesDone    int
}

// NewTimer creates a stopped-at-zero timer
func NewTimer(d time.Duration, mode TimerMode) Timer {
	return Timer{Duration: d, Mode: mode}
}

// Tick advances the timer by delta. A zero-duration timer finishes on every tick.
func (t *Timer) Tick(delta time.Duration) {
	t.justFinished = false
	t.timesDone = 0
	if t.Mode == TimerOnce && t.Finished() {
		return
	}
	t.Elapsed += delta
	if t.Elapsed < t.Duration {
		return
	}
	t.justFinished = true
	if t.Mode == TimerOnce {
		t.Elapsed = t.Duration
		t.timesDone = 1
		return
	}
	if t.Duration <= 0 {
		t.Elapsed = 0
		t.timesDone = 1
		return
	}
	t.timesDone = int(t.Elapsed / t.Duration)
	t.Elapsed %= t.Duration
}

// Finished reports whether a one-shot timer has reached its duration, or whether
// a repeating timer wrapped during the last tick
func (t *Timer) Finished() bool {
	if t.Mode == TimerRepeating {
		return t.justFinished
	}
	return t.Elapsed >= t.Duration
}

// JustFinished reports whether the last Tick completed the timer
func (t *Timer) JustFinished() bool {
	return t.justFinished
}

// TimesFinished is how many periods the last Tick completed
func (t *Timer) TimesFinished() int {
	return t.timesDone
}

// Reset rewinds the timer to zero
func (t *Timer) Reset() {
	t.Elapsed = 0
	t.justFinished = false
	t.timesDone = 0
}

// Remaining is the time left until completion
func (t *Timer) Remaining() time.Duration {
	if t.Elapsed >= t.Duration {
		return 0
	}
	return t.Duration - t.Elapsed
}
