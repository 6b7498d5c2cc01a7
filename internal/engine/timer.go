package engine

import "time"

// MinTimerDuration is the smallest period a Timer accepts.
const MinTimerDuration = time.Millisecond

// TimerMode selects whether a timer stops or wraps when it finishes.
type TimerMode uint8

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer accumulates elapsed time and fires when it reaches its duration.
type Timer struct {
	duration      time.Duration
	elapsed       time.Duration
	mode          TimerMode
	timesFinished int
}

// NewTimer creates a timer with a clamped duration and zero elapsed time.
func NewTimer(d time.Duration, mode TimerMode) *Timer {
	t := &Timer{mode: mode}
	t.SetDuration(d)
	return t
}

// Tick advances the timer and reports whether it finished during this call.
// A repeating timer that spans several periods still reports a single true;
// TimesFinished tells how many periods were crossed.
func (t *Timer) Tick(elapsed time.Duration) bool {
	if elapsed < 0 {
		elapsed = 0
	}
	t.timesFinished = 0

	switch t.mode {
	case TimerRepeating:
		t.elapsed += elapsed
		if t.elapsed >= t.duration {
			t.timesFinished = int(t.elapsed / t.duration)
			t.elapsed %= t.duration
		}
	default:
		if t.elapsed >= t.duration {
			return false
		}
		t.elapsed += elapsed
		if t.elapsed >= t.duration {
			t.elapsed = t.duration
			t.timesFinished = 1
		}
	}

	return t.timesFinished > 0
}

// SetDuration changes the period used from now on.
// Values below MinTimerDuration are raised to it.
func (t *Timer) SetDuration(d time.Duration) {
	if d < MinTimerDuration {
		d = MinTimerDuration
	}
	t.duration = d
}

// Reset zeroes the accumulator without touching the duration.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.timesFinished = 0
}

// Duration returns the current period.
func (t *Timer) Duration() time.Duration { return t.duration }

// Elapsed returns the time accumulated towards the next firing.
func (t *Timer) Elapsed() time.Duration { return t.elapsed }

// TimesFinished returns how many periods the last Tick crossed.
func (t *Timer) TimesFinished() int { return t.timesFinished }

// Fraction returns elapsed/duration in [0, 1].
func (t *Timer) Fraction() float64 {
	return float64(t.elapsed) / float64(t.duration)
}
