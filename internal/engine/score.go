package engine

import "time"

// ScoreClock adds one point per firing of a fixed-period timer.
type ScoreClock struct {
	timer *Timer
	score int
}

// NewScoreClock creates a clock at zero.
func NewScoreClock(interval time.Duration) *ScoreClock {
	return &ScoreClock{timer: NewTimer(interval, TimerRepeating)}
}

// Update advances the clock and reports whether the score changed.
func (sc *ScoreClock) Update(dt time.Duration) bool {
	if sc.timer.Tick(dt) {
		sc.score++
		return true
	}
	return false
}

// Score returns the current score.
func (sc *ScoreClock) Score() int { return sc.score }

// Timer exposes the score timer for inspection.
func (sc *ScoreClock) Timer() *Timer { return sc.timer }

// Reset zeroes both the score and the timer accumulator.
func (sc *ScoreClock) Reset() {
	sc.score = 0
	sc.timer.Reset()
}
