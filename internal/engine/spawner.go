package engine

import "time"

// SpawnInterval returns the delay before the next gate pair for a given score:
// max(minI, maxI - (score/2)*step), never above maxI.
func SpawnInterval(score int, minI, maxI, step time.Duration) time.Duration {
	if score < 0 {
		score = 0
	}
	if step <= 0 {
		return maxI
	}

	halves := time.Duration(score / 2)
	// Once the reduction covers the whole range the floor applies; checking
	// by division avoids overflowing halves*step.
	if halves >= (maxI-minI)/step+1 {
		return minI
	}
	d := maxI - halves*step
	if d < minI {
		return minI
	}
	return d
}

// Spawner emits gate pairs on a difficulty-scaled cadence and moves them.
type Spawner struct {
	cfg   Config
	rng   Rand
	timer *Timer
}

// NewSpawner creates a spawner whose first pair appears after MinSpawnInterval.
func NewSpawner(cfg Config, rng Rand) *Spawner {
	return &Spawner{
		cfg:   cfg,
		rng:   rng,
		timer: NewTimer(cfg.MinSpawnInterval, TimerRepeating),
	}
}

// Reset restores the initial interval and clears the accumulator.
func (sp *Spawner) Reset() {
	sp.timer.SetDuration(sp.cfg.MinSpawnInterval)
	sp.timer.Reset()
}

// Timer exposes the spawn timer for inspection.
func (sp *Spawner) Timer() *Timer { return sp.timer }

// Update advances the spawn timer. When it fires, the next interval is
// recomputed from score and one gate pair is created.
func (sp *Spawner) Update(dt time.Duration, score int, store *Store) (spawned bool, floor, ceiling EntityID) {
	if !sp.timer.Tick(dt) {
		return false, 0, 0
	}
	sp.timer.SetDuration(SpawnInterval(score, sp.cfg.MinSpawnInterval, sp.cfg.MaxSpawnInterval, sp.cfg.SpawnRampStep))
	floor, ceiling = sp.SpawnPair(store)
	return true, floor, ceiling
}

// SpawnPair creates a floor gate and its mirrored ceiling gate just beyond
// the right edge.
func (sp *Spawner) SpawnPair(store *Store) (floor, ceiling EntityID) {
	halfH := int(sp.cfg.FieldHeight / 2)
	y := sp.rng.IntRange(-halfH-sp.cfg.FloorBand, -halfH+sp.cfg.FloorBand)
	gap := sp.rng.IntRange(sp.cfg.MinGap, sp.cfg.MinGap+sp.cfg.GapSpread)

	x := sp.cfg.SpawnX()
	half := Vec2{X: sp.cfg.GateWidth / 2, Y: sp.cfg.GateHeight / 2}

	floor = store.SpawnGate(Vec2{X: x, Y: float64(y)}, half, false)
	ceiling = store.SpawnGate(Vec2{X: x, Y: float64(y + gap)}, half, true)
	return floor, ceiling
}

// AdvanceGates moves every gate left by GateSpeed*dt and removes those past
// the retire line.
func (sp *Spawner) AdvanceGates(dt time.Duration, store *Store) []EntityID {
	dx := sp.cfg.GateSpeed * dt.Seconds()
	store.Each(KindGate, func(g *Entity) {
		g.Pos.X -= dx
	})

	retireX := sp.cfg.RetireX()
	return store.RemoveWhere(KindGate, func(g *Entity) bool {
		return g.Pos.X < retireX
	})
}
