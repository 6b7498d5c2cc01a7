package engine

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func newTestSession(t *testing.T, rng Rand) *Session {
	t.Helper()
	s, err := NewSession(DefaultConfig(), rng)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func runUntilLoss(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		if s.Tick(16*time.Millisecond, Input{}).State == StateLoss {
			return
		}
	}
	t.Fatal("session never reached loss")
}

func hasEvent[E Event](events []Event) bool {
	for _, ev := range events {
		if _, ok := ev.(E); ok {
			return true
		}
	}
	return false
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero field width", func(c *Config) { c.FieldWidth = 0 }},
		{"negative gate height", func(c *Config) { c.GateHeight = -1 }},
		{"flyer taller than field", func(c *Config) { c.FlyerHeight = 400 }},
		{"negative gravity", func(c *Config) { c.Gravity = -1 }},
		{"inverted velocity range", func(c *Config) { c.MinVelocity, c.MaxVelocity = 10, -10 }},
		{"empty gap range", func(c *Config) { c.GapSpread = 0 }},
		{"zero floor band", func(c *Config) { c.FloorBand = 0 }},
		{"inverted spawn bounds", func(c *Config) { c.MinSpawnInterval = 4 * time.Second }},
		{"zero score interval", func(c *Config) { c.ScoreInterval = 0 }},
		{"zero max step", func(c *Config) { c.MaxStep = 0 }},
		{"negative ramp", func(c *Config) { c.SpawnRampStep = -time.Millisecond }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			s, err := NewSession(cfg, nil)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("NewSession() error = %v, expected ErrInvalidConfig", err)
			}
			if s != nil {
				t.Error("NewSession() should not return a session on error")
			}
		})
	}
}

func TestFreshSession(t *testing.T) {
	s := newTestSession(t, NewRand(1))
	snap := s.Snapshot()

	if snap.State != StatePlaying || snap.Score != 0 || snap.Banner != nil {
		t.Errorf("fresh snapshot = %+v", snap)
	}
	if len(snap.Entities) != 1 || snap.Entities[0].Kind != KindFlyer {
		t.Fatalf("expected a lone flyer, got %+v", snap.Entities)
	}
	if snap.Entities[0].Pos != (Vec2{X: 0, Y: 0}) {
		t.Errorf("flyer at %+v, expected origin", snap.Entities[0].Pos)
	}
	if snap.Field != (Vec2{X: 700, Y: 400}) {
		t.Errorf("field = %+v", snap.Field)
	}
}

func TestScoreChangesEvery750ms(t *testing.T) {
	s := newTestSession(t, NewRand(1))

	for i := 1; i <= 74; i++ {
		if r := s.Tick(10*time.Millisecond, Input{}); hasEvent[ScoreChanged](r.Events) {
			t.Fatalf("score changed early at %dms", i*10)
		}
	}
	r := s.Tick(10*time.Millisecond, Input{})
	if !hasEvent[ScoreChanged](r.Events) || r.Score != 1 {
		t.Fatalf("expected ScoreChanged to 1 at 750ms, got score %d events %v", r.Score, r.Events)
	}
}

func TestFirstGatePairAt1500ms(t *testing.T) {
	s := newTestSession(t, NewRand(1))

	for i := 1; i < 150; i++ {
		if r := s.Tick(10*time.Millisecond, Input{}); hasEvent[GateSpawned](r.Events) {
			t.Fatalf("gates spawned early at %dms", i*10)
		}
	}
	r := s.Tick(10*time.Millisecond, Input{})
	if !hasEvent[GateSpawned](r.Events) {
		t.Fatal("expected GateSpawned at 1500ms")
	}
	if s.store.GateCount() != 2 {
		t.Errorf("GateCount() = %d, expected 2", s.store.GateCount())
	}
	// Score is 2 when the spawner fires, so the next interval is one ramp step shorter.
	if d := s.spawner.Timer().Duration(); d != 2998*time.Millisecond {
		t.Errorf("next spawn interval = %s, expected 2.998s", d)
	}
}

func TestLargeTickMatchesSubsteps(t *testing.T) {
	whole := newTestSession(t, NewRand(9))
	split := newTestSession(t, NewRand(9))

	whole.Tick(time.Second, Input{})
	for i := 0; i < 10; i++ {
		split.Tick(100*time.Millisecond, Input{})
	}

	if !reflect.DeepEqual(whole.Snapshot(), split.Snapshot()) {
		t.Errorf("Tick(1s) diverged from 10 x Tick(100ms):\n%+v\n%+v", whole.Snapshot(), split.Snapshot())
	}
	if whole.Ticks() != 10 {
		t.Errorf("Ticks() = %d, expected 10 sub-steps", whole.Ticks())
	}
}

func TestFlapSetsVelocity(t *testing.T) {
	s := newTestSession(t, NewRand(1))

	for i := 0; i < 3; i++ {
		s.Tick(10*time.Millisecond, Input{Flap: true})
		if v := s.store.Flyer().Flyer.Velocity; v < 148-epsilon || v > 148+epsilon {
			t.Fatalf("flap %d: velocity = %v, expected 148", i+1, v)
		}
	}
}

func TestLossFreezesSession(t *testing.T) {
	s := newTestSession(t, NewRand(3))
	runUntilLoss(t, s)

	before := s.Snapshot()
	if before.Banner == nil || before.Banner.Title != "You lost!" {
		t.Fatalf("loss banner = %+v", before.Banner)
	}

	for i := 0; i < 50; i++ {
		r := s.Tick(100*time.Millisecond, Input{Flap: true})
		if len(r.Events) != 0 {
			t.Fatalf("events emitted while lost: %v", r.Events)
		}
	}

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("session changed while in loss")
	}
}

func TestRestartMatchesFreshSession(t *testing.T) {
	s := newTestSession(t, NewRand(3))
	runUntilLoss(t, s)
	if s.Score() == 0 {
		t.Fatal("expected a non-zero score before restarting")
	}

	r := s.Tick(16*time.Millisecond, Input{Restart: true})

	if r.State != StatePlaying {
		t.Fatalf("state after restart = %s", r.State)
	}
	if !hasEvent[Restarted](r.Events) || !hasEvent[ScoreChanged](r.Events) {
		t.Errorf("restart events = %v", r.Events)
	}

	fresh := newTestSession(t, NewRand(3))
	if !reflect.DeepEqual(s.Snapshot(), fresh.Snapshot()) {
		t.Errorf("restarted snapshot differs from fresh:\n%+v\n%+v", s.Snapshot(), fresh.Snapshot())
	}
	if s.spawner.Timer().Duration() != s.cfg.MinSpawnInterval || s.spawner.Timer().Elapsed() != 0 {
		t.Error("spawn timer not reset")
	}
	if s.score.Timer().Elapsed() != 0 {
		t.Error("score timer not reset")
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	s := newTestSession(t, NewRand(3))
	s.Tick(500*time.Millisecond, Input{})

	r := s.Tick(10*time.Millisecond, Input{Restart: true})
	if hasEvent[Restarted](r.Events) {
		t.Error("restart honoured while playing")
	}
	if s.Ticks() == 0 {
		t.Error("session should keep running")
	}
}

func TestDeterministicWithSameSeed(t *testing.T) {
	a := newTestSession(t, NewRand(42))
	b := newTestSession(t, NewRand(42))

	for i := 0; i < 1000; i++ {
		in := Input{Flap: i%25 == 0, Restart: i%200 == 199}
		ra := a.Tick(16*time.Millisecond, in)
		rb := b.Tick(16*time.Millisecond, in)

		if !reflect.DeepEqual(ra, rb) {
			t.Fatalf("tick %d results diverged: %+v vs %+v", i, ra, rb)
		}
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Error("final snapshots diverged")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a := newTestSession(t, NewRand(5))
	b := newTestSession(t, NewRand(5))
	before := b.Snapshot()

	for i := 0; i < 200; i++ {
		a.Tick(16*time.Millisecond, Input{Flap: i%10 == 0})
	}

	if !reflect.DeepEqual(before, b.Snapshot()) {
		t.Error("ticking one session changed another")
	}
}

func TestSnapshotOrdersByDepth(t *testing.T) {
	s := newTestSession(t, NewRand(1))
	s.Tick(1600*time.Millisecond, Input{})

	snap := s.Snapshot()
	if len(snap.Entities) != 3 {
		t.Fatalf("expected flyer and one gate pair, got %d entities", len(snap.Entities))
	}
	last := snap.Entities[len(snap.Entities)-1]
	if last.Kind != KindFlyer {
		t.Errorf("flyer should be drawn last, got %s", last.Kind)
	}
	if len(snap.Colliders) != len(snap.Entities) {
		t.Errorf("%d colliders for %d entities", len(snap.Colliders), len(snap.Entities))
	}

	snap.Entities[0].Pos.X = 12345
	if s.Snapshot().Entities[0].Pos.X == 12345 {
		t.Error("snapshot should be a copy")
	}
}

func TestHugeTickIsBounded(t *testing.T) {
	for _, dt := range []time.Duration{math.MaxInt64, math.MaxInt64 - 1, 24 * 365 * time.Hour} {
		s := newTestSession(t, NewSequenceRand(0))
		s.Tick(dt, Input{})

		if s.Ticks() == 0 {
			t.Errorf("Tick(%v) ran no steps", dt)
		}
		if s.Ticks() > maxSubSteps {
			t.Errorf("Tick(%v) ran %d steps, expected at most %d", dt, s.Ticks(), maxSubSteps)
		}
	}
}
