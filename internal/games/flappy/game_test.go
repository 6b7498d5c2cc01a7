package flappy

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/skygate/internal/core"
	"github.com/vovakirdan/skygate/internal/engine"
	"github.com/vovakirdan/skygate/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func flyerOf(t *testing.T, g *Game) engine.Renderable {
	t.Helper()
	for _, e := range g.Snapshot().Entities {
		if e.Kind == engine.KindFlyer {
			return e
		}
	}
	t.Fatal("snapshot has no flyer")
	return engine.Renderable{}
}

func playUntilLoss(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		if g.Step(frame()).State.GameOver {
			return
		}
	}
	t.Fatal("game never ended")
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must produce identical sessions
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		if i%20 == 0 {
			inputs[i] = frame(core.ActionFlap)
		} else {
			inputs[i] = frame()
		}
	}

	g1 := New()
	g1.Reset(testConfig(12345))
	g2 := New()
	g2.Reset(testConfig(12345))

	for i, in := range inputs {
		r1 := g1.Step(in)
		r2 := g2.Step(in)
		if r1 != r2 {
			t.Fatalf("tick %d: results differ %+v vs %+v", i, r1, r2)
		}
	}

	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Error("Determinism failed: snapshots differ")
	}
}

func TestGameReset(t *testing.T) {
	g := New()
	g.Reset(testConfig(42))
	playUntilLoss(t, g)

	g.Reset(testConfig(42))

	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("Reset should clear state, got %+v", state)
	}
	if len(g.Snapshot().Entities) != 1 {
		t.Errorf("Reset should leave only the flyer, got %d entities", len(g.Snapshot().Entities))
	}
}

func TestFlapOnlyOnPress(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	held := frame(core.ActionFlap)
	g.Step(held)
	afterFirst := flyerOf(t, g).Pos.Y
	if afterFirst <= 0 {
		t.Fatalf("flap should move the flyer up, y = %f", afterFirst)
	}

	// Holding the key is not a new press: gravity takes over.
	prev := afterFirst
	for i := 0; i < 120; i++ {
		g.Step(held)
		prev = flyerOf(t, g).Pos.Y
	}
	if prev >= afterFirst {
		t.Errorf("held flap should not keep boosting, y went %f -> %f", afterFirst, prev)
	}

	// Release then press again boosts.
	g.Step(frame())
	before := flyerOf(t, g).Pos.Y
	g.Step(held)
	if flyerOf(t, g).Pos.Y <= before {
		t.Error("a fresh press should flap again")
	}
}

func TestGameGravity(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	g.Step(frame())

	if y := flyerOf(t, g).Pos.Y; y >= 0 {
		t.Errorf("Gravity should pull the flyer down, y = %f", y)
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("Game should be paused")
	}

	before := g.Snapshot()
	for i := 0; i < 30; i++ {
		g.Step(frame())
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("Simulation should not advance while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("Game should be unpaused")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	playUntilLoss(t, g)

	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	// Pause is ignored while lost.
	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("pause should not engage after a loss")
	}

	result := g.Step(frame(core.ActionRestart))
	if !result.Restarted || result.State.GameOver {
		t.Errorf("restart result = %+v", result)
	}
	if result.State.Score != 0 {
		t.Errorf("score after restart = %d", result.State.Score)
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// The flyer starts at the field centre: columns 38-41, rows 11-12.
	if screen.Get(38, 11) != FlyerChar {
		t.Errorf("expected flyer at (38, 11), got %q", screen.Get(38, 11))
	}
	if screen.Get(41, 11) != FlyerBeakChar {
		t.Errorf("expected beak at (41, 11), got %q", screen.Get(41, 11))
	}
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing, row 0 = %q", screen.Row(0))
	}
}

func TestGameRenderGatesAndBanner(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	// Let the first pair drift into view.
	for i := 0; i < 180; i++ {
		g.Step(frame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.ContainsRune(screen.String(), GateChar) {
		t.Error("expected gates on screen")
	}

	playUntilLoss(t, g)
	g.Render(screen)
	if !strings.Contains(screen.String(), "You lost!") {
		t.Error("loss banner not drawn")
	}
}

func TestDebugOverlayToggle(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	g.Step(frame(core.ActionDebug))
	if !g.Debug() {
		t.Fatal("debug overlay should be on")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if screen.GetCell(38, 11).Color != core.ColorCollider {
		t.Errorf("collider outline missing at flyer corner, got %+v", screen.GetCell(38, 11))
	}

	g.Step(frame())
	g.Step(frame(core.ActionDebug))
	if g.Debug() {
		t.Error("debug overlay should be off after second press")
	}
}

func TestConfigureRejectsInvalid(t *testing.T) {
	g := New()
	cfg := engine.DefaultConfig()
	cfg.FieldWidth = -1

	if err := g.Configure(cfg); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Errorf("Configure() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("flappy") {
		t.Fatal("flappy should register itself")
	}

	cfg := engine.DefaultConfig()
	cfg.GateSpeed = 250
	g, err := registry.CreateConfigured("flappy", cfg, nil)
	if err != nil {
		t.Fatalf("CreateConfigured() failed: %v", err)
	}
	if g.(*Game).cfg.GateSpeed != 250 {
		t.Error("configuration not applied")
	}
}
