// Package flappy adapts the flyer-and-gates engine to the terminal platform.
// It maps platform actions onto engine inputs, runs the session at a fixed
// step and projects the play-field onto a character screen.
package flappy

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skygate/internal/core"
	"github.com/vovakirdan/skygate/internal/engine"
	"github.com/vovakirdan/skygate/internal/registry"
)

// Visual characters for rendering
const (
	FlyerChar     = '●'
	FlyerBeakChar = '▶'
	GateChar      = '█'
	GateCapFloor  = '▀'
	GateCapCeil   = '▄'
)

// Game wraps an engine.Session behind the registry.Game interface.
type Game struct {
	cfg     engine.Config
	session *engine.Session
	edges   *core.EdgeDetector
	runtime core.RuntimeConfig
	dt      time.Duration
	paused  bool
	debug   bool
	logger  *log.Logger
}

// New creates a game with the default tuning.
func New() *Game {
	return &Game{
		cfg:    engine.DefaultConfig(),
		edges:  core.NewEdgeDetector(),
		logger: log.New(io.Discard),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Skygate"
}

// Configure replaces the engine tuning. It takes effect on the next Reset.
func (g *Game) Configure(cfg engine.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.cfg = cfg
	return nil
}

// SetLogger routes lifecycle events to l.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.logger = l
}

// Reset starts a fresh session seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = cfg
	g.dt = time.Second / time.Duration(cfg.TickRate)

	session, err := engine.NewSession(g.cfg, engine.NewRand(cfg.Seed))
	if err != nil {
		// Configure validates, so only a corrupted Game reaches this.
		panic(fmt.Sprintf("flappy: %v", err))
	}
	g.session = session
	g.edges.Reset()
	g.paused = false

	g.logger.Debug("session started", "seed", cfg.Seed, "tick_rate", cfg.TickRate)
}

// Step advances the game by one fixed tick. in holds the actions held
// during the tick; only fresh presses reach the engine.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	pressed := g.edges.Update(in)

	if pressed.Has(core.ActionDebug) {
		g.debug = !g.debug
	}

	if pressed.Has(core.ActionPause) && g.session.State() == engine.StatePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	res := g.session.Tick(g.dt, engine.Input{
		Flap:    pressed.Has(core.ActionFlap),
		Restart: pressed.Has(core.ActionRestart),
	})

	var result core.StepResult
	for _, ev := range res.Events {
		switch e := ev.(type) {
		case engine.ScoreChanged:
			result.ScoreChanged = true
		case engine.Lost:
			g.logger.Debug("lost", "score", e.Score, "tick", e.Tick, "hits", e.Hits)
		case engine.Restarted:
			result.Restarted = true
			g.logger.Debug("restarted")
		}
	}
	result.State = g.State()
	return result
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Paused: g.paused}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.State() == engine.StateLoss,
		Paused:   g.paused,
	}
}

// Snapshot returns the engine view of the current session.
func (g *Game) Snapshot() engine.Snapshot {
	return g.session.Snapshot()
}

// Debug reports whether the collider overlay is shown.
func (g *Game) Debug() bool {
	return g.debug
}

// SetDebug shows or hides the collider overlay.
func (g *Game) SetDebug(on bool) {
	g.debug = on
}

// Register the game with the registry
func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
}
