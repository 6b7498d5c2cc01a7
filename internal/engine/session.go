package engine

import (
	"fmt"
	"time"
)

// TickResult reports the outcome of one Tick.
type TickResult struct {
	State  GameState
	Score  int
	Events []Event
}

// Session is the whole mutable simulation state. It is not safe for
// concurrent use; a renderer on another goroutine should read a Snapshot
// taken between ticks.
type Session struct {
	cfg     Config
	rng     Rand
	store   *Store
	spawner *Spawner
	score   *ScoreClock
	state   GameState
	banner  *Banner
	tick    uint64
}

// NewSession validates cfg and starts a session in the Playing state.
// A nil rng is replaced by a time-seeded source.
func NewSession(cfg Config, rng Rand) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(time.Now().UnixNano())
	}

	s := &Session{
		cfg:     cfg,
		rng:     rng,
		spawner: NewSpawner(cfg, rng),
		score:   NewScoreClock(cfg.ScoreInterval),
	}
	s.reset()
	return s, nil
}

// reset puts the session into the exact fresh-start state.
func (s *Session) reset() {
	s.store = NewStore()
	s.store.SpawnFlyer(
		Vec2{X: s.cfg.FlyerX, Y: 0},
		Vec2{X: s.cfg.FlyerWidth / 2, Y: s.cfg.FlyerHeight / 2},
	)
	s.spawner.Reset()
	s.score.Reset()
	s.state = StatePlaying
	s.banner = nil
	s.tick = 0
}

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

// State returns the current game state.
func (s *Session) State() GameState { return s.state }

// Score returns the current score.
func (s *Session) Score() int { return s.score.Score() }

// Ticks returns the number of simulation steps since the last (re)start.
func (s *Session) Ticks() uint64 { return s.tick }

// maxSubSteps bounds the work done by one Tick call.
const maxSubSteps = 1000

// Tick advances the simulation by dt.
//
// In Playing, each step runs: score clock, flap, gravity, position,
// spawn, gate advance/retire, collision. A dt longer than MaxStep is split
// into equal steps; inputs apply to the first one and stepping stops as soon
// as the session is lost. At most maxSubSteps steps run; any longer dt is
// cut to that. In Loss, only Restart is honoured.
func (s *Session) Tick(dt time.Duration, in Input) TickResult {
	if dt < 0 {
		dt = 0
	}

	var events []Event
	switch s.state {
	case StateLoss:
		if in.Restart {
			events = s.restart(events)
		}
	case StatePlaying:
		if dt/s.cfg.MaxStep >= maxSubSteps {
			dt = s.cfg.MaxStep * maxSubSteps
		}
		steps := 1
		if dt > s.cfg.MaxStep {
			steps = int(dt / s.cfg.MaxStep)
			if dt%s.cfg.MaxStep != 0 {
				steps++
			}
		}
		step := dt / time.Duration(steps)
		rest := dt - step*time.Duration(steps)

		for i := 0; i < steps && s.state == StatePlaying; i++ {
			d := step
			if i == steps-1 {
				d += rest
			}
			events = s.step(d, in.Flap && i == 0, events)
		}
	default:
		panic(fmt.Sprintf("engine: unknown state %d", s.state))
	}

	return TickResult{
		State:  s.state,
		Score:  s.score.Score(),
		Events: events,
	}
}

func (s *Session) step(dt time.Duration, flap bool, events []Event) []Event {
	s.tick++
	secs := dt.Seconds()

	if s.score.Update(dt) {
		events = append(events, ScoreChanged{Score: s.score.Score()})
	}

	flyer := s.store.Flyer()
	if flyer == nil {
		invariantf("playing without a flyer")
		return events
	}
	if flap {
		flyer.Flyer.Velocity = ApplyFlap(s.cfg.FlapVelocity, s.cfg.MinVelocity, s.cfg.MaxVelocity)
	}
	flyer.Flyer.Velocity = ApplyGravity(flyer.Flyer.Velocity, s.cfg.Gravity, secs, s.cfg.MinVelocity, s.cfg.MaxVelocity)

	bottom, top := s.cfg.FlyerBounds()
	flyer.Pos.Y = Integrate(flyer.Pos.Y, flyer.Flyer.Velocity, secs, bottom, top)

	if ok, floor, ceiling := s.spawner.Update(dt, s.score.Score(), s.store); ok {
		events = append(events, GateSpawned{Floor: floor, Ceiling: ceiling})
	}
	for _, id := range s.spawner.AdvanceGates(dt, s.store) {
		events = append(events, GateRetired{ID: id})
	}

	if hits := DetectCollisions(s.store); hits > 0 {
		events = s.lose(hits, events)
	}
	return events
}

func (s *Session) lose(hits int, events []Event) []Event {
	if s.state != StatePlaying {
		invariantf("loss requested in state %s", s.state)
		return events
	}
	s.state = StateLoss
	s.banner = lossBanner()
	return append(events, Lost{Tick: s.tick, Score: s.score.Score(), Hits: hits})
}

func (s *Session) restart(events []Event) []Event {
	if s.state != StateLoss {
		invariantf("restart requested in state %s", s.state)
		return events
	}
	prev := s.score.Score()
	s.reset()
	events = append(events, Restarted{})
	if prev != 0 {
		events = append(events, ScoreChanged{Score: 0})
	}
	return events
}
