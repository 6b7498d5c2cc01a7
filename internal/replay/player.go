package replay

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skygate/internal/core"
	"github.com/vovakirdan/skygate/internal/registry"
)

// Result summarises a headless playback.
type Result struct {
	Ticks    int
	Score    int // Score when the recording ends
	Best     int // Highest score reached across restarts
	Losses   int
	Restarts int
	Final    core.GameState
}

// NewGame builds and resets the game a replay was recorded with.
func NewGame(r *Replay, logger *log.Logger) (registry.Game, error) {
	g, err := registry.CreateConfigured(r.GameID, r.Config.Engine(), logger)
	if err != nil {
		return nil, err
	}
	g.Reset(r.Runtime())
	return g, nil
}

// Play re-simulates r without rendering. It checks ctx periodically so a
// long replay can be cancelled.
func Play(ctx context.Context, r *Replay, logger *log.Logger) (Result, error) {
	g, err := NewGame(r, logger)
	if err != nil {
		return Result{}, err
	}

	var res Result
	cur := r.Cursor()
	wasOver := false
	for {
		if cur.Tick()%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		in, ok := cur.Next()
		if !ok {
			break
		}
		step := g.Step(in)
		res.Ticks++

		if step.Restarted {
			res.Restarts++
		}
		if step.State.GameOver && !wasOver {
			res.Losses++
			if logger != nil {
				logger.Info("loss", "tick", res.Ticks, "score", step.State.Score)
			}
		}
		wasOver = step.State.GameOver
		res.Best = max(res.Best, step.State.Score)
	}

	res.Final = g.State()
	res.Score = res.Final.Score
	return res, nil
}
