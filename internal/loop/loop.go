// Package loop drives the game with the Input → Draw → Step → Wait cycle.
package loop

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/sound"
)

// Source delivers the keys pressed since the previous poll without blocking.
type Source interface {
	Poll() input.Input
}

// Renderer draws one frame from a snapshot.
type Renderer interface {
	Render(snap game.Snapshot) error
}

// Options wires a game loop. Engine, Input and Renderer are required.
type Options struct {
	Engine   *game.Engine
	Input    Source
	Renderer Renderer
	Clock    Clock        // Defaults to RealClock
	Sound    sound.Player // Defaults to sound.Silent
	Logger   *log.Logger
	MaxTicks int // Zero runs until cancelled or quit
}

var ErrMissingOption = errors.New("loop: engine, input and renderer are required")

// Run ticks the game until ctx is cancelled, the player quits, or MaxTicks
// ticks have run. Cancellation and quitting are normal ends and return nil;
// a renderer error (a closed terminal, for example) is returned.
func Run(ctx context.Context, opts Options) error {
	if opts.Engine == nil || opts.Input == nil || opts.Renderer == nil {
		return ErrMissingOption
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Sound == nil {
		opts.Sound = sound.Silent{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	engine := opts.Engine
	ctrl := engine.Controller()
	defer func() {
		st := engine.Stats()
		opts.Logger.Info("session over",
			"ticks", st.Ticks,
			"food", st.FoodEaten,
			"resets", st.BoundaryHits+st.SelfHits,
			"best", st.BestRunScore,
			"high", engine.HighScore())
	}()

	for tick := 0; opts.MaxTicks == 0 || tick < opts.MaxTicks; tick++ {
		if ctx.Err() != nil {
			return nil
		}

		// ===== INPUT PHASE =====
		in := opts.Input.Poll()
		if in.Quit {
			opts.Logger.Debug("quit requested", "tick", tick)
			return nil
		}
		for _, d := range in.Directions {
			if !ctrl.RequestDirection(d) {
				opts.Logger.Debug("direction rejected", "requested", d, "heading", ctrl.Heading())
			}
		}

		// ===== DRAW PHASE =====
		if err := opts.Renderer.Render(engine.Snapshot()); err != nil {
			return err
		}

		// ===== UPDATE PHASE =====
		out := engine.Step()
		if out.Ate {
			opts.Sound.Eat()
		}
		if out.Collision != game.CollisionNone {
			opts.Logger.Info("run over", "cause", out.Collision, "score", out.Score, "high", engine.HighScore())
			opts.Sound.Crash()
			if err := opts.Renderer.Render(engine.Snapshot()); err != nil {
				return err
			}
			engine.ClearCollision()
			if err := opts.Clock.Sleep(ctx, engine.ResetPause()); err != nil {
				return nil
			}
		}

		// ===== FRAME TIMING =====
		if err := opts.Clock.Sleep(ctx, engine.Interval()); err != nil {
			return nil
		}
	}
	return nil
}
