// Package game runs the snake simulation one tick at a time.
//
// The engine owns the score, the high score and the tick interval; the board
// owns geometry; the controller owns the player's pending direction. The
// engine never sleeps: the loop performs the tick wait and the reset pause
// so a test can run thousands of ticks instantly.
package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/snake/internal/board"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/score"
)

// Collision identifies what ended a run.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionBoundary
	CollisionSelf
)

func (c Collision) String() string {
	switch c {
	case CollisionBoundary:
		return "boundary"
	case CollisionSelf:
		return "self"
	default:
		return "none"
	}
}

// Outcome reports what one Step did.
type Outcome struct {
	Ate       bool
	Collision Collision
	Score     int // Score at the end of the tick, before any reset
}

// Stats counts what happened over the engine's lifetime.
type Stats struct {
	Ticks         uint64
	FoodEaten     int
	BoundaryHits  int
	SelfHits      int
	BestRunScore  int
	HighScoreSets int
}

// Engine advances the game state once per tick.
type Engine struct {
	board      *board.Board
	controller *input.Controller
	store      score.Store
	logger     *log.Logger
	timing     config.Timing

	score         int
	highScore     int
	interval      time.Duration
	lastCollision Collision
	lostScore     int
	loadErr       error
	stats         Stats
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithTiming overrides the default tick tempo.
func WithTiming(t config.Timing) Option {
	return func(e *Engine) {
		e.timing = t
	}
}

// New creates an engine over b, reading directions from ctrl and persisting
// high scores to store. The high score is loaded here and re-read after
// each save and reset; a load failure is logged and the game starts from
// zero (see LoadErr).
func New(b *board.Board, ctrl *input.Controller, store score.Store, opts ...Option) *Engine {
	e := &Engine{
		board:      b,
		controller: ctrl,
		store:      store,
		logger:     logging.Discard(),
		timing:     config.DefaultTiming(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.interval = e.timing.BaseInterval

	high, err := store.Load()
	if err != nil {
		e.loadErr = err
		e.logger.Warn("high score unavailable, starting from zero", "err", err)
		high = 0
	}
	e.highScore = high
	return e
}

// Step runs one tick: boundary check, food check, body shift, head move,
// self-collision check, in that order. A boundary hit short-circuits the
// rest of the tick.
func (e *Engine) Step() Outcome {
	e.stats.Ticks++
	b := e.board

	if b.IsOutOfBounds(b.Head) {
		out := Outcome{Collision: CollisionBoundary, Score: e.score}
		e.collide(CollisionBoundary)
		return out
	}
	e.lastCollision = CollisionNone

	var out Outcome
	if b.IsCollidingWithFood(b.Head, b.Food) {
		e.consume()
		out.Ate = true
	}

	b.ShiftBody()
	b.AdvanceHead(e.controller.Commit())

	out.Score = e.score
	if b.IsCollidingWithSelf(b.Head) {
		out.Collision = CollisionSelf
		e.collide(CollisionSelf)
	}
	return out
}

// consume handles a food hit: relocate food, grow, score, speed up.
func (e *Engine) consume() {
	b := e.board
	food := b.RelocateFood()
	b.GrowAt(b.Tail())

	e.score += config.FoodScore
	e.stats.FoodEaten++
	if e.score > e.stats.BestRunScore {
		e.stats.BestRunScore = e.score
	}

	if e.score > e.highScore {
		e.highScore = e.score
		e.stats.HighScoreSets++
		if err := e.store.Save(e.highScore); err != nil {
			e.logger.Error("save high score", "score", e.highScore, "err", err)
		} else {
			e.logger.Info("new high score", "score", e.highScore)
			e.syncHighScore()
		}
	}

	e.interval -= e.timing.IntervalStep
	if e.interval < e.timing.MinInterval {
		e.interval = e.timing.MinInterval
	}

	e.logger.Debug("food eaten", "score", e.score, "segments", len(b.Segments), "food", food, "interval", e.interval)
}

func (e *Engine) collide(c Collision) {
	switch c {
	case CollisionBoundary:
		e.stats.BoundaryHits++
	case CollisionSelf:
		e.stats.SelfHits++
	}
	e.logger.Debug("collision", "cause", c, "score", e.score, "head", e.board.Head)
	e.lostScore = e.score
	e.Reset()
	e.lastCollision = c
	e.syncHighScore()
}

// syncHighScore adopts a stored record higher than ours. Other sessions
// sharing the store may have raised it; a Save below it is a no-op.
func (e *Engine) syncHighScore() {
	stored, err := e.store.Load()
	if err != nil {
		e.logger.Debug("reload high score", "err", err)
		return
	}
	if stored > e.highScore {
		e.highScore = stored
	}
}

// ClearCollision drops the crash marker once the crash frame is drawn.
func (e *Engine) ClearCollision() {
	e.lastCollision = CollisionNone
}

// Reset returns the snake, score and tempo to their initial values. The
// high score is kept.
func (e *Engine) Reset() {
	e.board.ResetSnake()
	e.controller.Reset()
	e.score = 0
	e.interval = e.timing.BaseInterval
	e.lastCollision = CollisionNone
}

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// HighScore returns the best score seen, persisted or not.
func (e *Engine) HighScore() int { return e.highScore }

// Interval returns the delay to wait before the next tick.
func (e *Engine) Interval() time.Duration { return e.interval }

// ResetPause returns the pause taken after a collision.
func (e *Engine) ResetPause() time.Duration { return e.timing.ResetPause }

// LoadErr returns the error hit while loading the high score, if any.
func (e *Engine) LoadErr() error { return e.loadErr }

// Stats returns lifetime counters.
func (e *Engine) Stats() Stats { return e.stats }

// Controller returns the direction controller fed by the input source.
func (e *Engine) Controller() *input.Controller { return e.controller }
