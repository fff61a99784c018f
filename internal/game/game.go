// Package game implements the application loop that drives the state stack.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/ubiengine/internal/assets"
	"github.com/Faultbox/ubiengine/internal/config"
	"github.com/Faultbox/ubiengine/internal/crash"
	"github.com/Faultbox/ubiengine/internal/engine/audio"
	"github.com/Faultbox/ubiengine/internal/engine/clock"
	"github.com/Faultbox/ubiengine/internal/engine/input"
	"github.com/Faultbox/ubiengine/internal/game/states"
	"github.com/Faultbox/ubiengine/internal/logger"
)

// Option configures a Game.
type Option func(*Game)

// WithRegistry resolves state and input ids against r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(g *Game) { g.registry = r }
}

// WithSurface sets the presentation surface. Without one the game runs headless.
func WithSurface(s Surface) Option {
	return func(g *Game) { g.surface = s }
}

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithClock sets the frame clock. Used by tests.
func WithClock(c *clock.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// Game is the main game instance.
type Game struct {
	cfg      *config.Config
	registry *Registry
	log      *zap.Logger
	runID    string

	clock   *clock.Clock
	inputs  *input.Registry
	stack   *states.Stack
	surface Surface
	audio   *audio.Manager
	assets  *assets.Manager
	ctx     *Context

	opened       bool
	bootstrapped bool
	closed       bool
	err          error
}

// New creates a new game instance. Nothing is opened until Bootstrap.
func New(cfg *config.Config, opts ...Option) *Game {
	if cfg == nil {
		cfg = &config.Config{}
	}
	g := &Game{
		cfg:      cfg,
		registry: DefaultRegistry,
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.Named("game")
	}
	g.log = g.log.With(zap.String("run", g.runID))
	return g
}

// Bootstrap validates the configuration and builds every runtime component.
// The stack is seeded with one instance of the configured first state.
func (g *Game) Bootstrap() error {
	if err := g.cfg.Validate(); err != nil {
		return err
	}
	cfg := *g.cfg

	g.log.Info("initializing game",
		zap.String("title", cfg.WindowTitle),
		zap.Int("width", cfg.WindowWidth),
		zap.Int("height", cfg.WindowHeight),
		zap.String("root", cfg.RootPath),
		zap.String("first_state", cfg.FirstState),
	)

	if g.clock == nil {
		g.clock = clock.New()
	}
	g.inputs = input.NewRegistry()
	g.stack = states.NewStack()
	g.assets = assets.NewManager(cfg.RootPath)
	g.audio = audio.New(audio.Config{
		MasterVolume: cfg.Audio.MasterVolume,
		SFXVolume:    cfg.Audio.SFXVolume,
	})

	if cfg.Audio.Enabled {
		if err := g.audio.Init(); err != nil {
			return errors.Wrap(err, "init audio")
		}
	}

	if g.surface != nil {
		if err := g.surface.Open(cfg.WindowTitle, cfg.WindowWidth, cfg.WindowHeight); err != nil {
			return errors.Wrap(err, "open surface")
		}
		g.opened = true
	}

	g.ctx = &Context{
		Config:   cfg,
		States:   g.stack,
		Clock:    g.clock,
		Surface:  g.surface,
		Inputs:   g.inputs,
		Audio:    g.audio,
		Assets:   g.assets,
		Log:      g.log,
		RunID:    g.runID,
		registry: g.registry,
	}

	for _, id := range cfg.InputManagers {
		src, err := g.registry.newInput(id, g.ctx)
		if err != nil {
			return err
		}
		if err := g.inputs.Add(id, src); err != nil {
			return fmt.Errorf("%w: %v", config.ErrConfiguration, err)
		}
	}

	first, err := g.registry.newState(cfg.FirstState, g.ctx)
	if err != nil {
		return err
	}
	if err := g.stack.Push(first); err != nil {
		return err
	}
	if err := g.stack.Apply(); err != nil {
		return err
	}

	g.bootstrapped = true
	g.log.Info("game initialized successfully", zap.Int("inputs", g.inputs.Len()))
	return nil
}

// closeRequester is implemented by surfaces that can ask the game to quit.
type closeRequester interface {
	CloseRequested() bool
}

// Run drives iterations until the stack is empty. Cancelling ctx schedules a
// quit that is applied at the end of the current iteration.
func (g *Game) Run(ctx context.Context) error {
	if !g.bootstrapped {
		return errors.New("game not bootstrapped")
	}

	g.log.Info("starting game loop")

	var (
		frameCount int
		fpsTimer   time.Duration
	)

	for g.stack.Len() > 0 {
		g.clock.Start()

		// 1. Poll input
		if err := g.inputs.Update(); err != nil {
			return errors.Wrap(err, "poll input")
		}

		// 2. Update and render every layer
		if err := g.stack.Update(); err != nil {
			return errors.Wrap(err, "update")
		}
		if err := g.stack.Render(); err != nil {
			return errors.Wrap(err, "render")
		}

		// 3. Present
		if g.surface != nil {
			if err := g.surface.Update(g.clock.DT()); err != nil {
				return errors.Wrap(err, "present")
			}
		}

		// 4. Apply the iteration's transition
		if g.stopRequested(ctx) {
			g.stack.Quit()
		}
		if cmd := g.stack.Pending(); cmd.Op != states.OpNone {
			g.log.Debug("state transition",
				zap.Stringer("op", cmd.Op),
				zap.Int("depth", g.stack.Len()),
			)
		}
		if err := g.stack.Apply(); err != nil {
			return errors.Wrap(err, "apply transition")
		}

		g.clock.Finish()

		frameCount++
		fpsTimer += g.clock.DT()
		if fpsTimer >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", g.clock.DT()))
			frameCount = 0
			fpsTimer = 0
		}
	}

	g.log.Info("state stack empty, leaving game loop", zap.Uint64("frames", g.clock.Frames()))
	return nil
}

func (g *Game) stopRequested(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	if cr, ok := g.surface.(closeRequester); ok && cr.CloseRequested() {
		return true
	}
	return false
}

// Close releases every runtime component. Safe to call more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true

	g.log.Info("closing game")

	if g.stack != nil {
		if err := g.stack.CloseAll(); err != nil {
			g.log.Warn("closing states", zap.Error(err))
		}
	}
	if g.inputs != nil {
		if err := g.inputs.Close(); err != nil {
			g.log.Warn("closing inputs", zap.Error(err))
		}
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.assets != nil {
		g.assets.Close()
	}
	if g.surface != nil && g.opened {
		g.surface.Close()
	}
}

// Start bootstraps and runs the game, containing every failure. A fatal
// error or panic is appended to <root_path>/ErrorLog.txt; the game then
// shuts down the same way as after a normal quit and Start returns.
func (g *Game) Start(ctx context.Context) {
	err := g.contain(func() error {
		if err := g.Bootstrap(); err != nil {
			return errors.Wrap(err, "bootstrap")
		}
		return g.Run(ctx)
	})

	if err != nil {
		g.err = err
		g.report(err)
	}

	if cerr := g.contain(func() error { g.Close(); return nil }); cerr != nil {
		g.log.Error("shutdown failed", zap.Error(cerr))
	}
	_ = g.log.Sync()
}

func (g *Game) contain(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func (g *Game) report(err error) {
	rec := crash.NewRecord(g.runID, err)
	g.log.Error("fatal error",
		zap.String("kind", string(rec.Kind)),
		zap.String("origin", rec.Origin),
		zap.Error(err),
	)
	if werr := crash.Write(g.cfg.RootPath, rec); werr != nil {
		g.log.Error("writing error log", zap.Error(werr))
	}
}

// Err returns the fatal error contained by Start, if any.
func (g *Game) Err() error {
	return g.err
}

// RunID identifies this run in logs and crash records.
func (g *Game) RunID() string {
	return g.runID
}

// States returns the transition handle of the running game.
func (g *Game) States() states.Transitions {
	return g.stack
}
