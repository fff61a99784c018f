// Package main is the entry point for the UbiEngine demo host.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/ubiengine/internal/config"
	"github.com/Faultbox/ubiengine/internal/crash"
	"github.com/Faultbox/ubiengine/internal/engine/window"
	"github.com/Faultbox/ubiengine/internal/game"
	"github.com/Faultbox/ubiengine/internal/game/demo"
	"github.com/Faultbox/ubiengine/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== UbiEngine ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	demo.Register(game.DefaultRegistry)

	w := window.New(window.Config{
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
		FPSLimit:   cfg.FPSLimit,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := game.New(cfg, game.WithSurface(w))
	g.Start(ctx)

	if err := g.Err(); err != nil {
		logger.Error("game stopped on a fatal error",
			zap.String("run", g.RunID()),
			zap.String("error_log", crash.Path(cfg.RootPath)),
			zap.Error(err),
		)
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("game closed normally")
}
