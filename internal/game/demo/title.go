package demo

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/ubiengine/internal/engine/input"
	"github.com/Faultbox/ubiengine/internal/game"
	"github.com/Faultbox/ubiengine/internal/game/states"
)

var titleBackground = color.RGBA{R: 0x18, G: 0x1c, B: 0x3a, A: 0xff}

// Title waits for Enter, Space or a left click to start, Escape quits.
type Title struct {
	states.Base
	ctx *game.Context
	log *zap.Logger
}

// NewTitle creates the title screen.
func NewTitle(ctx *game.Context) *Title {
	return &Title{ctx: ctx, log: ctx.Log.Named(TitleID)}
}

// Update handles menu input.
func (s *Title) Update() error {
	kb := keyboard(s.ctx)
	captureOnF12(s.ctx, kb)

	if pressedAny(kb, input.KeyEscape) {
		s.log.Info("quit from title")
		s.ctx.States.Quit()
		return nil
	}

	start := pressedAny(kb, input.KeyReturn, input.KeySpace)
	if m := mouse(s.ctx); m != nil && m.Pressed(input.ButtonLeft) {
		start = true
	}
	if !start {
		return nil
	}

	play, err := s.ctx.NewState(PlayID)
	if err != nil {
		return err
	}
	return s.ctx.States.Change(play)
}

// Render clears to the title background.
func (s *Title) Render() error {
	fill(s.ctx, titleBackground)
	setTitle(s.ctx, s.ctx.Config.WindowTitle+" - press Enter")
	return nil
}
