// Package demo provides a small set of states that exercise every stack
// transition: a title screen, a playfield and a pause overlay.
package demo

import (
	"image/color"
	"path/filepath"

	"github.com/Faultbox/ubiengine/internal/engine/input"
	"github.com/Faultbox/ubiengine/internal/game"
	"github.com/Faultbox/ubiengine/internal/game/states"
)

// State ids.
const (
	TitleID = "title"
	PlayID  = "play"
	PauseID = "pause"
)

// Asset paths relative to the root path. Both are optional.
const (
	LevelMap    = "maps/level1.yaml"
	ResumeSound = "sounds/resume.wav"
)

// Pop arguments understood by the play state's Wakeup.
const (
	ResumeArg = "resume"
	QuitArg   = "quit"
)

// Register adds the demo states to r.
func Register(r *game.Registry) {
	r.RegisterState(TitleID, func(ctx *game.Context) (states.State, error) {
		return NewTitle(ctx), nil
	})
	r.RegisterState(PlayID, func(ctx *game.Context) (states.State, error) {
		return NewPlay(ctx), nil
	})
	r.RegisterState(PauseID, func(ctx *game.Context) (states.State, error) {
		return NewPause(ctx), nil
	})
}

type filler interface {
	Fill(c color.Color)
}

type titler interface {
	SetTitle(title string)
}

type screenshotter interface {
	RequestScreenshot(dir string)
}

// Screenshots are written here, relative to the root path.
const screenshotDir = "screenshots"

// keyboard returns the registered keyboard, or nil.
func keyboard(ctx *game.Context) *input.Keyboard {
	kb, _ := ctx.Inputs.Get("keyboard").(*input.Keyboard)
	return kb
}

// mouse returns the registered mouse, or nil.
func mouse(ctx *game.Context) *input.Mouse {
	m, _ := ctx.Inputs.Get("mouse").(*input.Mouse)
	return m
}

// covered reports whether another state sits above st on the stack.
func covered(ctx *game.Context, st states.State) bool {
	t, ok := ctx.States.(interface{ Top() states.State })
	if !ok {
		return false
	}
	top := t.Top()
	return top != nil && top != st
}

func fill(ctx *game.Context, c color.Color) {
	if f, ok := ctx.Surface.(filler); ok {
		f.Fill(c)
	}
}

func setTitle(ctx *game.Context, title string) {
	if t, ok := ctx.Surface.(titler); ok {
		t.SetTitle(title)
	}
}

// captureOnF12 asks the surface for a screenshot when F12 is pressed.
func captureOnF12(ctx *game.Context, kb *input.Keyboard) {
	if !pressedAny(kb, input.KeyF12) {
		return
	}
	if sc, ok := ctx.Surface.(screenshotter); ok {
		sc.RequestScreenshot(filepath.Join(ctx.Config.RootPath, screenshotDir))
	}
}

func pressedAny(kb *input.Keyboard, keys ...input.Key) bool {
	if kb == nil {
		return false
	}
	for _, k := range keys {
		if kb.Pressed(k) {
			return true
		}
	}
	return false
}

func downAny(kb *input.Keyboard, keys ...input.Key) bool {
	if kb == nil {
		return false
	}
	for _, k := range keys {
		if kb.IsDown(k) {
			return true
		}
	}
	return false
}
