package demo

import (
	"github.com/Faultbox/ubiengine/internal/engine/input"
	"github.com/Faultbox/ubiengine/internal/game"
	"github.com/Faultbox/ubiengine/internal/game/states"
)

// Pause is an overlay pushed above Play. P or Escape resumes, Q quits via
// the play state.
type Pause struct {
	states.Base
	ctx *game.Context
}

// NewPause creates the pause overlay.
func NewPause(ctx *game.Context) *Pause {
	return &Pause{ctx: ctx}
}

// Update pops back to the state below.
func (s *Pause) Update() error {
	kb := keyboard(s.ctx)
	switch {
	case pressedAny(kb, input.KeyQ):
		s.ctx.States.Pop(QuitArg)
	case pressedAny(kb, input.KeyP, input.KeyEscape):
		s.ctx.States.Pop(ResumeArg)
	}
	return nil
}

// Render marks the window as paused. The playfield below keeps drawing.
func (s *Pause) Render() error {
	setTitle(s.ctx, s.ctx.Config.WindowTitle+" - paused")
	return nil
}
