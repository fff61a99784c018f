package demo

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/ubiengine/internal/assets"
	"github.com/Faultbox/ubiengine/internal/engine/audio"
	"github.com/Faultbox/ubiengine/internal/engine/input"
	"github.com/Faultbox/ubiengine/internal/game"
)

// Movement speed in cells per second.
const playerSpeed = 4.0

// Fallback playfield size when no level map is available.
const defaultFieldSize = 16

// Play moves a marker over the level map with the arrow keys, or along a
// path to a clicked cell. P pushes the pause overlay and Escape returns to
// the title.
type Play struct {
	ctx *game.Context
	log *zap.Logger

	level   *assets.TileMap
	speaker *audio.Speaker

	x, y   float64
	route  []image.Point
	paused bool
}

// NewPlay creates the playfield, loading the level map if there is one.
// The speaker is taken on the first Update, once the state is running.
func NewPlay(ctx *game.Context) *Play {
	s := &Play{
		ctx: ctx,
		log: ctx.Log.Named(PlayID),
	}

	level, err := ctx.Assets.Map(LevelMap)
	if err != nil {
		s.log.Debug("no level map, using empty field", zap.Error(err))
	} else {
		s.level = level
	}

	w, h := s.bounds()
	s.x, s.y = float64(w)/2, float64(h)/2
	return s
}

func (s *Play) bounds() (int, int) {
	if s.level == nil || s.level.Width() == 0 {
		return defaultFieldSize, defaultFieldSize
	}
	return s.level.Width(), s.level.Height()
}

// Position returns the marker position in cells.
func (s *Play) Position() (float64, float64) {
	return s.x, s.y
}

// Paused reports whether the pause overlay is above this state.
func (s *Play) Paused() bool {
	return s.paused
}

// Route returns the cells left on the current click-to-move path.
func (s *Play) Route() []image.Point {
	return s.route
}

// Update moves the marker. It is idle while another state is above it.
func (s *Play) Update() error {
	if s.speaker == nil {
		s.speaker = s.ctx.Audio.Alloc()
	}
	s.paused = covered(s.ctx, s)

	kb := keyboard(s.ctx)
	captureOnF12(s.ctx, kb)
	if s.paused {
		return nil
	}

	if pressedAny(kb, input.KeyEscape) {
		title, err := s.ctx.NewState(TitleID)
		if err != nil {
			return err
		}
		return s.ctx.States.Change(title)
	}

	if pressedAny(kb, input.KeyP) {
		pause, err := s.ctx.NewState(PauseID)
		if err != nil {
			return err
		}
		return s.ctx.States.Push(pause)
	}

	if m := mouse(s.ctx); m != nil && m.Pressed(input.ButtonLeft) {
		s.routeTo(m.Position())
	}

	step := playerSpeed * s.ctx.Clock.Seconds()
	var dx, dy float64
	if downAny(kb, input.KeyLeft, input.KeyA) {
		dx -= step
	}
	if downAny(kb, input.KeyRight, input.KeyD) {
		dx += step
	}
	if downAny(kb, input.KeyUp, input.KeyW) {
		dy -= step
	}
	if downAny(kb, input.KeyDown, input.KeyS) {
		dy += step
	}

	if dx != 0 || dy != 0 {
		// Manual movement cancels the route
		s.route = nil
		s.x += dx
		s.y += dy
	} else {
		s.follow(step)
	}

	w, h := s.bounds()
	s.x = clamp(s.x, 0, float64(w-1))
	s.y = clamp(s.y, 0, float64(h-1))
	return nil
}

// routeTo plans a path to the cell under the window position px, py.
func (s *Play) routeTo(px, py int) {
	if s.level == nil {
		return
	}
	cfg := s.ctx.Config
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		return
	}
	w, h := s.bounds()
	goal := image.Pt(px*w/cfg.WindowWidth, py*h/cfg.WindowHeight)
	start := image.Pt(int(math.Round(s.x)), int(math.Round(s.y)))

	path := s.level.FindPath(start, goal)
	if path == nil {
		s.log.Debug("no path", zap.Stringer("from", start), zap.Stringer("to", goal))
		return
	}
	s.route = path[1:]
}

// follow moves up to step cells along the route.
func (s *Play) follow(step float64) {
	for step > 0 && len(s.route) > 0 {
		next := s.route[0]
		dx, dy := float64(next.X)-s.x, float64(next.Y)-s.y
		dist := math.Hypot(dx, dy)
		if dist <= step {
			s.x, s.y = float64(next.X), float64(next.Y)
			s.route = s.route[1:]
			step -= dist
			continue
		}
		s.x += dx / dist * step
		s.y += dy / dist * step
		return
	}
}

// Render tints the background by the tile under the marker.
func (s *Play) Render() error {
	tile := -1
	if s.level != nil {
		tile = s.level.At(int(s.y), int(s.x))
	}
	fill(s.ctx, tileColor(tile))
	if !s.paused {
		setTitle(s.ctx, fmt.Sprintf("%s - %.0f,%.0f", s.ctx.Config.WindowTitle, s.x, s.y))
	}
	return nil
}

// Close gives the speaker back.
func (s *Play) Close() error {
	if s.speaker != nil {
		s.ctx.Audio.Free(s.speaker)
		s.speaker = nil
	}
	return nil
}

// Wakeup resumes after the pause overlay pops. A QuitArg argument ends the game.
func (s *Play) Wakeup(args ...any) error {
	s.paused = false

	if len(args) > 0 && args[0] == QuitArg {
		s.log.Info("quit from pause")
		s.ctx.States.Quit()
		return nil
	}

	s.playResume()
	return nil
}

func (s *Play) playResume() {
	if s.speaker == nil {
		return
	}
	data, err := s.ctx.Assets.Sound(ResumeSound)
	if err != nil {
		s.log.Debug("no resume sound", zap.Error(err))
		return
	}
	if err := s.speaker.Play(data, false); err != nil && !errors.Is(err, audio.ErrNotInitialized) {
		s.log.Warn("playing resume sound", zap.Error(err))
	}
}

func tileColor(tile int) color.Color {
	if tile < 0 {
		return color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	}
	// Spread ids over a small palette
	v := uint8(0x40 + (tile*37)%0xa0)
	return color.RGBA{R: v / 2, G: v, B: 0x30, A: 0xff}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
