package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/ubiengine/internal/engine/input"
)

// translate converts an SDL event into an engine event.
func translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return input.Event{
				Type:   input.EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		t := input.EventKeyUp
		if e.Type == sdl.KEYDOWN {
			t = input.EventKeyDown
		}
		return input.Event{Type: t, Key: input.Key(e.Keysym.Scancode)}, true

	case *sdl.MouseMotionEvent:
		return input.Event{
			Type:   input.EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
		}, true

	case *sdl.MouseButtonEvent:
		t := input.EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = input.EventMouseDown
		}
		return input.Event{
			Type:   t,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		}, true
	}

	return input.Event{}, false
}
