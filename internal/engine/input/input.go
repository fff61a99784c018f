// Package input provides polled input sources and the registry that drives them.
package input

// Event types delivered by the presentation surface.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Key is a physical key scancode. Values match SDL scancodes.
type Key int

const (
	KeyUnknown Key = 0
	KeyA       Key = 4
	KeyD       Key = 7
	KeyP       Key = 19
	KeyQ       Key = 20
	KeyS       Key = 22
	KeyW       Key = 26
	KeyReturn  Key = 40
	KeyEscape  Key = 41
	KeySpace   Key = 44
	KeyF12     Key = 69
	KeyRight   Key = 79
	KeyLeft    Key = 80
	KeyDown    Key = 81
	KeyUp      Key = 82
)

// Mouse buttons. Values match SDL button indices.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Listener receives raw events as the surface captures them.
// Implementations must be safe to call between two Updates.
type Listener interface {
	HandleEvent(e Event)
}

// Source is an input device polled once per iteration, before states update.
type Source interface {
	Update() error
}
