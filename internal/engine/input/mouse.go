package input

import "sync"

// Mouse tracks pointer position and button edges.
type Mouse struct {
	mu      sync.Mutex
	pending []Event

	x, y     int
	moved    bool
	down     map[uint8]bool
	pressed  map[uint8]bool
	released map[uint8]bool
}

// NewMouse creates a mouse at the origin with no buttons held.
func NewMouse() *Mouse {
	return &Mouse{
		pending:  make([]Event, 0, 32),
		down:     make(map[uint8]bool),
		pressed:  make(map[uint8]bool),
		released: make(map[uint8]bool),
	}
}

// HandleEvent queues mouse events for the next Update.
func (m *Mouse) HandleEvent(e Event) {
	switch e.Type {
	case EventMouseMove, EventMouseDown, EventMouseUp:
	default:
		return
	}
	m.mu.Lock()
	m.pending = append(m.pending, e)
	m.mu.Unlock()
}

// Update applies queued events.
func (m *Mouse) Update() error {
	m.mu.Lock()
	events := m.pending
	m.pending = make([]Event, 0, cap(events))
	m.mu.Unlock()

	m.moved = false
	clear(m.pressed)
	clear(m.released)

	for _, e := range events {
		if e.MouseX != m.x || e.MouseY != m.y {
			m.moved = true
		}
		m.x, m.y = e.MouseX, e.MouseY

		switch e.Type {
		case EventMouseDown:
			if !m.down[e.Button] {
				m.pressed[e.Button] = true
			}
			m.down[e.Button] = true
		case EventMouseUp:
			if m.down[e.Button] {
				m.released[e.Button] = true
			}
			delete(m.down, e.Button)
		}
	}
	return nil
}

// Position returns the last known pointer position.
func (m *Mouse) Position() (int, int) {
	return m.x, m.y
}

// Moved reports whether the pointer moved during the last Update.
func (m *Mouse) Moved() bool {
	return m.moved
}

// IsDown reports whether button is held.
func (m *Mouse) IsDown(button uint8) bool {
	return m.down[button]
}

// Pressed reports whether button went down during the last Update.
func (m *Mouse) Pressed(button uint8) bool {
	return m.pressed[button]
}

// Released reports whether button went up during the last Update.
func (m *Mouse) Released(button uint8) bool {
	return m.released[button]
}
