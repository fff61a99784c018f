package input

import "sync"

// Keyboard latches queued key events once per Update, so a key press is
// visible to every state for exactly one iteration.
type Keyboard struct {
	mu      sync.Mutex
	pending []Event

	down     map[Key]bool
	pressed  map[Key]bool
	released map[Key]bool
}

// NewKeyboard creates a keyboard with no keys held.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		pending:  make([]Event, 0, 16),
		down:     make(map[Key]bool),
		pressed:  make(map[Key]bool),
		released: make(map[Key]bool),
	}
}

// HandleEvent queues key events for the next Update. Other events are ignored.
func (k *Keyboard) HandleEvent(e Event) {
	if e.Type != EventKeyDown && e.Type != EventKeyUp {
		return
	}
	k.mu.Lock()
	k.pending = append(k.pending, e)
	k.mu.Unlock()
}

// Update applies queued events.
func (k *Keyboard) Update() error {
	k.mu.Lock()
	events := k.pending
	k.pending = make([]Event, 0, cap(events))
	k.mu.Unlock()

	clear(k.pressed)
	clear(k.released)

	for _, e := range events {
		switch e.Type {
		case EventKeyDown:
			// Key repeat arrives as more KeyDown events
			if !k.down[e.Key] {
				k.pressed[e.Key] = true
			}
			k.down[e.Key] = true
		case EventKeyUp:
			if k.down[e.Key] {
				k.released[e.Key] = true
			}
			delete(k.down, e.Key)
		}
	}
	return nil
}

// IsDown reports whether key is held.
func (k *Keyboard) IsDown(key Key) bool {
	return k.down[key]
}

// Pressed reports whether key went down during the last Update.
func (k *Keyboard) Pressed(key Key) bool {
	return k.pressed[key]
}

// Released reports whether key went up during the last Update.
func (k *Keyboard) Released(key Key) bool {
	return k.released[key]
}
