// Package states implements game states and the layered state stack.
package states

import (
	"errors"
	"reflect"
)

var (
	// ErrInvalidTransition is returned for a nil target state or a pop
	// on an empty stack.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidCommand is returned when a pending command has an unknown op.
	ErrInvalidCommand = errors.New("invalid transition command")
)

// State is one layer of game logic. Every state on the stack is updated and
// rendered each iteration, bottom to top.
type State interface {
	// Update advances the state by one iteration.
	Update() error

	// Render draws the state's current frame.
	Render() error

	// Close releases state-owned resources. Called once, when the state
	// leaves the stack.
	Close() error

	// Wakeup is called on the state that becomes the top after a pop,
	// with the arguments given to Pop.
	Wakeup(args ...any) error
}

// Transitions is the handle states use to request stack changes.
// Requests are deferred: only the last one issued before the end of the
// iteration is applied.
type Transitions interface {
	Change(next State) error
	Push(next State) error
	Pop(args ...any)
	Quit()
}

// Base is an embeddable no-op State.
type Base struct{}

func (Base) Update() error            { return nil }
func (Base) Render() error            { return nil }
func (Base) Close() error             { return nil }
func (Base) Wakeup(args ...any) error { return nil }

// IsNil reports whether st is nil or a typed nil pointer.
func IsNil(st State) bool {
	if st == nil {
		return true
	}
	v := reflect.ValueOf(st)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
