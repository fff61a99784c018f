package states

import (
	"fmt"

	"go.uber.org/multierr"
)

// Stack holds active states bottom to top and the single pending command.
// States mutate it only through the Transitions methods; the owner calls
// Apply once per iteration after rendering.
//
// A rejected request is remembered and returned by the next Apply, so it
// ends the run even when the caller drops the error.
type Stack struct {
	states  []State
	pending Command
	invalid error
}

// NewStack creates a stack seeded with the given states, bottom first.
func NewStack(initial ...State) *Stack {
	s := &Stack{states: make([]State, 0, 4)}
	for _, st := range initial {
		if !IsNil(st) {
			s.states = append(s.states, st)
		}
	}
	return s
}

// Change schedules replacing the top state with next.
func (s *Stack) Change(next State) error {
	if IsNil(next) {
		return s.reject(fmt.Errorf("%w: change to nil state", ErrInvalidTransition))
	}
	s.pending = Command{Op: OpChange, State: next}
	return nil
}

// Push schedules pushing next above the current top.
func (s *Stack) Push(next State) error {
	if IsNil(next) {
		return s.reject(fmt.Errorf("%w: push nil state", ErrInvalidTransition))
	}
	s.pending = Command{Op: OpPush, State: next}
	return nil
}

func (s *Stack) reject(err error) error {
	if s.invalid == nil {
		s.invalid = err
	}
	return err
}

// Pop schedules removing the top state. args are passed to the new top's Wakeup.
func (s *Stack) Pop(args ...any) {
	s.pending = Command{Op: OpPop, Args: args}
}

// Quit schedules clearing the whole stack.
func (s *Stack) Quit() {
	s.pending = Command{Op: OpQuit}
}

// Pending returns the command that the next Apply will run.
func (s *Stack) Pending() Command {
	return s.pending
}

// Apply runs the pending command and resets it to OpNone. The command is
// consumed even if applying it fails. If a request was rejected since the
// last Apply, that error is returned and the stack is left as it was.
func (s *Stack) Apply() error {
	cmd := s.pending
	s.pending = Command{}

	if err := s.invalid; err != nil {
		s.invalid = nil
		return err
	}

	switch cmd.Op {
	case OpNone:
		return nil

	case OpChange:
		var err error
		if top := s.pop(); top != nil {
			err = closeState(top)
		}
		s.states = append(s.states, cmd.State)
		return err

	case OpPush:
		s.states = append(s.states, cmd.State)
		return nil

	case OpPop:
		top := s.pop()
		if top == nil {
			return fmt.Errorf("%w: pop on empty stack", ErrInvalidTransition)
		}
		if err := closeState(top); err != nil {
			return err
		}
		if next := s.Top(); next != nil {
			if err := next.Wakeup(cmd.Args...); err != nil {
				return fmt.Errorf("wakeup state: %w", err)
			}
		}
		return nil

	case OpQuit:
		return s.CloseAll()

	default:
		return fmt.Errorf("%w: op %d", ErrInvalidCommand, int(cmd.Op))
	}
}

// CloseAll removes every state, closing them top to bottom.
func (s *Stack) CloseAll() error {
	var err error
	for top := s.pop(); top != nil; top = s.pop() {
		err = multierr.Append(err, closeState(top))
	}
	return err
}

// Update updates every state bottom to top, stopping at the first error.
func (s *Stack) Update() error {
	for i, st := range s.states {
		if err := st.Update(); err != nil {
			return fmt.Errorf("update state %d: %w", i, err)
		}
	}
	return nil
}

// Render renders every state bottom to top, stopping at the first error.
func (s *Stack) Render() error {
	for i, st := range s.states {
		if err := st.Render(); err != nil {
			return fmt.Errorf("render state %d: %w", i, err)
		}
	}
	return nil
}

// Len returns the number of active states.
func (s *Stack) Len() int {
	return len(s.states)
}

// Top returns the most recently pushed state, or nil when empty.
func (s *Stack) Top() State {
	if len(s.states) == 0 {
		return nil
	}
	return s.states[len(s.states)-1]
}

// At returns the state at depth i, 0 being the bottom.
func (s *Stack) At(i int) State {
	return s.states[i]
}

func (s *Stack) pop() State {
	n := len(s.states)
	if n == 0 {
		return nil
	}
	top := s.states[n-1]
	s.states[n-1] = nil
	s.states = s.states[:n-1]
	return top
}

func closeState(st State) error {
	if err := st.Close(); err != nil {
		return fmt.Errorf("close state: %w", err)
	}
	return nil
}
