package states

// Op tags a transition command.
type Op int

const (
	OpNone Op = iota
	OpChange
	OpPush
	OpPop
	OpQuit
)

// String returns a human-readable op name.
func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpChange:
		return "change"
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a pending stack mutation. State is set for change and push,
// Args for pop.
type Command struct {
	Op    Op
	State State
	Args  []any
}
