package interp

import "strconv"

// Operator is a command that acts on a range produced by a following motion
// or text object. The zero value OpNone means no operator is pending.
type Operator int

const (
	// OpNone means no operator.
	OpNone Operator = iota
	// OpDelete removes the range's text.
	OpDelete
	// OpYank copies the range's text to the clipboard.
	OpYank
	// OpChange removes the range's text and enters Insert mode.
	OpChange
	// OpReplace copies the range's text to the clipboard, then removes it.
	OpReplace
)

// Key returns the normal-mode key that invokes the operator.
func (o Operator) Key() string {
	switch o {
	case OpDelete:
		return "d"
	case OpYank:
		return "y"
	case OpChange:
		return "c"
	case OpReplace:
		return "r"
	default:
		return ""
	}
}

// String returns a readable name for logging.
func (o Operator) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpDelete:
		return "delete"
	case OpYank:
		return "yank"
	case OpChange:
		return "change"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// operatorForKey maps a bare operator key to its Operator, or OpNone.
func operatorForKey(key string) Operator {
	switch key {
	case "d":
		return OpDelete
	case "y":
		return OpYank
	case "c":
		return OpChange
	case "r":
		return OpReplace
	default:
		return OpNone
	}
}

// TextObjectScope selects text-object range semantics after an operator.
// The zero value ScopeNone means no prefix is pending.
type TextObjectScope int

const (
	// ScopeNone means no text-object prefix is pending.
	ScopeNone TextObjectScope = iota
	// ScopeInner selects the word run with no surrounding whitespace (i).
	ScopeInner
	// ScopeAround selects the word run plus adjacent whitespace (a).
	ScopeAround
)

// Key returns the prefix key for the scope.
func (s TextObjectScope) Key() string {
	switch s {
	case ScopeInner:
		return "i"
	case ScopeAround:
		return "a"
	default:
		return ""
	}
}

// State holds all transient parsing state for one editing session.
// It is owned by the session object and passed by reference into the
// event-handling entry point; there are no ambient globals.
type State struct {
	mode Mode

	// countBuffer accumulates typed digits for a pending repeat count.
	countBuffer string

	// pendingOperator awaits a motion, text object, or doubled key.
	// OpNone when nothing is pending; never more than one at a time.
	pendingOperator Operator

	// pendingOperatorCount is the repeat count captured when the operator
	// (or a bare find motion) was invoked. Composes multiplicatively with
	// a count typed afterwards: 2d3w acts on 6 words.
	pendingOperatorCount int

	// textObjectScope is the i/a prefix awaiting its word-class key.
	textObjectScope TextObjectScope

	// pendingFind awaits the target character of an f/F/t/T motion.
	pendingFind FindKind

	// lastFind is the last executed find motion, for ; and , repeats.
	lastFind FindSpec

	// lastFindOperator is the operator combined with lastFind, if any.
	lastFindOperator Operator
}

// NewState returns a State in Normal mode with nothing pending.
func NewState() State {
	return State{mode: ModeNormal}
}

// Mode returns the current mode.
func (s *State) Mode() Mode {
	return s.mode
}

// Reset returns the state to Normal mode defaults, discarding everything
// including the find-repeat memory. Used on session start and stop.
func (s *State) Reset() {
	*s = State{mode: ModeNormal}
}

// clearTransient clears the in-flight command parse (count, operator,
// prefixes, pending find) without touching mode or find-repeat memory.
// This is the Escape behavior and the benign-failure cleanup.
func (s *State) clearTransient() {
	s.countBuffer = ""
	s.pendingOperator = OpNone
	s.pendingOperatorCount = 0
	s.textObjectScope = ScopeNone
	s.pendingFind = FindNone
}

// pendingEcho renders the in-flight command parse for the status display,
// e.g. "2d" while awaiting a motion or "df" while awaiting a find target.
func (s *State) pendingEcho() string {
	echo := ""
	if s.pendingOperatorCount > 1 {
		echo += strconv.Itoa(s.pendingOperatorCount)
	}
	echo += s.pendingOperator.Key()
	echo += s.textObjectScope.Key()
	echo += s.pendingFind.Key()
	echo += s.countBuffer
	return echo
}
