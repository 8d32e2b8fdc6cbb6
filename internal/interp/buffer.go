package interp

// Position addresses a point in the buffer.
// Col is a grapheme index (not a byte offset) into the line's text.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p is strictly before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Range is a half-open span [Start, End) of buffer text.
// Start is never after End for ranges produced by the interpreter.
type Range struct {
	Start Position
	End   Position
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Buffer is the host editor capability the interpreter edits through.
// Implementations must apply each mutation before returning so the
// interpreter can immediately re-read the resulting state.
type Buffer interface {
	// LineText returns the text of the given line without its line break.
	LineText(line int) string
	// LineCount returns the number of lines in the buffer (always >= 1).
	LineCount() int
	// Text returns the text in r, with "\n" separating line transitions.
	Text(r Range) string
	// DeleteRange removes the text in r.
	DeleteRange(r Range)
	// InsertText inserts text (possibly containing "\n") at pos.
	InsertText(pos Position, text string)
	// Cursor returns the current cursor position.
	Cursor() Position
	// SetCursor moves the cursor, clamping to valid bounds.
	SetCursor(pos Position)
	// LineEndPosition returns the position just past the last grapheme of
	// the given line (exclusive of the line break).
	LineEndPosition(line int) Position
}

// Clipboard is the host clipboard capability.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// Notifier receives mode-change events and status text for display.
// It is purely observational; nothing feeds back into the interpreter.
type Notifier interface {
	ModeChanged(mode, previous Mode)
	Status(text string)
}

// NopNotifier is a Notifier that discards all notifications.
type NopNotifier struct{}

// ModeChanged implements Notifier.
func (NopNotifier) ModeChanged(Mode, Mode) {}

// Status implements Notifier.
func (NopNotifier) Status(string) {}
