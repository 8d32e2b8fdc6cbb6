package interp

import "github.com/zjrosen/keytrain/internal/grapheme"

// Canonical identifiers for special keys. Printable keys use the key's text
// itself ("h", "$", "2", ...).
const (
	KeyEscape    = "<escape>"
	KeyEnter     = "<enter>"
	KeyBackspace = "<backspace>"
	KeyTab       = "<tab>"
)

// KeyEvent is the tagged input type for a discrete key press. It carries
// either a raw key identifier (from the host's key handling) or literal
// inserted text; both are resolved into one canonical key string before
// dispatch.
type KeyEvent struct {
	raw  string
	text string
}

// RawKey creates a key event from a host key identifier.
// Special keys use their canonical "<name>" form.
func RawKey(key string) KeyEvent {
	return KeyEvent{raw: key}
}

// TextInput creates a key event from literal inserted text.
func TextInput(text string) KeyEvent {
	return KeyEvent{text: text}
}

// Canonical resolves the event into a single canonical key identifier.
// Returns "" for events that carry no dispatchable key (e.g. empty text).
func (e KeyEvent) Canonical() string {
	if e.raw != "" {
		return e.raw
	}
	switch e.text {
	case "":
		return ""
	case "\n", "\r", "\r\n":
		return KeyEnter
	case "\t":
		return KeyTab
	}
	if grapheme.Count(e.text) == 1 {
		return e.text
	}
	// Multi-character text (bracketed paste) has no single key identity.
	return ""
}

// Text returns the literal text carried by the event, mapping special keys
// to their insertable form. Returns "" for keys with no text representation.
func (e KeyEvent) Text() string {
	if e.text != "" {
		return e.text
	}
	switch e.raw {
	case KeyEnter:
		return "\n"
	case KeyTab:
		return "\t"
	case "", KeyEscape, KeyBackspace:
		return ""
	}
	if grapheme.Count(e.raw) == 1 {
		return e.raw
	}
	return ""
}
