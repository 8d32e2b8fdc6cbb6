// Package interp implements the modal key interpreter at the heart of
// keytrain. It consumes discrete key events and a host text buffer and
// produces buffer edits, cursor moves, clipboard traffic, and mode changes.
package interp

// Mode represents the current editing mode.
type Mode int

const (
	// ModeNormal is the default mode for navigation and commands.
	ModeNormal Mode = iota
	// ModeInsert is the mode for inserting literal text.
	ModeInsert
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}
