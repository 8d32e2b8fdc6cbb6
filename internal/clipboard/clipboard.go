// Package clipboard provides the yank/paste storage backends: an in-memory
// register and the OS clipboard.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Register is an in-memory clipboard. It is the default backend so editing
// exercises never clobber the user's system clipboard.
type Register struct {
	mu   sync.Mutex
	text string
}

// NewRegister creates an empty in-memory register.
func NewRegister() *Register {
	return &Register{}
}

// ReadText returns the stored text.
func (r *Register) ReadText() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text, nil
}

// WriteText replaces the stored text.
func (r *Register) WriteText(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	return nil
}

// System reads and writes the OS clipboard.
type System struct{}

// NewSystem creates a system clipboard backend.
func NewSystem() *System {
	return &System{}
}

// ReadText returns the OS clipboard content.
func (s *System) ReadText() (string, error) {
	return clipboard.ReadAll()
}

// WriteText replaces the OS clipboard content.
func (s *System) WriteText(text string) error {
	return clipboard.WriteAll(text)
}
