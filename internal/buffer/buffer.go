// Package buffer implements an in-memory line-oriented text buffer with
// grapheme-cluster column addressing. It is the editing surface the key
// interpreter operates on.
package buffer

import (
	"strings"

	"github.com/zjrosen/keytrain/internal/grapheme"
	"github.com/zjrosen/keytrain/internal/interp"
)

// LineBuffer stores text as lines without trailing line breaks, plus a
// cursor. It always holds at least one (possibly empty) line. Columns are
// grapheme cluster indices; a column equal to the line's cluster count is
// the valid position just past the last cluster.
type LineBuffer struct {
	lines  []string
	cursor interp.Position
}

// New creates a buffer from text, splitting on line breaks. Empty text
// yields a single empty line.
func New(text string) *LineBuffer {
	return FromLines(strings.Split(text, "\n"))
}

// FromLines creates a buffer from the given lines. The slice is copied.
func FromLines(lines []string) *LineBuffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	b := &LineBuffer{lines: make([]string, len(lines))}
	copy(b.lines, lines)
	return b
}

// SetText replaces the whole buffer content and moves the cursor to the
// start. Empty text yields a single empty line.
func (b *LineBuffer) SetText(text string) {
	b.lines = strings.Split(text, "\n")
	b.cursor = interp.Position{}
}

// LineCount returns the number of lines. Always at least 1.
func (b *LineBuffer) LineCount() int {
	return len(b.lines)
}

// LineText returns the text of the given line without its line break, or
// the empty string for an out-of-range line.
func (b *LineBuffer) LineText(line int) string {
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// Lines returns a copy of all lines.
func (b *LineBuffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// String returns the full buffer content with lines joined by \n.
func (b *LineBuffer) String() string {
	return strings.Join(b.lines, "\n")
}

// LineEndPosition returns the position just past the last cluster of line.
func (b *LineBuffer) LineEndPosition(line int) interp.Position {
	if line < 0 {
		line = 0
	}
	if line >= len(b.lines) {
		line = len(b.lines) - 1
	}
	return interp.Position{Line: line, Col: grapheme.Count(b.lines[line])}
}

// Cursor returns the current cursor position.
func (b *LineBuffer) Cursor() interp.Position {
	return b.cursor
}

// SetCursor moves the cursor, clamping it into the buffer.
func (b *LineBuffer) SetCursor(pos interp.Position) {
	b.cursor = b.clamp(pos)
}

// clamp confines pos to a valid buffer position.
func (b *LineBuffer) clamp(pos interp.Position) interp.Position {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(b.lines) {
		pos.Line = len(b.lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := grapheme.Count(b.lines[pos.Line]); pos.Col > n {
		pos.Col = n
	}
	return pos
}

// normalize clamps both ends of r and orders them.
func (b *LineBuffer) normalize(r interp.Range) interp.Range {
	start := b.clamp(r.Start)
	end := b.clamp(r.End)
	if end.Before(start) {
		start, end = end, start
	}
	return interp.Range{Start: start, End: end}
}

// Text returns the content of the half-open range r, with line breaks
// between spanned lines.
func (b *LineBuffer) Text(r interp.Range) string {
	r = b.normalize(r)
	if r.IsEmpty() {
		return ""
	}
	if r.Start.Line == r.End.Line {
		return grapheme.Slice(b.lines[r.Start.Line], r.Start.Col, r.End.Col)
	}

	var sb strings.Builder
	first := b.lines[r.Start.Line]
	sb.WriteString(grapheme.Slice(first, r.Start.Col, grapheme.Count(first)))
	for line := r.Start.Line + 1; line < r.End.Line; line++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[line])
	}
	sb.WriteByte('\n')
	sb.WriteString(grapheme.Slice(b.lines[r.End.Line], 0, r.End.Col))
	return sb.String()
}

// DeleteRange removes the content of the half-open range r, joining the
// boundary lines when r spans a line break. The cursor is re-clamped.
func (b *LineBuffer) DeleteRange(r interp.Range) {
	r = b.normalize(r)
	if r.IsEmpty() {
		return
	}

	startLine := b.lines[r.Start.Line]
	prefix := grapheme.Slice(startLine, 0, r.Start.Col)

	endLine := b.lines[r.End.Line]
	suffix := grapheme.Slice(endLine, r.End.Col, grapheme.Count(endLine))

	b.lines[r.Start.Line] = prefix + suffix
	if r.End.Line > r.Start.Line {
		b.lines = append(b.lines[:r.Start.Line+1], b.lines[r.End.Line+1:]...)
	}
	b.cursor = b.clamp(b.cursor)
}

// InsertText inserts text at pos. Line breaks in text split the line. The
// cursor is left where it was (re-clamped), not moved to the insertion:
// cursor placement is the caller's decision.
func (b *LineBuffer) InsertText(pos interp.Position, text string) {
	if text == "" {
		return
	}
	pos = b.clamp(pos)

	line := b.lines[pos.Line]
	prefix := grapheme.Slice(line, 0, pos.Col)
	suffix := grapheme.Slice(line, pos.Col, grapheme.Count(line))

	if !strings.Contains(text, "\n") {
		b.lines[pos.Line] = prefix + text + suffix
		b.cursor = b.clamp(b.cursor)
		return
	}

	segs := strings.Split(text, "\n")
	inserted := make([]string, len(segs))
	inserted[0] = prefix + segs[0]
	copy(inserted[1:], segs[1:])
	inserted[len(inserted)-1] += suffix

	out := make([]string, 0, len(b.lines)+len(segs)-1)
	out = append(out, b.lines[:pos.Line]...)
	out = append(out, inserted...)
	out = append(out, b.lines[pos.Line+1:]...)
	b.lines = out
	b.cursor = b.clamp(b.cursor)
}
