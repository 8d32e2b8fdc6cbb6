package interp

import (
	"strings"

	"github.com/zjrosen/keytrain/internal/grapheme"
)

// testBuf is a minimal grapheme-aware Buffer for exercising the
// interpreter without importing the real buffer package.
type testBuf struct {
	lines []string
	cur   Position
}

func newTestBuf(text string) *testBuf {
	return &testBuf{lines: strings.Split(text, "\n")}
}

func (b *testBuf) String() string { return strings.Join(b.lines, "\n") }

func (b *testBuf) LineCount() int { return len(b.lines) }

func (b *testBuf) LineText(line int) string {
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

func (b *testBuf) LineEndPosition(line int) Position {
	if line < 0 {
		line = 0
	}
	if line >= len(b.lines) {
		line = len(b.lines) - 1
	}
	return Position{Line: line, Col: grapheme.Count(b.lines[line])}
}

func (b *testBuf) Cursor() Position { return b.cur }

func (b *testBuf) SetCursor(pos Position) { b.cur = b.clamp(pos) }

func (b *testBuf) clamp(pos Position) Position {
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

func (b *testBuf) normalize(r Range) Range {
	start := b.clamp(r.Start)
	end := b.clamp(r.End)
	if end.Before(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

func (b *testBuf) Text(r Range) string {
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

func (b *testBuf) DeleteRange(r Range) {
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
	b.cur = b.clamp(b.cur)
}

func (b *testBuf) InsertText(pos Position, text string) {
	if text == "" {
		return
	}
	pos = b.clamp(pos)
	line := b.lines[pos.Line]
	prefix := grapheme.Slice(line, 0, pos.Col)
	suffix := grapheme.Slice(line, pos.Col, grapheme.Count(line))

	if !strings.Contains(text, "\n") {
		b.lines[pos.Line] = prefix + text + suffix
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
}

// testClip is an in-memory Clipboard with injectable failures.
type testClip struct {
	text     string
	readErr  error
	writeErr error
}

func (c *testClip) ReadText() (string, error) {
	if c.readErr != nil {
		return "", c.readErr
	}
	return c.text, nil
}

func (c *testClip) WriteText(text string) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.text = text
	return nil
}

// recordNotifier records mode changes and the latest status text.
type recordNotifier struct {
	modeChanges []Mode
	status      string
}

func (n *recordNotifier) ModeChanged(mode, previous Mode) {
	n.modeChanges = append(n.modeChanges, mode)
}

func (n *recordNotifier) Status(text string) { n.status = text }

// newTestInterp wires an active interpreter over text with the cursor at
// the given position.
func newTestInterp(text string, line, col int) (*Interpreter, *testBuf, *testClip) {
	buf := newTestBuf(text)
	buf.SetCursor(Position{Line: line, Col: col})
	clip := &testClip{}
	in := New(buf, clip, Config{})
	in.Activate()
	return in, buf, clip
}

// keys feeds a string of single-cluster keys to the interpreter.
func keys(in *Interpreter, seq string) {
	for _, cl := range grapheme.Clusters(seq) {
		in.Handle(TextInput(cl))
	}
}
