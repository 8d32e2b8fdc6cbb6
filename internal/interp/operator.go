package interp

import (
	"strings"

	"github.com/zjrosen/keytrain/internal/log"
)

// ============================================================================
// Characterwise operator application
// ============================================================================

// applyOperator applies op over the characterwise range r. Delete removes
// without touching the clipboard; yank copies; change deletes and enters
// Insert mode; replace copies then deletes. The cursor lands at the range
// start for every operator.
func (in *Interpreter) applyOperator(op Operator, r Range) {
	if r.IsEmpty() {
		return
	}
	log.Debug(log.CatInterp, "Applying operator", "operator", op.String(),
		"startLine", r.Start.Line, "startCol", r.Start.Col,
		"endLine", r.End.Line, "endCol", r.End.Col)

	switch op {
	case OpDelete:
		in.buf.DeleteRange(r)
		in.buf.SetCursor(r.Start)
		in.metrics.EditsApplied++
	case OpYank:
		in.writeClipboard(in.buf.Text(r))
		in.buf.SetCursor(r.Start)
	case OpChange:
		in.buf.DeleteRange(r)
		in.buf.SetCursor(r.Start)
		in.metrics.EditsApplied++
		in.enterInsert()
	case OpReplace:
		in.writeClipboard(in.buf.Text(r))
		in.buf.DeleteRange(r)
		in.buf.SetCursor(r.Start)
		in.metrics.EditsApplied++
	}
}

// ============================================================================
// Linewise operator application (dd, yy, cc)
// ============================================================================

// applyLineOperator applies the doubled-operator line form over count whole
// lines starting at the cursor line, clamped to the end of the buffer.
func (in *Interpreter) applyLineOperator(op Operator, count int) {
	startLine := in.buf.Cursor().Line
	endLine := startLine + count - 1
	if last := in.buf.LineCount() - 1; endLine > last {
		endLine = last
	}

	switch op {
	case OpYank:
		in.writeClipboard(in.lineText(startLine, endLine))
		in.buf.SetCursor(Position{Line: startLine, Col: 0})
	case OpDelete:
		in.deleteLines(startLine, endLine)
	case OpReplace:
		in.writeClipboard(in.lineText(startLine, endLine))
		in.deleteLines(startLine, endLine)
	case OpChange:
		in.changeLines(startLine, endLine)
	}
}

// lineText returns the text of lines start..end inclusive with a
// guaranteed trailing line break, which is what marks clipboard content as
// linewise for paste.
func (in *Interpreter) lineText(start, end int) string {
	var b strings.Builder
	for line := start; line <= end; line++ {
		b.WriteString(in.buf.LineText(line))
		b.WriteByte('\n')
	}
	return b.String()
}

// deleteLines removes lines start..end inclusive together with one
// adjoining line break: the trailing break when a line follows, otherwise
// the break preceding the first deleted line.
func (in *Interpreter) deleteLines(start, end int) {
	last := in.buf.LineCount() - 1
	var r Range
	switch {
	case end < last:
		r = Range{
			Start: Position{Line: start, Col: 0},
			End:   Position{Line: end + 1, Col: 0},
		}
	case start > 0:
		r = Range{
			Start: in.buf.LineEndPosition(start - 1),
			End:   in.buf.LineEndPosition(end),
		}
	default:
		r = Range{
			Start: Position{Line: 0, Col: 0},
			End:   in.buf.LineEndPosition(end),
		}
	}
	in.buf.DeleteRange(r)
	in.metrics.EditsApplied++

	cursorLine := start
	if cursorLine >= in.buf.LineCount() {
		cursorLine = in.buf.LineCount() - 1
	}
	in.buf.SetCursor(Position{Line: cursorLine, Col: 0})
}

// changeLines replaces lines start..end inclusive with a single empty line
// and enters Insert mode on it.
func (in *Interpreter) changeLines(start, end int) {
	last := in.buf.LineCount() - 1
	if end < last {
		in.buf.DeleteRange(Range{
			Start: Position{Line: start, Col: 0},
			End:   Position{Line: end + 1, Col: 0},
		})
		in.buf.InsertText(Position{Line: start, Col: 0}, "\n")
	} else {
		// Deleting through the final line's content leaves the empty
		// line in place, so no re-insert is needed.
		in.buf.DeleteRange(Range{
			Start: Position{Line: start, Col: 0},
			End:   in.buf.LineEndPosition(end),
		})
	}
	in.metrics.EditsApplied++
	in.buf.SetCursor(Position{Line: start, Col: 0})
	in.enterInsert()
}

// ============================================================================
// Immediate line-scoped operators (D, C, Y)
// ============================================================================

// applyImmediateLineOperator executes the single-key line operators:
// D deletes to end of line, C does the same and enters Insert mode, and
// Y yanks the whole current line.
func (in *Interpreter) applyImmediateLineOperator(key string) {
	cur := in.buf.Cursor()
	switch key {
	case "D":
		in.applyOperator(OpDelete, Range{Start: cur, End: in.buf.LineEndPosition(cur.Line)})
	case "C":
		r := Range{Start: cur, End: in.buf.LineEndPosition(cur.Line)}
		if !r.IsEmpty() {
			in.buf.DeleteRange(r)
			in.buf.SetCursor(r.Start)
			in.metrics.EditsApplied++
		}
		in.enterInsert()
	case "Y":
		in.writeClipboard(in.lineText(cur.Line, cur.Line))
	}
}

// ============================================================================
// Paste
// ============================================================================

// paste inserts the clipboard content. Text ending in a line break is
// linewise: p opens below the cursor line and P above it. Anything else is
// characterwise at the cursor. The cursor lands just past the inserted
// text. An empty or unreadable clipboard is a no-op.
func (in *Interpreter) paste(key string) {
	text, err := in.clip.ReadText()
	if err != nil {
		log.Error(log.CatInterp, "Clipboard read failed", "error", err)
		return
	}
	if text == "" {
		return
	}

	cur := in.buf.Cursor()
	if !strings.HasSuffix(text, "\n") {
		in.buf.InsertText(cur, text)
		in.buf.SetCursor(advancePosition(cur, text))
		in.metrics.EditsApplied++
		return
	}

	var at Position
	switch {
	case key == "P":
		at = Position{Line: cur.Line, Col: 0}
	case cur.Line < in.buf.LineCount()-1:
		at = Position{Line: cur.Line + 1, Col: 0}
	default:
		// No line below: open one by leading with the break instead of
		// trailing with it.
		at = in.buf.LineEndPosition(cur.Line)
		text = "\n" + strings.TrimSuffix(text, "\n")
	}
	in.buf.InsertText(at, text)
	in.buf.SetCursor(advancePosition(at, text))
	in.metrics.EditsApplied++
}

// writeClipboard stores text, logging rather than surfacing failures since
// yank must never interrupt the editing flow.
func (in *Interpreter) writeClipboard(text string) {
	if err := in.clip.WriteText(text); err != nil {
		log.Error(log.CatInterp, "Clipboard write failed", "error", err)
	}
}
