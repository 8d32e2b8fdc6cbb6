package interp

import "github.com/zjrosen/keytrain/internal/grapheme"

// ============================================================================
// Motion/Range Resolver
// ============================================================================
//
// Each motion is a single-step function from one position to the next.
// Bare motions apply the step count times, re-reading the buffer between
// repetitions so line-boundary clamps stay safe. Operator motions apply the
// step count times cumulatively and span a range from the original cursor
// to the final position: [cursor, final) forward, [final, cursor) backward.

// isMotionKey reports whether key is a pure motion the resolver handles.
func isMotionKey(key string) bool {
	switch key {
	case "h", "l", "j", "k", "0", "$", "w", "e", "b", "W", "E", "B":
		return true
	default:
		return false
	}
}

// motionStep computes one application of the motion from pos.
// Returns ok=false when the motion cannot move, which cancels a pending
// operator and leaves the buffer untouched.
func motionStep(buf Buffer, pos Position, key string) (Position, bool) {
	switch key {
	case "h":
		if pos.Col == 0 {
			return pos, false
		}
		return Position{Line: pos.Line, Col: pos.Col - 1}, true
	case "l":
		if pos.Col >= grapheme.Count(buf.LineText(pos.Line)) {
			return pos, false
		}
		return Position{Line: pos.Line, Col: pos.Col + 1}, true
	case "j":
		if pos.Line >= buf.LineCount()-1 {
			return pos, false
		}
		next := Position{Line: pos.Line + 1, Col: pos.Col}
		return clampCol(buf, next), true
	case "k":
		if pos.Line == 0 {
			return pos, false
		}
		next := Position{Line: pos.Line - 1, Col: pos.Col}
		return clampCol(buf, next), true
	case "0":
		if pos.Col == 0 {
			return pos, false
		}
		return Position{Line: pos.Line, Col: 0}, true
	case "$":
		end := buf.LineEndPosition(pos.Line)
		if pos.Col >= end.Col {
			return pos, false
		}
		return end, true
	case "w":
		return nextWordStart(buf, pos, false)
	case "W":
		return nextWordStart(buf, pos, true)
	case "e":
		return wordEnd(buf, pos, false)
	case "E":
		return wordEnd(buf, pos, true)
	case "b":
		return prevWordStart(buf, pos, false)
	case "B":
		return prevWordStart(buf, pos, true)
	default:
		return pos, false
	}
}

// motionEndInclusive reports whether the motion's endpoint character is part
// of an operator range. End-of-word motions land on the word's last
// grapheme, which the operator must include.
func motionEndInclusive(key string) bool {
	return key == "e" || key == "E"
}

// motionRange resolves an operator motion into a range, applying the
// single-step motion count times cumulatively from the cursor.
// Returns ok=false when the motion cannot move at all.
func motionRange(buf Buffer, key string, count int) (Range, bool) {
	start := buf.Cursor()
	pos := start
	moved := false
	for i := 0; i < count; i++ {
		next, ok := motionStep(buf, pos, key)
		if !ok {
			break
		}
		pos = next
		moved = true
	}
	if !moved {
		return Range{}, false
	}

	if motionEndInclusive(key) {
		pos.Col++
	}

	if start.Before(pos) {
		return Range{Start: start, End: pos}, true
	}
	return Range{Start: pos, End: start}, true
}

// clampCol clamps a position's column to the line's length.
func clampCol(buf Buffer, pos Position) Position {
	n := grapheme.Count(buf.LineText(pos.Line))
	if pos.Col > n {
		pos.Col = n
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	return pos
}

// ============================================================================
// Word Motion Helpers
// ============================================================================
//
// A "word" (w/e/b) is a maximal run of word-class graphemes OR a maximal run
// of punctuation-class graphemes; runs of different classes are separate
// words. A "WORD" (W/E/B) is any maximal run of non-whitespace graphemes.
// All positions are grapheme indices.

// wordClass classifies a cluster for the given word size. In WORD motions,
// punctuation and word characters collapse into a single class.
func wordClass(cluster string, big bool) grapheme.Class {
	c := grapheme.ClassOf(cluster)
	if big && c == grapheme.ClassPunct {
		return grapheme.ClassWord
	}
	return c
}

// nextWordStart moves to the start of the next word, crossing to the next
// line when the current line has no further words.
func nextWordStart(buf Buffer, pos Position, big bool) (Position, bool) {
	clusters := grapheme.Clusters(buf.LineText(pos.Line))
	n := len(clusters)
	col := pos.Col

	if col < n {
		// Skip the rest of the run under the cursor, then any whitespace.
		cur := wordClass(clusters[col], big)
		if cur != grapheme.ClassWhitespace {
			for col < n && wordClass(clusters[col], big) == cur {
				col++
			}
		}
		for col < n && grapheme.IsWhitespace(clusters[col]) {
			col++
		}
		if col < n {
			return Position{Line: pos.Line, Col: col}, true
		}
	}

	// No more words on this line: first word of the next line (or column 0
	// for a blank line).
	if pos.Line < buf.LineCount()-1 {
		next := buf.LineText(pos.Line + 1)
		col = 0
		for _, cl := range grapheme.Clusters(next) {
			if !grapheme.IsWhitespace(cl) {
				break
			}
			col++
		}
		if col >= grapheme.Count(next) {
			col = 0
		}
		return Position{Line: pos.Line + 1, Col: col}, true
	}

	// Last line: fall to the end of the line if that is still a move.
	end := buf.LineEndPosition(pos.Line)
	if pos.Col < end.Col {
		return end, true
	}
	return pos, false
}

// prevWordStart moves to the start of the previous word, crossing to the
// previous line at the start of the current one.
func prevWordStart(buf Buffer, pos Position, big bool) (Position, bool) {
	clusters := grapheme.Clusters(buf.LineText(pos.Line))
	col := pos.Col

	if col > 0 {
		col--
		for col >= 0 && col < len(clusters) && grapheme.IsWhitespace(clusters[col]) {
			col--
		}
		if col >= 0 && col < len(clusters) {
			cur := wordClass(clusters[col], big)
			for col > 0 && wordClass(clusters[col-1], big) == cur {
				col--
			}
			return Position{Line: pos.Line, Col: col}, true
		}
	}

	if pos.Line == 0 {
		return pos, false
	}

	// Start of the last word on the previous line.
	prev := grapheme.Clusters(buf.LineText(pos.Line - 1))
	col = len(prev) - 1
	for col > 0 && grapheme.IsWhitespace(prev[col]) {
		col--
	}
	if col < 0 || len(prev) == 0 {
		return Position{Line: pos.Line - 1, Col: 0}, true
	}
	cur := wordClass(prev[col], big)
	if cur == grapheme.ClassWhitespace {
		return Position{Line: pos.Line - 1, Col: 0}, true
	}
	for col > 0 && wordClass(prev[col-1], big) == cur {
		col--
	}
	return Position{Line: pos.Line - 1, Col: col}, true
}

// wordEnd moves to the last grapheme of the current or next word, crossing
// lines when needed.
func wordEnd(buf Buffer, pos Position, big bool) (Position, bool) {
	line := pos.Line
	col := pos.Col
	for {
		clusters := grapheme.Clusters(buf.LineText(line))
		n := len(clusters)

		if col < n {
			if end, ok := wordEndOnLine(clusters, col, big); ok {
				return Position{Line: line, Col: end}, true
			}
		}

		if line >= buf.LineCount()-1 {
			return pos, false
		}
		line++
		col = -1 // next iteration scans the whole line
	}
}

// wordEndOnLine finds the end of the current/next word at or after col in
// clusters. A col of -1 scans from the line start. Returns ok=false when no
// word end exists at or after col.
func wordEndOnLine(clusters []string, col int, big bool) (int, bool) {
	n := len(clusters)

	scanEnd := func(from int) int {
		cls := wordClass(clusters[from], big)
		for from+1 < n && wordClass(clusters[from+1], big) == cls {
			from++
		}
		return from
	}

	if col < 0 || grapheme.IsWhitespace(clusters[max(col, 0)]) {
		// On whitespace (or scanning a fresh line): end of the next word.
		i := max(col, 0)
		for i < n && grapheme.IsWhitespace(clusters[i]) {
			i++
		}
		if i >= n {
			return 0, false
		}
		return scanEnd(i), true
	}

	// Mid-word: advance to this word's end.
	if end := scanEnd(col); end > col {
		return end, true
	}

	// Already at a word end: skip to the next word and take its end.
	i := col + 1
	for i < n && grapheme.IsWhitespace(clusters[i]) {
		i++
	}
	if i >= n {
		return 0, false
	}
	return scanEnd(i), true
}
