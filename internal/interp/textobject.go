package interp

import "github.com/zjrosen/keytrain/internal/grapheme"

// ============================================================================
// Text Objects
// ============================================================================

// isTextObjectKey reports whether key names a text-object unit after an
// i/a prefix.
func isTextObjectKey(key string) bool {
	return key == "w" || key == "W"
}

// textObjectRange resolves the word (w) or WORD (W) text object containing
// the cursor.
//
// ScopeInner selects just the run under the cursor. ScopeAround additionally
// takes the immediately following whitespace run; when none follows and the
// leading-whitespace fallback is enabled, it takes the preceding whitespace
// run instead.
//
// Returns ok=false when the cursor is not on a word (whitespace, blank
// line, or past end of line), which cancels the pending operator.
func textObjectRange(buf Buffer, scope TextObjectScope, big bool, leadingFallback bool) (Range, bool) {
	cur := buf.Cursor()
	clusters := grapheme.Clusters(buf.LineText(cur.Line))
	n := len(clusters)

	if cur.Col >= n || n == 0 {
		return Range{}, false
	}
	if grapheme.IsWhitespace(clusters[cur.Col]) {
		return Range{}, false
	}

	cls := wordClass(clusters[cur.Col], big)

	start := cur.Col
	for start > 0 && wordClass(clusters[start-1], big) == cls {
		start--
	}
	end := cur.Col
	for end+1 < n && wordClass(clusters[end+1], big) == cls {
		end++
	}

	if scope == ScopeAround {
		trailing := end
		for trailing+1 < n && grapheme.IsWhitespace(clusters[trailing+1]) {
			trailing++
		}
		if trailing > end {
			end = trailing
		} else if leadingFallback {
			for start > 0 && grapheme.IsWhitespace(clusters[start-1]) {
				start--
			}
		}
	}

	return Range{
		Start: Position{Line: cur.Line, Col: start},
		End:   Position{Line: cur.Line, Col: end + 1},
	}, true
}
