package interp

import "github.com/zjrosen/keytrain/internal/grapheme"

// FindKind identifies a find-motion type. The zero value FindNone means no
// find is pending.
type FindKind int

const (
	// FindNone means no find motion.
	FindNone FindKind = iota
	// FindForward lands on the nth occurrence after the cursor (f).
	FindForward
	// FindBackward lands on the nth occurrence before the cursor (F).
	FindBackward
	// TillForward stops just before the nth occurrence after the cursor (t).
	TillForward
	// TillBackward stops just after the nth occurrence before the cursor (T).
	TillBackward
)

// Key returns the normal-mode key for the find kind.
func (k FindKind) Key() string {
	switch k {
	case FindForward:
		return "f"
	case FindBackward:
		return "F"
	case TillForward:
		return "t"
	case TillBackward:
		return "T"
	default:
		return ""
	}
}

// Forward reports whether the kind searches toward the end of the line.
func (k FindKind) Forward() bool {
	return k == FindForward || k == TillForward
}

// Invert returns the opposite-direction kind: f<->F, t<->T.
// Used by the , repeat.
func (k FindKind) Invert() FindKind {
	switch k {
	case FindForward:
		return FindBackward
	case FindBackward:
		return FindForward
	case TillForward:
		return TillBackward
	case TillBackward:
		return TillForward
	default:
		return FindNone
	}
}

// findKindForKey maps a find initiator key to its kind, or FindNone.
func findKindForKey(key string) FindKind {
	switch key {
	case "f":
		return FindForward
	case "F":
		return FindBackward
	case "t":
		return TillForward
	case "T":
		return TillBackward
	default:
		return FindNone
	}
}

// FindSpec records an executed find motion for ; and , repeats.
type FindSpec struct {
	Kind FindKind
	Char string
}

// IsZero reports whether no find has been recorded.
func (f FindSpec) IsZero() bool {
	return f.Kind == FindNone
}

// findResolution is the outcome of locating a find target on a line.
// cursor is where a bare motion lands; rangeCol is the column bounding an
// operator range on the cursor's line (exclusive for forward finds,
// inclusive-start for backward finds).
type findResolution struct {
	cursor   Position
	rangeCol int
}

// resolveFind locates the nth occurrence of char from the cursor on the
// current line per the find kind's semantics. All find motions are confined
// to the cursor's line; returns ok=false when the nth occurrence does not
// exist, in which case nothing about the buffer may change.
func resolveFind(buf Buffer, kind FindKind, char string, n int) (findResolution, bool) {
	cur := buf.Cursor()
	clusters := grapheme.Clusters(buf.LineText(cur.Line))

	idx := -1
	if kind.Forward() {
		remaining := n
		for i := cur.Col + 1; i < len(clusters); i++ {
			if clusters[i] == char {
				remaining--
				if remaining == 0 {
					idx = i
					break
				}
			}
		}
	} else {
		remaining := n
		for i := cur.Col - 1; i >= 0; i-- {
			if clusters[i] == char {
				remaining--
				if remaining == 0 {
					idx = i
					break
				}
			}
		}
	}
	if idx < 0 {
		return findResolution{}, false
	}

	res := findResolution{}
	switch kind {
	case FindForward:
		// Cursor lands on the character; operator ranges include it.
		res.cursor = Position{Line: cur.Line, Col: idx}
		res.rangeCol = idx + 1
	case TillForward:
		// Stops just before the character, which stays out of the range.
		res.cursor = Position{Line: cur.Line, Col: idx - 1}
		res.rangeCol = idx
	case FindBackward:
		// Cursor lands on the character; backward ranges start at it.
		res.cursor = Position{Line: cur.Line, Col: idx}
		res.rangeCol = idx
	case TillBackward:
		// Stops one position past the character, toward the cursor.
		res.cursor = Position{Line: cur.Line, Col: idx + 1}
		res.rangeCol = idx + 1
	}
	if res.cursor.Col < 0 {
		res.cursor.Col = 0
	}
	return res, true
}

// findRange converts a resolution into the operator range between the
// cursor and the find target. Forward finds produce [cursor, rangeCol);
// backward finds produce [rangeCol, cursor).
func findRange(cur Position, kind FindKind, res findResolution) Range {
	if kind.Forward() {
		return Range{Start: cur, End: Position{Line: cur.Line, Col: res.rangeCol}}
	}
	return Range{Start: Position{Line: cur.Line, Col: res.rangeCol}, End: cur}
}
