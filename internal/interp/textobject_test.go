package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextObjectRange_InnerWord(t *testing.T) {
	buf := newTestBuf("foo bar baz")
	buf.SetCursor(Position{Line: 0, Col: 5})

	r, ok := textObjectRange(buf, ScopeInner, false, true)
	require.True(t, ok)
	assert.Equal(t, Range{
		Start: Position{Line: 0, Col: 4},
		End:   Position{Line: 0, Col: 7},
	}, r)
}

func TestTextObjectRange_InnerWordStopsAtPunctuation(t *testing.T) {
	buf := newTestBuf("foo.bar")
	buf.SetCursor(Position{Line: 0, Col: 1})

	r, ok := textObjectRange(buf, ScopeInner, false, true)
	require.True(t, ok)
	assert.Equal(t, Range{
		Start: Position{Line: 0, Col: 0},
		End:   Position{Line: 0, Col: 3},
	}, r, "iw selects the letter run only")

	// Cursor on the punctuation selects the punctuation run.
	buf.SetCursor(Position{Line: 0, Col: 3})
	r, ok = textObjectRange(buf, ScopeInner, false, true)
	require.True(t, ok)
	assert.Equal(t, Range{
		Start: Position{Line: 0, Col: 3},
		End:   Position{Line: 0, Col: 4},
	}, r)
}

func TestTextObjectRange_InnerBigWord(t *testing.T) {
	buf := newTestBuf("foo.bar baz")
	buf.SetCursor(Position{Line: 0, Col: 1})

	r, ok := textObjectRange(buf, ScopeInner, true, true)
	require.True(t, ok)
	assert.Equal(t, Range{
		Start: Position{Line: 0, Col: 0},
		End:   Position{Line: 0, Col: 7},
	}, r, "iW spans the whole non-whitespace chunk")
}

func TestTextObjectRange_AroundWordTrailingWhitespace(t *testing.T) {
	buf := newTestBuf("foo  bar")
	buf.SetCursor(Position{Line: 0, Col: 1})

	r, ok := textObjectRange(buf, ScopeAround, false, true)
	require.True(t, ok)
	assert.Equal(t, Range{
		Start: Position{Line: 0, Col: 0},
		End:   Position{Line: 0, Col: 5},
	}, r, "aw takes the word plus trailing whitespace")
}

func TestTextObjectRange_AroundWordLeadingFallback(t *testing.T) {
	buf := newTestBuf("foo bar")
	buf.SetCursor(Position{Line: 0, Col: 5})

	r, ok := textObjectRange(buf, ScopeAround, false, true)
	require.True(t, ok)
	assert.Equal(t, Range{
		Start: Position{Line: 0, Col: 3},
		End:   Position{Line: 0, Col: 7},
	}, r, "no trailing whitespace: leading run is taken instead")

	// With the fallback disabled only the word itself is selected.
	r, ok = textObjectRange(buf, ScopeAround, false, false)
	require.True(t, ok)
	assert.Equal(t, Range{
		Start: Position{Line: 0, Col: 4},
		End:   Position{Line: 0, Col: 7},
	}, r)
}

func TestTextObjectRange_OnWhitespaceFails(t *testing.T) {
	buf := newTestBuf("foo bar")
	buf.SetCursor(Position{Line: 0, Col: 3})

	_, ok := textObjectRange(buf, ScopeInner, false, true)
	assert.False(t, ok)
}

func TestTextObjectRange_EmptyLineFails(t *testing.T) {
	buf := newTestBuf("")

	_, ok := textObjectRange(buf, ScopeInner, false, true)
	assert.False(t, ok)
}

func TestTextObjectRange_CursorPastEndFails(t *testing.T) {
	buf := newTestBuf("abc")
	buf.SetCursor(Position{Line: 0, Col: 3})

	_, ok := textObjectRange(buf, ScopeInner, false, true)
	assert.False(t, ok)
}
