package grapheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count(""))
	assert.Equal(t, 5, Count("hello"))
	assert.Equal(t, 5, Count("h😀llo"))
	assert.Equal(t, 1, Count("👨‍👩‍👧‍👦"))
}

func TestClusters(t *testing.T) {
	assert.Nil(t, Clusters(""))
	assert.Equal(t, []string{"a", "b", "c"}, Clusters("abc"))
	assert.Equal(t, []string{"a", "😀", "b"}, Clusters("a😀b"))
}

func TestSlice(t *testing.T) {
	assert.Equal(t, "ell", Slice("hello", 1, 4))
	assert.Equal(t, "hello", Slice("hello", 0, 5))
	assert.Equal(t, "", Slice("hello", 3, 2))
	assert.Equal(t, "", Slice("hello", 9, 12))
	// End past the string is clamped
	assert.Equal(t, "lo", Slice("hello", 3, 99))
	// Emoji counts as one grapheme
	assert.Equal(t, "😀", Slice("a😀b", 1, 2))
}

func TestAt(t *testing.T) {
	assert.Equal(t, "h", At("hello", 0))
	assert.Equal(t, "o", At("hello", 4))
	assert.Equal(t, "", At("hello", 5))
	assert.Equal(t, "", At("hello", -1))
	assert.Equal(t, "😀", At("a😀b", 1))
}

func TestByteOffset(t *testing.T) {
	assert.Equal(t, 0, ByteOffset("hello", 0))
	assert.Equal(t, 3, ByteOffset("hello", 3))
	assert.Equal(t, 5, ByteOffset("hello", 99))
	// The emoji is 4 bytes, so grapheme index 2 is byte 5
	assert.Equal(t, 5, ByteOffset("a😀b", 2))
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, ClassWhitespace, ClassOf(" "))
	assert.Equal(t, ClassWhitespace, ClassOf("\t"))
	assert.Equal(t, ClassWord, ClassOf("a"))
	assert.Equal(t, ClassWord, ClassOf("_"))
	assert.Equal(t, ClassWord, ClassOf("7"))
	assert.Equal(t, ClassWord, ClassOf("é"))
	assert.Equal(t, ClassPunct, ClassOf("."))
	assert.Equal(t, ClassPunct, ClassOf("😀"))
}

func TestIsWhitespace(t *testing.T) {
	assert.True(t, IsWhitespace(" "))
	assert.False(t, IsWhitespace("x"))
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 0, Width(""))
	assert.Equal(t, 1, Width("a"))
	assert.Equal(t, 2, Width("😀"))
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 4, StringWidth("a😀b"))
}
