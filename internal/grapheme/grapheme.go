// Package grapheme provides grapheme-cluster helpers for Unicode-aware text
// operations.
//
// All column positions in keytrain are grapheme indices, not byte offsets:
// a grapheme cluster is the unit users perceive as one character, even when
// it spans several code points (emoji, combining marks). Byte offsets only
// appear at the edges, when slicing Go strings.
package grapheme

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Class categorizes a grapheme cluster for word-boundary detection.
type Class int

const (
	// ClassWhitespace covers space, tab, and line break characters.
	ClassWhitespace Class = iota
	// ClassWord covers alphanumeric characters and underscore.
	ClassWord
	// ClassPunct covers everything else (punctuation, symbols, emoji).
	ClassPunct
)

// Count returns the number of grapheme clusters in s.
// For example: "hello" = 5, "héllo" = 5, "👨‍👩‍👧‍👦" = 1.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Clusters returns all grapheme clusters in s as a slice.
// Useful for bidirectional scanning where index arithmetic is needed.
func Clusters(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		out = append(out, cluster)
		s = rest
		state = newState
	}
	return out
}

// ByteOffset converts a grapheme index to a byte offset into s.
// Returns len(s) if idx is at or past the end, and 0 if idx <= 0.
func ByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	n := 0
	state := -1
	original := s
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		n++
		if n == idx {
			return len(original) - len(rest)
		}
		s = rest
		state = newState
	}
	return len(original)
}

// Slice returns the substring from grapheme index start to end (exclusive).
// Like s[start:end] but grapheme-aware. Returns "" for invalid ranges.
func Slice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}

	startByte := ByteOffset(s, start)
	endByte := ByteOffset(s, end)

	if startByte >= len(s) {
		return ""
	}
	if endByte > len(s) {
		endByte = len(s)
	}
	return s[startByte:endByte]
}

// At returns the grapheme cluster at the given grapheme index, or "" if the
// index is out of bounds.
func At(s string, idx int) string {
	if idx < 0 {
		return ""
	}
	n := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if n == idx {
			return cluster
		}
		n++
		s = rest
		state = newState
	}
	return ""
}

// ClassOf classifies a grapheme cluster for word-boundary detection.
// Multi-rune clusters (emoji, combining marks) are classified by their base
// character.
func ClassOf(cluster string) Class {
	for _, r := range cluster {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return ClassWhitespace
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_':
			return ClassWord
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			return ClassWord
		default:
			return ClassPunct
		}
	}
	return ClassWhitespace
}

// IsWhitespace reports whether the cluster is a whitespace grapheme.
func IsWhitespace(cluster string) bool {
	return ClassOf(cluster) == ClassWhitespace
}

// Width returns the display width of a single cluster in terminal cells.
// ASCII = 1, emoji = 2, CJK = 2.
func Width(cluster string) int {
	if cluster == "" {
		return 0
	}
	return runewidth.StringWidth(cluster)
}

// StringWidth returns the total display width of a string in terminal cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}
