package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunKeys_PrintsReference(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runKeys(cmd, nil))

	out := buf.String()
	for _, section := range []string{"Modes", "Motions", "Operators", "Text objects", "Find", "Controls"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "ctrl+t")
	assert.Contains(t, out, "dd yy cc")
}

func TestKeyReference_EntriesNonEmpty(t *testing.T) {
	for _, g := range keyReference {
		assert.NotEmpty(t, g.name)
		assert.NotEmpty(t, g.entries, g.name)
	}
}
