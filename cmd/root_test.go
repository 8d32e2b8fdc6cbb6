package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/keytrain/internal/clipboard"
	"github.com/zjrosen/keytrain/internal/config"
)

func TestNewClipboard_RegisterBackend(t *testing.T) {
	clip, err := newClipboard(config.ClipboardConfig{Backend: "register"})
	require.NoError(t, err)
	assert.IsType(t, &clipboard.Register{}, clip)
}

func TestNewClipboard_SystemBackend(t *testing.T) {
	clip, err := newClipboard(config.ClipboardConfig{Backend: "system"})
	require.NoError(t, err)
	assert.IsType(t, &clipboard.System{}, clip)
}

func TestNewClipboard_InvalidBackend(t *testing.T) {
	_, err := newClipboard(config.ClipboardConfig{Backend: "telepathy"})
	require.Error(t, err)
}

func TestNewTracingProvider_Disabled(t *testing.T) {
	provider, err := newTracingProvider(config.TracingConfig{Enabled: false})
	require.NoError(t, err)
	assert.False(t, provider.Enabled())
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("12345678-abcd-efgh"))
	assert.Equal(t, "short", shortID("short"))
}

func TestDefaultSample_MultiLine(t *testing.T) {
	// The bundled practice text should exercise multi-line motions.
	assert.Greater(t, len(defaultSample), 0)
	assert.Contains(t, defaultSample, "\n")
}
