package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.True(t, cfg.AutoReload)
	require.True(t, cfg.UI.ShowStatusBar)
	require.True(t, cfg.UI.ShowKeyEcho)
	require.Equal(t, "register", cfg.Clipboard.Backend)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Equal(t, 1.0, cfg.Tracing.SampleRate)
	require.True(t, cfg.Stats.Enabled)
	require.False(t, cfg.Editor.RepeatFindFallback)
	require.True(t, cfg.Editor.AroundWordLeadingFallback)
}

func TestEditorConfig_Policy(t *testing.T) {
	e := EditorConfig{RepeatFindFallback: true, AroundWordLeadingFallback: false}
	p := e.Policy()
	require.True(t, p.RepeatFindFallback)
	require.False(t, p.AroundWordLeadingFallback)
}

func TestValidateClipboard_Valid(t *testing.T) {
	require.NoError(t, ValidateClipboard(ClipboardConfig{}))
	require.NoError(t, ValidateClipboard(ClipboardConfig{Backend: "register"}))
	require.NoError(t, ValidateClipboard(ClipboardConfig{Backend: "system"}))
}

func TestValidateClipboard_Invalid(t *testing.T) {
	err := ValidateClipboard(ClipboardConfig{Backend: "x11"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "clipboard.backend")
}

func TestValidateTracing_Valid(t *testing.T) {
	require.NoError(t, ValidateTracing(TracingConfig{SampleRate: 1.0, Exporter: "file"}))
	require.NoError(t, ValidateTracing(TracingConfig{SampleRate: 0.5, Exporter: "stdout"}))
	require.NoError(t, ValidateTracing(TracingConfig{Exporter: ""}))
}

func TestValidateTracing_SampleRateOutOfRange(t *testing.T) {
	err := ValidateTracing(TracingConfig{SampleRate: 1.5})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sample_rate")

	err = ValidateTracing(TracingConfig{SampleRate: -0.1})
	require.Error(t, err)
}

func TestValidateTracing_InvalidExporter(t *testing.T) {
	err := ValidateTracing(TracingConfig{Exporter: "otlp"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "exporter")
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestDefaultConfigTemplate_ParsesToDefaults(t *testing.T) {
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &raw))

	require.Equal(t, true, raw["auto_reload"])

	editor, ok := raw["editor"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, false, editor["repeat_find_fallback"])
	require.Equal(t, true, editor["around_word_leading_fallback"])

	clip, ok := raw["clipboard"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "register", clip["backend"])
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "keytrain.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
