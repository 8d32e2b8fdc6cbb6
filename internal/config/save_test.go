package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func readYAML(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	return raw
}

func TestSaveEditor_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keytrain.yaml")

	err := SaveEditor(path, EditorConfig{
		RepeatFindFallback:        true,
		AroundWordLeadingFallback: false,
	})
	require.NoError(t, err)

	raw := readYAML(t, path)
	editor, ok := raw["editor"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, true, editor["repeat_find_fallback"])
	require.Equal(t, false, editor["around_word_leading_fallback"])
}

func TestSaveEditor_ReplacesExistingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keytrain.yaml")
	existing := "auto_reload: false\neditor:\n  repeat_find_fallback: false\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o600))

	err := SaveEditor(path, EditorConfig{RepeatFindFallback: true, AroundWordLeadingFallback: true})
	require.NoError(t, err)

	raw := readYAML(t, path)
	require.Equal(t, false, raw["auto_reload"], "other sections untouched")
	editor := raw["editor"].(map[string]any)
	require.Equal(t, true, editor["repeat_find_fallback"])
}

func TestSaveEditor_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keytrain.yaml")
	existing := "# my config\nauto_reload: true\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o600))

	require.NoError(t, SaveEditor(path, EditorConfig{AroundWordLeadingFallback: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# my config")
}

func TestSaveClipboard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keytrain.yaml")

	require.NoError(t, SaveClipboard(path, ClipboardConfig{Backend: "system"}))

	raw := readYAML(t, path)
	clip := raw["clipboard"].(map[string]any)
	require.Equal(t, "system", clip["backend"])
}

func TestSaveClipboard_DefaultsEmptyBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keytrain.yaml")

	require.NoError(t, SaveClipboard(path, ClipboardConfig{}))

	raw := readYAML(t, path)
	clip := raw["clipboard"].(map[string]any)
	require.Equal(t, "register", clip["backend"])
}
