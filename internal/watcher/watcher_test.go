package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/keytrain/internal/pubsub"
	"github.com/zjrosen/keytrain/internal/watcher"
)

func startWatcher(t *testing.T, configPath string, debounce time.Duration) (*watcher.Watcher, <-chan pubsub.Event[watcher.WatcherEvent]) {
	t.Helper()
	w, err := watcher.New(watcher.Config{
		ConfigPath:  configPath,
		DebounceDur: debounce,
	})
	require.NoError(t, err, "failed to create watcher")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := w.Broker().Subscribe(ctx)

	require.NoError(t, w.Start(), "failed to start watcher")
	t.Cleanup(func() { _ = w.Stop() })
	return w, events
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "keytrain.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("auto_reload: true"), 0644))

	_, events := startWatcher(t, configPath, 50*time.Millisecond)

	// Rapid writes should coalesce into a single notification
	for i := 0; i < 10; i++ {
		err := os.WriteFile(configPath, []byte(fmt.Sprintf("auto_reload: true # %d", i)), 0644)
		require.NoError(t, err, "failed to write file")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case ev := <-events:
		require.Equal(t, watcher.ConfigChanged, ev.Payload.Type)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-events:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
		// Expected - no second notification
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "keytrain.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("auto_reload: true"), 0644))

	_, events := startWatcher(t, configPath, 500*time.Millisecond)

	// A different file in the same directory must not trigger a reload.
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("hi"), 0644))

	select {
	case <-events:
		t.Fatal("unexpected notification for unrelated file")
	case <-time.After(700 * time.Millisecond):
		// Expected
	}
}

func TestWatcher_StopTerminates(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "keytrain.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("x: 1"), 0644))

	w, err := watcher.New(watcher.DefaultConfig(configPath))
	require.NoError(t, err)

	require.NoError(t, w.Start())
	require.NoError(t, w.Stop())
}
