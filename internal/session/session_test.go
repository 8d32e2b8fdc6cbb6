package session_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/keytrain/internal/buffer"
	"github.com/zjrosen/keytrain/internal/clipboard"
	"github.com/zjrosen/keytrain/internal/interp"
	"github.com/zjrosen/keytrain/internal/pubsub"
	"github.com/zjrosen/keytrain/internal/session"
	"github.com/zjrosen/keytrain/internal/stats"
	"github.com/zjrosen/keytrain/internal/tracing"
)

func newTestSession(t *testing.T, text string, cfg session.Config) *session.Session {
	t.Helper()
	cfg.Buffer = buffer.New(text)
	cfg.Clipboard = clipboard.NewRegister()
	return session.New(cfg)
}

func recvNotification(t *testing.T, ch <-chan pubsub.Event[session.Notification]) session.Notification {
	t.Helper()
	select {
	case ev := <-ch:
		return ev.Payload
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
		return session.Notification{}
	}
}

func TestSession_StartStop(t *testing.T) {
	s := newTestSession(t, "hello", session.Config{})
	require.False(t, s.Running())
	require.NotEmpty(t, s.ID())

	s.Start(context.Background())
	require.True(t, s.Running())
	require.True(t, s.Interpreter().Active())

	require.NoError(t, s.Stop())
	require.False(t, s.Running())
	require.False(t, s.Interpreter().Active())
}

func TestSession_StartTwiceIsNoop(t *testing.T) {
	s := newTestSession(t, "hello", session.Config{})
	s.Start(context.Background())
	s.Start(context.Background())
	require.True(t, s.Running())
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
}

func TestSession_Toggle(t *testing.T) {
	s := newTestSession(t, "hello", session.Config{})
	require.NoError(t, s.Toggle(context.Background()))
	require.True(t, s.Running())
	require.NoError(t, s.Toggle(context.Background()))
	require.False(t, s.Running())
}

func TestSession_CalibrateHasNoStateEffect(t *testing.T) {
	s := newTestSession(t, "hello", session.Config{})
	s.Calibrate()
	require.False(t, s.Running())
	s.Start(context.Background())
	s.Calibrate()
	require.True(t, s.Running())
	assert.Equal(t, interp.ModeNormal, s.Interpreter().Mode())
	require.NoError(t, s.Stop())
}

func TestSession_HandleKeyWhileStopped(t *testing.T) {
	s := newTestSession(t, "hello", session.Config{})
	s.HandleKey(interp.TextInput("l"))
	assert.Zero(t, s.Interpreter().Metrics().KeysHandled)
}

func TestSession_PublishesModeChanges(t *testing.T) {
	s := newTestSession(t, "hello", session.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Broker().Subscribe(ctx)

	s.Start(ctx)
	n := recvNotification(t, ch)
	require.Equal(t, "NORMAL", n.Status)

	s.HandleKey(interp.TextInput("i"))

	n = recvNotification(t, ch)
	assert.Equal(t, interp.ModeInsert, n.Mode)
	assert.Equal(t, interp.ModeNormal, n.Previous)
	assert.Equal(t, "INSERT", n.Status)
}

func TestSession_PublishesStatusForPendingState(t *testing.T) {
	s := newTestSession(t, "hello world", session.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Broker().Subscribe(ctx)

	s.Start(ctx)
	n := recvNotification(t, ch)
	require.Equal(t, "NORMAL", n.Status)

	s.HandleKey(interp.TextInput("2"))

	n = recvNotification(t, ch)
	assert.Equal(t, interp.ModeNormal, n.Mode)
	assert.Equal(t, "NORMAL 2", n.Status)
}

func TestSession_StopRecordsSummary(t *testing.T) {
	store, err := stats.NewStore(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	defer store.Close()

	s := newTestSession(t, "hello world", session.Config{Store: store})
	s.Start(context.Background())
	s.HandleKey(interp.TextInput("d"))
	s.HandleKey(interp.TextInput("w"))
	require.NoError(t, s.Stop())

	summaries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, s.ID(), summaries[0].SessionID)
	assert.Equal(t, 2, summaries[0].KeysHandled)
	assert.Equal(t, 1, summaries[0].EditsApplied)
}

func TestSession_TracesKeysToFile(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:    true,
		Exporter:   "file",
		FilePath:   tracePath,
		SampleRate: 1.0,
	})
	require.NoError(t, err)

	s := newTestSession(t, "hello", session.Config{Tracing: provider})
	ctx := context.Background()
	s.Start(ctx)
	s.HandleKey(interp.TextInput("l"))
	require.NoError(t, s.Stop())
	require.NoError(t, provider.Shutdown(ctx))

	f, err := os.Open(tracePath)
	require.NoError(t, err)
	defer f.Close()

	names := map[string]bool{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec tracing.SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		names[rec.Name] = true
	}
	require.NoError(t, scanner.Err())
	assert.True(t, names[tracing.SpanSession], "session span should be exported")
	assert.True(t, names[tracing.SpanKey], "key span should be exported")
}
