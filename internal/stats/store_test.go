package stats

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// setupTestStore creates a Store backed by a temp database and registers cleanup.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "stats.db")
	store, err := NewStore(dbPath)
	require.NoError(t, err, "NewStore should succeed")
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "stats.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err, "NewStore should succeed with nested non-existent directories")
	defer store.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err, "directory should exist after NewStore")
	require.True(t, info.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0700), info.Mode().Perm())
	}
}

func TestNewStore_CreatesSchema(t *testing.T) {
	store := setupTestStore(t)

	var tableName string
	err := store.db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='session_stats'`,
	).Scan(&tableName)
	require.NoError(t, err, "session_stats table should exist")
	require.Equal(t, "session_stats", tableName)
}

func TestStore_SaveSetsID(t *testing.T) {
	store := setupTestStore(t)

	sum := &Summary{
		SessionID:    "a1b2c3",
		StartedAt:    time.Now().Add(-time.Minute),
		EndedAt:      time.Now(),
		KeysHandled:  42,
		EditsApplied: 7,
		ModeSwitches: 3,
	}
	require.NoError(t, store.Save(sum))
	require.Greater(t, sum.ID, int64(0), "Save should set the row ID")
}

func TestStore_RecentNewestFirst(t *testing.T) {
	store := setupTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		sum := &Summary{
			SessionID:   "session-" + string(rune('a'+i)),
			StartedAt:   base.Add(time.Duration(i) * time.Hour),
			EndedAt:     base.Add(time.Duration(i)*time.Hour + 10*time.Minute),
			KeysHandled: i * 10,
		}
		require.NoError(t, store.Save(sum))
	}

	summaries, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, "session-c", summaries[0].SessionID)
	require.Equal(t, "session-b", summaries[1].SessionID)
	require.Equal(t, 10*time.Minute, summaries[0].Duration())
}

func TestStore_RecentEmpty(t *testing.T) {
	store := setupTestStore(t)

	summaries, err := store.Recent(10)
	require.NoError(t, err)
	require.Empty(t, summaries)
}

func TestStore_Totals(t *testing.T) {
	store := setupTestStore(t)

	now := time.Now()
	require.NoError(t, store.Save(&Summary{
		SessionID: "one", StartedAt: now, EndedAt: now,
		KeysHandled: 10, EditsApplied: 2, ModeSwitches: 1,
	}))
	require.NoError(t, store.Save(&Summary{
		SessionID: "two", StartedAt: now, EndedAt: now,
		KeysHandled: 5, EditsApplied: 3, ModeSwitches: 4,
	}))

	totals, err := store.Totals()
	require.NoError(t, err)
	require.Equal(t, Totals{Sessions: 2, KeysHandled: 15, EditsApplied: 5, ModeSwitches: 5}, totals)
}

func TestStore_TotalsEmpty(t *testing.T) {
	store := setupTestStore(t)

	totals, err := store.Totals()
	require.NoError(t, err)
	require.Equal(t, Totals{}, totals)
}
