package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/homespun/homespun/internal/infrastructure/sqlite"
	"github.com/homespun/homespun/internal/sessions/domain"
	"github.com/homespun/homespun/internal/watcher"
)

func startWatcher(t *testing.T, dbPath string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{DBPath: dbPath, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err)
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "homespun.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("test"), 0o600))

	onChange := startWatcher(t, dbPath)

	for i := range 10 {
		require.NoError(t, os.WriteFile(dbPath, []byte(fmt.Sprintf("test%d", i)), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "homespun.db")
	otherPath := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(dbPath, []byte("db"), 0o600))
	require.NoError(t, os.WriteFile(otherPath, []byte("initial"), 0o600))

	onChange := startWatcher(t, dbPath)

	require.NoError(t, os.WriteFile(otherPath, []byte("other content"), 0o600))

	select {
	case <-onChange:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_WatchesWALFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "homespun.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("db"), 0o600))

	onChange := startWatcher(t, dbPath)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "homespun.db-wal"), []byte("wal data"), 0o600))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for WAL file write")
	}
}

func TestWatcher_StoreWrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "homespun.db")
	db, err := sqlite.NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	onChange := startWatcher(t, dbPath)

	require.NoError(t, db.SessionRepository().Save(domain.NewSession("s1", "e1", "p1", domain.StatusRunning)))

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification after a store write")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "homespun.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("test"), 0o600))

	w, err := watcher.New(watcher.DefaultConfig(dbPath))
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Stop()
		_ = w.Stop()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() timed out")
	}
}

func TestNew_DefaultsDebounce(t *testing.T) {
	cfg := watcher.DefaultConfig("/tmp/homespun.db")
	require.Equal(t, "/tmp/homespun.db", cfg.DBPath)
	require.Equal(t, watcher.DefaultDebounce, cfg.Debounce)
}
