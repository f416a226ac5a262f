package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dualdiff/internal/logging"
)

const debounce = 50 * time.Millisecond

func waitChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case _, ok := <-w.Changes():
		require.True(t, ok, "changes channel closed")
	case <-time.After(5 * time.Second):
		t.Fatal("no change signalled")
	}
}

func TestWatcher_SignalsWrites(t *testing.T) {
	left, right := t.TempDir(), t.TempDir()
	w, err := New([]string{left, right}, debounce, logging.Discard())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(right, "a.txt"), []byte("a"), 0644))
	waitChange(t, w)
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	root := t.TempDir()
	w, err := New([]string{root}, debounce, logging.Discard())
	require.NoError(t, err)
	defer w.Close()

	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(name), 0644))
	}
	waitChange(t, w)

	select {
	case <-w.Changes():
		t.Fatal("burst produced more than one signal")
	case <-time.After(4 * debounce):
	}
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	w, err := New([]string{root}, debounce, logging.Discard())
	require.NoError(t, err)
	defer w.Close()

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	waitChange(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "inner.txt"), []byte("x"), 0644))
	waitChange(t, w)
}

func TestWatcher_MissingRoot(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")}, debounce, logging.Discard())
	assert.Error(t, err)
}

func TestWatcher_CloseClosesChanges(t *testing.T) {
	w, err := New([]string{t.TempDir()}, debounce, logging.Discard())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	_, ok := <-w.Changes()
	assert.False(t, ok)
	assert.NoError(t, w.Close())
}
