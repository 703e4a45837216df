package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu      sync.Mutex
	batches [][]string
	ch      chan []string
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan []string, 16)}
}

func (r *recorder) onFlush(paths []string) {
	r.mu.Lock()
	r.batches = append(r.batches, paths)
	r.mu.Unlock()
	r.ch <- paths
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func (r *recorder) wait(t *testing.T) []string {
	t.Helper()
	select {
	case paths := <-r.ch:
		return paths
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for flush")
		return nil
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	rec := newRecorder()
	d := NewDebouncer(30*time.Millisecond, rec.onFlush)
	defer d.Stop()

	d.Add("b.txt")
	d.Add("a.txt")
	d.Add("b.txt")

	assert.Equal(t, []string{"a.txt", "b.txt"}, rec.wait(t))
	assert.Equal(t, 1, rec.count())
}

func TestDebouncerStopFlushes(t *testing.T) {
	rec := newRecorder()
	d := NewDebouncer(time.Hour, rec.onFlush)

	d.Add("pending.txt")
	d.Stop()
	assert.Equal(t, []string{"pending.txt"}, rec.wait(t))

	d.Stop()
	d.Add("ignored.txt")
	assert.Equal(t, 1, rec.count())
}

func TestNewRequiresFiles(t *testing.T) {
	_, err := New(nil, 0, nil, func([]string) {})
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestWatcherReportsWatchedFilesOnly(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "notes.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(watched, []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("one"), 0o644))

	rec := newRecorder()
	w, err := New([]string{watched}, 20*time.Millisecond, zap.NewNop(), rec.onFlush)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(other, []byte("two"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("two words"), 0o644))

	abs, err := filepath.Abs(watched)
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, rec.wait(t))

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.Error(t, w.Start(ctx))
}
