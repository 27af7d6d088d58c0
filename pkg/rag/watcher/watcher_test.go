package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"ai-tutor-be/internal/pkg/logger"
)

type batches struct {
	mu  sync.Mutex
	got [][]string
	ch  chan struct{}
}

func (b *batches) record(_ context.Context, paths []string) {
	b.mu.Lock()
	b.got = append(b.got, paths)
	b.mu.Unlock()
	b.ch <- struct{}{}
}

func TestWatcher_DebouncesChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	b := &batches{ch: make(chan struct{}, 4)}
	onlyMarkdown := func(p string) bool { return strings.HasSuffix(p, ".md") }
	w := New(root, 100*time.Millisecond, onlyMarkdown, b.record, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give Run time to register the watch
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "ia.md"), []byte("# IA"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ignore.png"), []byte{1}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ia.md"), []byte("# IA\ncorps"), 0o644))

	select {
	case <-b.ch:
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	require.NoError(t, <-done)

	b.mu.Lock()
	defer b.mu.Unlock()
	require.Len(t, b.got, 1)
	assert.Equal(t, []string{filepath.Join(root, "ia.md")}, b.got[0])
}

func TestWatcher_MissingRoot(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := New(filepath.Join(t.TempDir(), "absent"), 0, nil, func(context.Context, []string) {}, logger.NewNopLogger())
	err := w.Run(context.Background())
	assert.Error(t, err)
}
