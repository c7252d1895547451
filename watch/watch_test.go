package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"klondike/placement"
	"klondike/searcher"

	"github.com/stretchr/testify/require"
)

const kingPosition = `{"waste_pile":true,"tableaus":[{"hidden":2,"cards":["13H"]}]}`

type recorder struct {
	mu  sync.Mutex
	got []searcher.Suggestion
}

func (r *recorder) handle(_ placement.Input, s searcher.Suggestion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, s)
}

func (r *recorder) categories() []searcher.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []searcher.Category
	for _, s := range r.got {
		out = append(out, s.Category)
	}
	return out
}

func TestProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placement.json")
	rec := &recorder{}
	w := New(path, rec.handle)

	require.ErrorIs(t, w.Process(), os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte(kingPosition), 0o644))
	require.NoError(t, w.Process())
	require.NoError(t, w.Process())
	require.Equal(t, []searcher.Category{searcher.CategoryKing, searcher.CategoryDrawWaste}, rec.categories())

	require.NoError(t, os.WriteFile(path, []byte(`{"waste":"AA"}`), 0o644))
	require.ErrorIs(t, w.Process(), placement.ErrMalformedInput)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "placement.json")
	rec := &recorder{}
	w := New(path, rec.handle, WithDebounce(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// the watch is registered asynchronously; keep writing until it is seen
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(kingPosition), 0o644)
		return len(rec.categories()) > 0
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))

	cancel()
	require.NoError(t, <-done)
	require.Equal(t, searcher.CategoryKing, rec.categories()[0])
}
