package posts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatchReportsChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	s := NewStore(dir, WithWatchDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func(name string) { changed <- name })
	}()

	// The watcher registers asynchronously; keep writing until it notices.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	var got string
wait:
	for {
		select {
		case got = <-changed:
			break wait
		case <-tick.C:
			require.NoError(t, os.WriteFile(filepath.Join(dir, "new.md"), []byte("---\ntitle: New\n---\n"), 0o644))
		case <-deadline:
			cancel()
			t.Fatal("no change reported")
		}
	}
	assert.Equal(t, "new.md", got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchRequiresDirectory(t *testing.T) {
	s := NewStoreFS(fstest.MapFS{})
	err := s.Watch(context.Background(), func(string) {})
	assert.Error(t, err)
}

func TestWatchMissingDirectory(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing"))
	err := s.Watch(context.Background(), func(string) {})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
