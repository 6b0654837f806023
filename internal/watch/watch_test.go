package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_DeliversChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"v": 0}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []string
	last := func() string {
		mu.Lock()
		defer mu.Unlock()
		if len(got) == 0 {
			return ""
		}
		return got[len(got)-1]
	}

	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, func(text string) {
			mu.Lock()
			got = append(got, text)
			mu.Unlock()
		})
	}()

	// Keep writing new content until the watcher is up and reports it. A write that lands before File reads the file is not a change.
	attempt := 0
	require.Eventually(t, func() bool {
		if got := last(); got != "" {
			return true
		}
		attempt++
		_ = os.WriteFile(path, []byte(fmt.Sprintf(`{"v": 1, "attempt": %d}`, attempt)), 0o644)
		return false
	}, 5*time.Second, 100*time.Millisecond)
	assert.True(t, strings.HasPrefix(last(), `{"v": 1, "attempt": `), last())

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))

	// Replacing the file by rename counts as a change.
	tmp := filepath.Join(dir, "doc.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"v": 2}`), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	require.Eventually(t, func() bool { return last() == `{"v": 2}` }, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.NotContains(t, got, "ignored")
	assert.NotContains(t, got, `{"v": 0}`)
	mu.Unlock()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("File did not return after cancel")
	}
}

func TestFile_MissingDirectory(t *testing.T) {
	err := File(context.Background(), filepath.Join(t.TempDir(), "no", "such", "doc.json"), func(string) {})
	require.Error(t, err)
}
