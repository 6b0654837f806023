// Package watch re-reads a file whenever it changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/codalotl/docview/internal/logging"
	"github.com/fsnotify/fsnotify"
)

var log = logging.Get("docview.watch")

// debounce is how long File waits after the last event for a burst of writes to settle.
var debounce = 50 * time.Millisecond

// File watches path and calls onChange with the file's new contents after it is written, created, or replaced (editors often save by renaming a temp file over
// the original, so the file's directory is watched rather than the file). Bursts of events are debounced, and onChange is not called when the contents did not
// change. onChange runs on File's goroutine, one call at a time.
//
// File blocks until ctx is done, then returns nil. It returns an error if the watch cannot be set up.
func File(ctx context.Context, path string, onChange func(text string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	var last string
	if b, err := os.ReadFile(abs); err == nil {
		last = string(b)
	}

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				fire = time.After(debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warningf("watch %s: %v", abs, err)

		case <-fire:
			fire = nil
			b, err := os.ReadFile(abs)
			if err != nil {
				// Mid-replace; the next event retries.
				log.Debugf("watch %s: read: %v", abs, err)
				continue
			}
			if text := string(b); text != last {
				last = text
				onChange(text)
			}
		}
	}
}
