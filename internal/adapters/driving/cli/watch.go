package cli

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pagelift/pagelift-cli/internal/logger"
)

// watchDebounce coalesces bursts of filesystem events into one republish.
const watchDebounce = 500 * time.Millisecond

// watchAndPublish republishes the project whenever files under it change.
// It blocks until the context is cancelled.
func watchAndPublish(ctx context.Context, cmd *cobra.Command, dir string) error {
	watcher, err := newProjectWatcher(dir)
	if err != nil {
		return err
	}
	defer watcher.Close()

	cmd.Println("Watching for changes. Press Ctrl-C to stop.")

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantChange(event) {
				continue
			}
			logger.Debug("Change detected: %s", event)
			// New directories need to be watched as they appear.
			if event.Op&fsnotify.Create != 0 {
				watchIfDir(watcher, event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				fire = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-fire:
			timer = nil
			fire = nil
			if err := publishProject(ctx, cmd, dir); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				cmd.PrintErrf("Republish failed: %v\n", err)
			}
		}
	}
}

// newProjectWatcher watches the project directory and all subdirectories,
// skipping hidden ones.
func newProjectWatcher(dir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	addWatchDirs(watcher, dir)
	return watcher, nil
}

// watchIfDir extends the watch to a newly created directory. Created
// plain files are already covered by their parent's watch.
func watchIfDir(watcher *fsnotify.Watcher, name string) {
	info, err := os.Stat(name)
	if err != nil || !info.IsDir() {
		return
	}
	addWatchDirs(watcher, name)
}

// addWatchDirs adds root and every non-hidden directory below it to the
// watcher. Errors on individual directories are logged, not fatal.
func addWatchDirs(watcher *fsnotify.Watcher, root string) {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if !entry.IsDir() {
			return nil
		}
		if name := entry.Name(); strings.HasPrefix(name, ".") && path != root {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			logger.Warn("Cannot watch %s: %v", path, err)
		}
		return nil
	})
	if err != nil {
		logger.Warn("Walking %s: %v", root, err)
	}
}

// relevantChange filters out events that should not trigger a republish.
func relevantChange(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
