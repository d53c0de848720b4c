package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Dirs are watched recursively; any Markdown change under them triggers.
	Dirs []string
	// Files are watched through their parent directory; only changes to the
	// files themselves trigger.
	Files []string
	// Ignore, when set, drops events for paths it returns true for.
	Ignore   func(path string) bool
	Debounce time.Duration
	// OnError receives watcher errors. Nil discards them.
	OnError func(error)
}

// Watch calls run after each burst of relevant filesystem changes until ctx
// is cancelled. run is never called concurrently with itself.
func Watch(ctx context.Context, opts WatchOptions, run func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range opts.Dirs {
		if err := addWatchDirRecursive(watcher, dir); err != nil {
			return fmt.Errorf("cannot watch %s: %w", dir, err)
		}
	}
	files := make(map[string]bool, len(opts.Files))
	for _, f := range opts.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", f, err)
		}
		files[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("cannot watch %s: %w", f, err)
		}
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := false

	relevant := func(name string) bool {
		if opts.Ignore != nil && opts.Ignore(name) {
			return false
		}
		if files[name] {
			return true
		}
		if !underAny(name, opts.Dirs) {
			return false
		}
		return filepath.Ext(name) == ".md" || isDirOrGone(name)
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			name := event.Name
			if abs, err := filepath.Abs(name); err == nil {
				name = abs
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(name); err == nil && info.IsDir() && underAny(name, opts.Dirs) {
					_ = addWatchDirRecursive(watcher, name)
				}
			}
			if !relevant(name) {
				continue
			}
			pending = true
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if opts.OnError != nil {
				opts.OnError(err)
			}

		case <-timer.C:
			if pending {
				pending = false
				run()
			}
		}
	}
}

// addWatchDirRecursive adds a directory and all its subdirectories to the watcher.
func addWatchDirRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}

func underAny(name string, dirs []string) bool {
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if rel, err := filepath.Rel(abs, name); err == nil && rel != ".." && !startsWithParent(rel) {
			return true
		}
	}
	return false
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}

// isDirOrGone reports true for directories and for paths that no longer
// exist, so removed or renamed folders of docs still trigger.
func isDirOrGone(name string) bool {
	info, err := os.Stat(name)
	return err != nil || info.IsDir()
}
