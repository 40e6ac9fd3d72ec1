package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"mtodo/pkg/debounce"
)

// reloadDelay coalesces the burst of events editors produce on save
const reloadDelay = 150 * time.Millisecond

// Watcher reloads the configuration when the config file changes
type Watcher struct {
	loader  *Loader
	watcher *fsnotify.Watcher
	delay   time.Duration
}

// NewWatcher watches the directory holding the loader's config file.
// The directory is watched rather than the file so editors that save by
// renaming a temp file over it are still seen.
func NewWatcher(loader *Loader) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(loader.GetConfigPath())); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{
		loader:  loader,
		watcher: fw,
		delay:   reloadDelay,
	}, nil
}

// Run delivers each reloaded config, or the error that prevented loading
// it, to onChange until ctx is done or the watcher is closed
func (w *Watcher) Run(ctx context.Context, onChange func(*Config, error)) {
	target := filepath.Clean(w.loader.GetConfigPath())
	reload := debounce.New(w.delay)
	defer reload.Cancel()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			reload.Schedule(func() {
				// Load would recreate a missing file with defaults.
				if _, err := os.Stat(target); err != nil {
					return
				}
				onChange(w.loader.Load())
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			onChange(nil, fmt.Errorf("config watcher: %w", err))
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
