package scene

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	werrors "github.com/odvcencio/wayfinder/pkg/errors"
)

// DebounceDelay coalesces bursts of writes into one reload.
var DebounceDelay = 100 * time.Millisecond

// Watch reloads the scene at path whenever the file is written or
// recreated and passes the result to fn. A file that fails to load is
// reported through fn's error and the watch continues. Watch blocks until
// ctx is done.
func Watch(ctx context.Context, path string, fn func(*Scene, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return werrors.Wrap(err, werrors.ErrCodeSceneLoad, "failed to create scene watcher")
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file are seen.
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return werrors.Wrap(err, werrors.ErrCodeSceneLoad, "failed to watch scene directory").
			WithContext("path", path)
	}

	reloads := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(DebounceDelay, func() {
				select {
				case reloads <- struct{}{}:
				default:
				}
			})

		case <-reloads:
			fn(Load(path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn(nil, werrors.Wrap(err, werrors.ErrCodeSceneLoad, "scene watcher error"))
		}
	}
}
