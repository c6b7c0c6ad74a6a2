package loader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/0xalexb/hjarta-settings/tree"

	"github.com/fsnotify/fsnotify"
)

// Watch loads base once, then reloads whenever one of the files of the
// extends chain changes on disk, calling onLoad after every load. Bursts of
// events are coalesced by the debounce period. onLoad is called serially
// from the watching goroutine, with a nil Result and nil error while the
// settings file is missing. Watch blocks until ctx is done.
//
// Watch observes the OS filesystem regardless of WithFs.
func (l *Loader) Watch(ctx context.Context, base *tree.OrderedMap, onLoad func(*Result, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	defer func() {
		_ = watcher.Close()
	}()

	watched := make(map[string]bool)

	reload := func() {
		result, err := l.Load(base)
		onLoad(result, err)

		// the extends chain may have changed
		for _, f := range l.Files() {
			err := l.watchDir(watcher, watched, f)
			if err != nil {
				l.opts.logger.Warn("watching settings directory", slog.String("file", f), slog.Any("error", err))
			}
		}
	}

	err = l.watchDir(watcher, watched, l.path)
	if err != nil {
		return err
	}

	reload()

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timerC:
			timerC = nil

			l.opts.logger.Info("settings changed, reloading", slog.String("file", l.path))
			reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			l.opts.logger.Warn("settings watcher error", slog.Any("error", err))
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !l.isChainEvent(evt) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(l.opts.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}

				timer.Reset(l.opts.debounce)
			}

			timerC = timer.C
		}
	}
}

// watchDir adds the directory holding file to watcher once.
func (l *Loader) watchDir(watcher *fsnotify.Watcher, watched map[string]bool, file string) error {
	dir := filepath.Dir(absPath(file))
	if watched[dir] {
		return nil
	}

	err := watcher.Add(dir)
	if err != nil {
		return fmt.Errorf("watching %q: %w", dir, err)
	}

	watched[dir] = true

	return nil
}

func (l *Loader) isChainEvent(evt fsnotify.Event) bool {
	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	name := absPath(evt.Name)

	files := l.Files()
	if len(files) == 0 {
		files = []string{l.path}
	}

	for _, f := range files {
		if absPath(f) == name {
			return true
		}
	}

	return false
}
