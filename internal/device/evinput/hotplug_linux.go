//go:build linux

package evinput

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchHotplug calls notify once an event node created in dir has had time
// to settle. Bursts of creations within the settle window collapse into one
// notify. The returned func stops the watcher and waits for it; notify is
// never called after it returns.
func watchHotplug(ctx context.Context, dir string, settle time.Duration, logger *slog.Logger, notify func()) (func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	var (
		mu      sync.Mutex
		timer   *time.Timer
		stopped bool
		wg      sync.WaitGroup
	)
	fire := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		timer = nil
		notify()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Create) || !strings.HasPrefix(filepath.Base(ev.Name), "event") {
					continue
				}
				logger.Debug("device node created", "path", ev.Name)
				mu.Lock()
				if timer == nil && !stopped {
					timer = time.AfterFunc(settle, fire)
				}
				mu.Unlock()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("hotplug watcher", "error", err)
			}
		}
	}()

	return func() {
		mu.Lock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		w.Close()
		wg.Wait()
	}, nil
}
