package main

import (
	"log"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"
)

// settleDelay coalesces the burst of events emitted while a dump is being
// rewritten.
const settleDelay = 100 * time.Millisecond

// watchDump sends on the returned channel every time the dump file is
// modified. The watcher is registered on the parent directory so that
// tools which replace the file instead of truncating it are still seen.
func watchDump(path string, done <-chan struct{}) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	if err = watcher.Watch(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	changed := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()

		var settle <-chan time.Time
		for {
			select {
			case ev := <-watcher.Event:
				if ev.Name == abs && !ev.IsAttrib() && !ev.IsDelete() {
					settle = time.After(settleDelay)
				}
			case err := <-watcher.Error:
				log.Printf("watcher: %v", err)
			case <-settle:
				settle = nil
				select {
				case changed <- struct{}{}:
				default:
				}
			case <-done:
				return
			}
		}
	}()

	return changed, nil
}
