package resources

import (
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = time.Millisecond * 500

// watchDir calls callback once changes in directory settle. Closing the
// returned watcher stops both goroutines.
func watchDir(
	directory string,
	callback func(),
	logger *slog.Logger,
) (
	*fsnotify.Watcher,
	error,
) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = watcher.Add(directory)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}

	reload := make(chan struct{}, 1)
	done := make(chan struct{})
	go scheduleReload(reload, done, callback)
	go handleWatcher(watcher, reload, done, logger)
	return watcher, nil
}

func handleWatcher(
	watcher *fsnotify.Watcher,
	reload chan<- struct{},
	done chan<- struct{},
	logger *slog.Logger,
) {
	defer close(done)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				select {
				case reload <- struct{}{}:
				default:
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("resource watcher error", "error", err)
		}
	}
}

func scheduleReload(
	reload <-chan struct{},
	done <-chan struct{},
	callback func(),
) {
	var timer *time.Timer = nil
	var c <-chan time.Time = nil
	for {
		select {
		case <-reload:
			if timer != nil {
				timer.Reset(reloadDebounce)
			} else {
				timer = time.NewTimer(reloadDebounce)
				c = timer.C
			}

		case <-c:
			c = nil
			timer = nil
			callback()

		case <-done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
