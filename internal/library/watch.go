package library

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces bursts of filesystem events (a copy of many files
// produces one rescan, not one per file).
const debounce = 500 * time.Millisecond

// Watcher reports changes to the media directory so the host can
// rescan. Events carries one value per settled change burst.
type Watcher struct {
	Events chan struct{}

	fsw *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// NewWatcher starts watching dir.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		Events: make(chan struct{}, 1),
		fsw:    fsw,
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0 {
				w.bump()
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounce, func() {
		select {
		case w.Events <- struct{}{}:
		default:
		}
	})
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	close(w.done)
	return w.fsw.Close()
}
