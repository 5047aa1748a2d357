package store

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zhubert/sidepanel/internal/logger"
)

// DefaultWatchDebounce coalesces the burst of writes sqlite makes for one
// transaction (main file plus journal) into a single change signal.
const DefaultWatchDebounce = 300 * time.Millisecond

// Watcher signals when the database file, or its journal, is written.
// Changes and Errors are closed when the watcher stops.
type Watcher struct {
	path    string
	changes chan struct{}
	errc    chan error
	done    chan struct{}
	wait    time.Duration

	mu       sync.Mutex
	debounce *time.Timer
	stopped  bool
}

// Watch starts watching the directory holding path.
func Watch(path string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		changes: make(chan struct{}, 1),
		errc:    make(chan error, 1),
		done:    make(chan struct{}),
		wait:    debounce,
	}
	go w.run(fw)
	return w, nil
}

// Changes delivers one value per debounced burst of writes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Errors delivers watcher errors. Non-fatal.
func (w *Watcher) Errors() <-chan error {
	return w.errc
}

// Stop ends the watch. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	if w.debounce != nil {
		w.debounce.Stop()
	}
	close(w.done)
}

func (w *Watcher) signal() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// relevant reports whether name is the database or one of its sidecars
// (-journal, -wal, -shm).
func (w *Watcher) relevant(name string) bool {
	return strings.HasPrefix(filepath.Base(name), filepath.Base(w.path))
}

func (w *Watcher) run(fw *fsnotify.Watcher) {
	defer close(w.changes)
	defer close(w.errc)
	defer fw.Close()
	defer w.markStopped()

	log := logger.WithComponent("store.watch")

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			log.Debug("store file changed", "file", event.Name, "op", event.Op.String())

			w.mu.Lock()
			if !w.stopped {
				if w.debounce != nil {
					w.debounce.Stop()
				}
				w.debounce = time.AfterFunc(w.wait, w.sendIfRunning)
			}
			w.mu.Unlock()

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			select {
			case w.errc <- err:
			default:
			}
		}
	}
}

func (w *Watcher) markStopped() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.debounce != nil {
		w.debounce.Stop()
	}
}

// sendIfRunning runs on the timer goroutine. Changes is only closed after
// stopped is set, so checking it under mu makes the send safe.
func (w *Watcher) sendIfRunning() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.signal()
}
