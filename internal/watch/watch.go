// Package watch reports changes to a database file so open charts can
// reload. Bursts of writes, including the SQLite WAL and shared-memory
// companions, collapse into one notification.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 250 * time.Millisecond

// Watcher monitors one database file using fsnotify.
type Watcher struct {
	Path    string
	Changes <-chan struct{} // Read-only external channel

	changes  chan struct{} // Internal write channel
	done     chan struct{}
	watcher  *fsnotify.Watcher
	debounce func(func())

	mu     sync.Mutex
	closed bool
}

// New creates a watcher for the file at path. A zero quiet period uses
// DefaultDebounce.
func New(path string, quiet time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if quiet <= 0 {
		quiet = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}

	// Capacity one: a pending notification already covers later changes.
	ch := make(chan struct{}, 1)
	return &Watcher{
		Path:     abs,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: debounce.New(quiet),
	}, nil
}

// Start begins watching. The directory is watched rather than the file so
// that atomic replacements and the WAL file are seen too.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.debounce(w.notify)
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next event still arrives.
		}
	}
}

// relevant reports whether name is the database or one of its SQLite
// companions (-wal, -shm, -journal).
func (w *Watcher) relevant(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if abs == w.Path {
		return true
	}
	rest, ok := strings.CutPrefix(abs, w.Path)
	return ok && (rest == "-wal" || rest == "-shm" || rest == "-journal")
}

func (w *Watcher) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
