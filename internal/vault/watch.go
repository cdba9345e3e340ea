package vault

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// EventKind classifies a change to a watched note.
type EventKind int

const (
	// Changed means the note was written, possibly by replacing it.
	Changed EventKind = iota
	// Removed means the note no longer exists.
	Removed
	// Failed carries a watcher error.
	Failed
)

// Event reports a change to the watched note.
type Event struct {
	Kind EventKind
	Path string
	Err  error
}

// Watcher follows a single note. The parent directory is watched so that
// editors replacing the file through a rename are still noticed.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan Event
	quit    chan struct{}
	done    chan struct{}
}

// Watch starts following the note at path.
func Watch(path string) (*Watcher, error) {
	path = filepath.Clean(path)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	w := &Watcher{
		watcher: fw,
		path:    path,
		events:  make(chan Event, 10),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events delivers changes to the note. It is closed after Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.quit)
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.events)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !w.send(Event{Kind: w.classify(), Path: w.path}) {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if !w.send(Event{Kind: Failed, Path: w.path, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) send(ev Event) bool {
	select {
	case w.events <- ev:
		return true
	case <-w.quit:
		return false
	}
}

func (w *Watcher) classify() EventKind {
	if _, err := os.Stat(w.path); errors.Is(err, fs.ErrNotExist) {
		return Removed
	}
	return Changed
}
