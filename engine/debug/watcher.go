package debug

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

type watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan Settings

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Watcher reloads a settings file whenever it changes and hands the result to the frame loop.
// Only the newest unread settings are kept.
type Watcher interface {
	// Poll returns the newest settings loaded since the previous Poll, without blocking.
	//
	// Returns:
	//   - Settings: the settings
	//   - bool: false when nothing new was loaded
	Poll() (Settings, bool)

	// Close stops watching. Safe to call multiple times.
	//
	// Returns:
	//   - error: an error from the underlying watcher
	Close() error
}

var _ Watcher = &watcher{}

// NewWatcher loads the settings file and starts watching it. The initial settings are available
// from the first Poll.
//
// Parameters:
//   - path: the settings file
//
// Returns:
//   - Watcher: the watcher
//   - error: an error if the file cannot be loaded or watched
func NewWatcher(path string) (Watcher, error) {
	initial, err := LoadSettings(path)
	if err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating settings watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of writing it in place.
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	w := &watcher{
		path:    filepath.Clean(path),
		fs:      fs,
		updates: make(chan Settings, 1),
		done:    make(chan struct{}),
	}
	w.offer(initial)

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			s, err := LoadSettings(w.path)
			if err != nil {
				log.Printf("[Debug] keeping previous settings: %v", err)
				continue
			}
			w.offer(s)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("[Debug] settings watcher: %v", err)
		}
	}
}

// offer replaces any unread settings with s.
func (w *watcher) offer(s Settings) {
	select {
	case w.updates <- s:
	default:
		select {
		case <-w.updates:
		default:
		}
		select {
		case w.updates <- s:
		default:
		}
	}
}

func (w *watcher) Poll() (Settings, bool) {
	select {
	case s := <-w.updates:
		return s, true
	default:
		return Settings{}, false
	}
}

func (w *watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		if errors.Is(err, fsnotify.ErrClosed) {
			err = nil
		}
	})
	return err
}
