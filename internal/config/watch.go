package config

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Update is a reloaded config, or the error that prevented loading it.
type Update struct {
	Config *Config
	Err    error
}

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	updates   chan Update
	stop      chan struct{}
	debounce  *time.Timer
	mu        sync.Mutex
	closed    bool
	log       *slog.Logger
}

// Watch starts watching path. The directory is watched rather than the file
// so editors that replace the file on save are still seen.
func Watch(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsw,
		path:      abs,
		updates:   make(chan Update, 1),
		stop:      make(chan struct{}),
		log:       logger,
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
		close(w.updates)
	}()

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.mu.Lock()
			if w.debounce != nil {
				w.debounce.Stop()
			}
			w.debounce = time.AfterFunc(reloadDebounce, w.reload)
			w.mu.Unlock()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watch", "err", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFrom(w.path)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	u := Update{Config: cfg, Err: err}
	// Keep only the newest update.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- u:
	default:
	}
	w.log.Debug("config reloaded", "path", w.path, "err", err)
}

// Updates delivers reloaded configs. It is closed by Close.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	select {
	case <-w.stop:
		w.mu.Unlock()
		return nil
	default:
	}
	close(w.stop)
	w.mu.Unlock()
	return w.fsWatcher.Close()
}
