package lcconfig

import (
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/stlalpha/linecraft/internal/clog"
)

// Watcher watches a configuration file for changes and hot-reloads it,
// grounded on the teacher's cmd/vision3/config_watcher.go ConfigWatcher.
type Watcher struct {
	mu     sync.RWMutex
	cfg    Config
	path   string
	fsw    *fsnotify.Watcher
	done   chan struct{}
	onLoad func(Config)
}

// NewWatcher creates a Watcher for path, loading it immediately. onLoad, if
// non-nil, is called with the new configuration after every successful
// reload (including the initial load).
func NewWatcher(path string, onLoad func(Config)) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(path); err != nil {
		clog.Warn("lcconfig: not watching %s for changes: %v", path, err)
	}

	w := &Watcher{
		cfg:    cfg,
		path:   path,
		fsw:    fsw,
		done:   make(chan struct{}),
		onLoad: onLoad,
	}
	if onLoad != nil {
		onLoad(cfg)
	}

	go w.run()
	return w, nil
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cfg
}

// Close stops watching and releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			clog.Warn("lcconfig: watcher error on %s: %v", w.path, err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		clog.Error("lcconfig: reload %s: %v", w.path, err)
		return
	}
	w.mu.Lock()
	w.cfg = cfg
	w.mu.Unlock()
	clog.Info("lcconfig: reloaded %s", w.path)
	if w.onLoad != nil {
		w.onLoad(cfg)
	}
}
