package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Holder keeps the current config for long-running servers and reloads it
// when its file changes. Sessions read Get once at start and keep that copy.
type Holder struct {
	mu     sync.RWMutex
	cfg    FlightConfig
	path   string
	logger *log.Logger
	onLoad func(FlightConfig)
}

// NewHolder creates a holder serving cfg, reloading from path when watched.
// An empty path disables reloading.
func NewHolder(path string, cfg FlightConfig, logger *log.Logger) *Holder {
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return &Holder{cfg: cfg, path: path, logger: logger}
}

// Get returns the current config.
func (h *Holder) Get() FlightConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

// Path returns the watched file, or empty if reloading is disabled.
func (h *Holder) Path() string {
	return h.path
}

// OnLoad registers a callback run after every successful reload.
func (h *Holder) OnLoad(fn func(FlightConfig)) {
	h.mu.Lock()
	h.onLoad = fn
	h.mu.Unlock()
}

// Reload reads the file again. On error the previous config stays active.
func (h *Holder) Reload() error {
	if h.path == "" {
		return nil
	}
	cfg, err := LoadFlight(h.path)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.cfg = cfg
	fn := h.onLoad
	h.mu.Unlock()

	if fn != nil {
		fn(cfg)
	}
	return nil
}

// Watch reloads the config whenever its file is written or recreated.
// It blocks until ctx is cancelled. The parent directory is watched so
// editors that replace the file on save are handled.
func (h *Holder) Watch(ctx context.Context) error {
	if h.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: cannot create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		return fmt.Errorf("config: cannot watch %s: %w", h.path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != h.path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if err := h.Reload(); err != nil {
					h.warn("config reload failed, keeping previous", "path", h.path, "error", err)
					continue
				}
				h.info("config reloaded", "path", h.path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.warn("config watcher error", "error", err)
		}
	}
}

func (h *Holder) info(msg string, kv ...any) {
	if h.logger != nil {
		h.logger.Info(msg, kv...)
	}
}

func (h *Holder) warn(msg string, kv ...any) {
	if h.logger != nil {
		h.logger.Warn(msg, kv...)
	}
}
