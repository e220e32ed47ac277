package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// InvalidateFunc is called with the name of a skill whose document changed
type InvalidateFunc func(name string)

// WatcherConfig holds configuration for the watcher
type WatcherConfig struct {
	Store              *Store
	StabilityThreshold time.Duration
	OnInvalidate       InvalidateFunc
}

// Watcher invalidates cached skills when their documents change on disk
type Watcher struct {
	watcher            *fsnotify.Watcher
	store              *Store
	stabilityThreshold time.Duration
	onInvalidate       InvalidateFunc
	done               chan struct{}
	debounceTimers     map[string]*time.Timer
	debounceMu         sync.Mutex
	stopOnce           sync.Once
}

// NewWatcher creates a watcher for the store's root
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Store == nil {
		return nil, fmt.Errorf("watcher needs a store")
	}
	if config.OnInvalidate == nil {
		return nil, fmt.Errorf("watcher needs an invalidate callback")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if config.StabilityThreshold == 0 {
		config.StabilityThreshold = 100 * time.Millisecond
	}

	return &Watcher{
		watcher:            watcher,
		store:              config.Store,
		stabilityThreshold: config.StabilityThreshold,
		onInvalidate:       config.OnInvalidate,
		done:               make(chan struct{}),
		debounceTimers:     make(map[string]*time.Timer),
	}, nil
}

// Start watches the skill root and every directory below it
func (w *Watcher) Start() error {
	root := w.store.Root()
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("failed to create skill root: %w", err)
	}
	if err := w.addDirectoryRecursive(root); err != nil {
		return fmt.Errorf("failed to watch skill root: %w", err)
	}

	go w.eventLoop()

	log.Info().Str("path", root).Msg("Skill watcher started")
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	first := false
	w.stopOnce.Do(func() {
		close(w.done)
		first = true
	})
	if !first {
		return nil
	}

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	clear(w.debounceTimers)
	w.debounceMu.Unlock()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	log.Info().Msg("Skill watcher stopped")
	return nil
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !shouldIgnore(event.Name) {
				w.debounceEvent(event)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("Skill watcher error")

		case <-w.done:
			return
		}
	}
}

// debounceEvent collapses bursts of events on one path into a single callback
func (w *Watcher) debounceEvent(event fsnotify.Event) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[event.Name]; exists {
		timer.Stop()
	}

	w.debounceTimers[event.Name] = time.AfterFunc(w.stabilityThreshold, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimers, event.Name)
		w.debounceMu.Unlock()

		select {
		case <-w.done:
			return
		default:
			w.processEvent(event)
		}
	})
}

func (w *Watcher) processEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addDirectoryRecursive(event.Name)
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	category, name, ok := w.store.NameFromPath(event.Name)
	if !ok {
		return
	}

	log.Debug().
		Str("path", event.Name).
		Str("op", event.Op.String()).
		Str("category", category).
		Str("skill", name).
		Msg("Skill document changed")

	w.onInvalidate(name)
}

func (w *Watcher) addDirectoryRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if walkPath != path && shouldIgnore(walkPath) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(walkPath); err != nil {
			log.Warn().Err(err).Str("path", walkPath).Msg("Failed to watch path")
		}
		return nil
	})
}

// shouldIgnore skips dotfiles and editor swap files
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp")
}
