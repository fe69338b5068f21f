package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"tokenrail/internal/logging"
)

// Watcher watches a manifest file and reloads it on change, so callers can
// rebuild grammars that baked in the old capability text. Grammar literals
// embed each capability's name and instruction verbatim; a stale grammar is
// wrong, not merely outdated, which is why rebuilding is not optional.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	onReload func(*Manifest)

	debounce time.Duration

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher prepares a watcher for the manifest at path. onReload runs
// with the freshly loaded manifest after every successful change; load
// failures are logged and skipped, keeping the previous grammar in force.
func NewWatcher(path string, onReload func(*Manifest)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fsw,
		path:     filepath.Clean(path),
		onReload: onReload,
		debounce: 250 * time.Millisecond, // editors fire bursts of writes
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the watch loop runs until Stop or
// context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory: editors replace files on save, which drops a
	// watch registered on the file itself.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.loop(ctx)
	return nil
}

// Stop ends watching and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	log := logging.L(logging.SubsystemWatch)

	// Trailing-edge debounce: every event in a save burst resets the timer
	// and the manifest is loaded only after writes have settled, so the last
	// write always wins. Loading on the first event instead would drop the
	// rest of the burst and leave a stale grammar in force.
	settle := time.NewTimer(w.debounce)
	if !settle.Stop() {
		<-settle.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-settle.C:
			pending = false
			manifest, err := Load(w.path)
			if err != nil {
				log.Warn("manifest reload failed, keeping previous grammar",
					zap.String("path", w.path),
					zap.Error(err))
				continue
			}
			log.Info("manifest reloaded",
				zap.String("path", w.path),
				zap.Int("capabilities", len(manifest.Capabilities)))
			w.onReload(manifest)
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if pending && !settle.Stop() {
				<-settle.C
			}
			settle.Reset(w.debounce)
			pending = true
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", zap.Error(err))
		}
	}
}
