package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// DefaultReloadDebounce is the quiet period after the last write before the catalog reloads
const DefaultReloadDebounce = 500 * time.Millisecond

type catalogLoader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// CatalogWatcher reloads the catalog when its fixtures file changes on disk
type CatalogWatcher struct {
	path     string
	loader   catalogLoader
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// OnReload, if set, is called after every reload attempt
	OnReload func(*Snapshot, error)
}

// NewCatalogWatcher starts watching path. Editors often replace files instead of
// writing them in place, so the parent directory is watched and events are
// filtered down to path.
func NewCatalogWatcher(path string, loader catalogLoader, debounce time.Duration) (*CatalogWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path %q: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &CatalogWatcher{
		path:     abs,
		loader:   loader,
		debounce: debounce,
		watcher:  w,
	}, nil
}

// Run blocks until ctx is cancelled, reloading after each burst of changes
func (cw *CatalogWatcher) Run(ctx context.Context) error {
	defer cw.watcher.Close()

	log.Printf("🔍 Watching %s for catalog changes (debounce=%s)", cw.path, cw.debounce)

	timer := time.NewTimer(cw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("🛑 Catalog watcher stopped")
			return nil

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return nil
			}
			if !cw.relevant(event) {
				continue
			}
			timer.Reset(cw.debounce)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("⚠️  Catalog watcher error: %v", err)

		case <-timer.C:
			cw.reload(ctx)
		}
	}
}

func (cw *CatalogWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != cw.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (cw *CatalogWatcher) reload(ctx context.Context) {
	log.Printf("🔄 Catalog file changed, reloading %s", cw.path)
	snap, err := cw.loader.Load(ctx)
	if err != nil {
		log.Printf("❌ Catalog reload failed: %v", err)
	}
	if cw.OnReload != nil {
		cw.OnReload(snap, err)
	}
}
