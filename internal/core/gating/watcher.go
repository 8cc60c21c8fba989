package gating

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watcher reloads a criteria profile into a Store when the file changes.
// Editors often replace the file rather than write in place, so the parent
// directory is watched and events filtered by name.
type Watcher struct {
	path  string
	store *Store
}

func NewWatcher(path string, store *Store) *Watcher {
	return &Watcher{path: path, store: store}
}

// Run blocks until ctx is cancelled. Reload failures keep the previous
// criteria and log a warning.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("criteria watcher error")
		}
	}
}

func (w *Watcher) reload() {
	c, err := LoadProfile(w.path)
	if err != nil {
		log.WithError(err).Warn("criteria profile reload failed, keeping previous thresholds")
		return
	}
	w.store.Set(c)
	log.WithField("path", w.path).Info("criteria profile reloaded")
}
