package localize

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads a label file whenever it is written.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(Labels)
	log      zerolog.Logger
}

// NewWatcher watches path's directory (editors often replace files rather
// than write them in place) and calls onChange with each successful reload.
func NewWatcher(path string, onChange func(Labels), log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create label watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &Watcher{
		path:     filepath.Clean(path),
		watcher:  fw,
		onChange: onChange,
		log:      log,
	}, nil
}

// Run processes events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			labels, err := Load(w.path)
			if err != nil {
				w.log.Warn().Err(err).Msg("label reload failed")
				continue
			}
			if len(labels) == 0 {
				// Caught between truncate and write.
				continue
			}
			w.log.Debug().Int("labels", len(labels)).Msg("labels reloaded")
			w.onChange(labels)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("label watcher error")
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
