package session

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the freshly loaded record whenever the session
// file at storage's path is written, replaced or removed. It blocks until
// ctx is done. The parent directory is watched because Save replaces the
// file by rename. Watcher errors (such as an event queue overflow) go to
// onError, when non-nil, and watching continues.
func Watch(ctx context.Context, storage *FileStorage, onChange func(Record), onError func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("session.Watch: %w", err)
	}
	defer w.Close() //nolint:errcheck

	if err := w.Add(filepath.Dir(storage.Path())); err != nil {
		return fmt.Errorf("session.Watch: add %s: %w", filepath.Dir(storage.Path()), err)
	}
	watchLoop(ctx, storage, w.Events, w.Errors, onChange, onError)
	return nil
}

func watchLoop(ctx context.Context, storage *FileStorage, events <-chan fsnotify.Event, errs <-chan error, onChange func(Record), onError func(error)) {
	target := filepath.Clean(storage.Path())
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			r, err := storage.Load()
			if err != nil {
				continue
			}
			onChange(r)
		case err, ok := <-errs:
			if !ok {
				return
			}
			if onError != nil {
				onError(fmt.Errorf("session.Watch: %w", err))
			}
		}
	}
}
