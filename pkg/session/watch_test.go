package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatchSeesExternalClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	fs := NewFileStorage(path)
	mustSet(t, NewStore(fs), "tok", time.Hour, "a@b.com")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Record, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, fs, func(r Record) { changes <- r }, nil)
	}()

	// Give the watcher time to register before mutating the file.
	time.Sleep(100 * time.Millisecond)
	if err := NewStore(NewFileStorage(path)).Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case r := <-changes:
			if r.Empty() {
				cancel()
				if err := <-done; err != nil {
					t.Errorf("Watch() error: %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatal("no empty record observed after external clear")
		}
	}
}

func TestWatchContinuesAfterWatcherError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	fs := NewFileStorage(path)
	mustSet(t, NewStore(fs), "tok", time.Hour, "a@b.com")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	changes := make(chan Record, 1)
	reported := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		watchLoop(ctx, fs, events, errs, func(r Record) { changes <- r }, func(err error) { reported <- err })
		close(done)
	}()

	errs <- fsnotify.ErrEventOverflow
	select {
	case err := <-reported:
		if !errors.Is(err, fsnotify.ErrEventOverflow) {
			t.Errorf("reported error = %v, want ErrEventOverflow", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watcher error was not reported")
	}

	if err := NewStore(fs).Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Remove}
	select {
	case r := <-changes:
		if !r.Empty() {
			t.Errorf("record = %+v, want empty after clear", r)
		}
	case <-time.After(time.Second):
		t.Fatal("no change delivered after a watcher error")
	}

	cancel()
	<-done
}
