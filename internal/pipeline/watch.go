package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay gives the producing process time to finish writing a PDF
// before we open it; fsnotify fires on create, not on close.
const settleDelay = 500 * time.Millisecond

// debouncer coalesces event bursts per path and runs fn once a path has
// gone quiet for the configured delay. A copy emits many write events;
// each Touch re-arms that path's timer.
type debouncer struct {
	delay time.Duration
	fn    func(string)

	mu      sync.Mutex
	stopped bool
	pending map[string]*time.Timer
}

func newDebouncer(delay time.Duration, fn func(string)) *debouncer {
	return &debouncer{delay: delay, fn: fn, pending: make(map[string]*time.Timer)}
}

func (d *debouncer) Touch(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if t, ok := d.pending[path]; ok {
		t.Reset(d.delay)
		return
	}
	d.pending[path] = time.AfterFunc(d.delay, func() { d.fire(path) })
}

func (d *debouncer) fire(path string) {
	d.mu.Lock()
	delete(d.pending, path)
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()
	d.fn(path)
}

// Stop cancels all pending timers and suppresses timers that have already
// fired but not yet run fn.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for _, t := range d.pending {
		t.Stop()
	}
	d.pending = nil
}

// Watch processes PDFs as they appear in the input directory, until the
// context is cancelled. Files already present at startup are processed
// first so a restart never strands a backlog.
func (r *Runner) Watch(ctx context.Context) error {
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(r.cfg.InputDir); err != nil {
		return fmt.Errorf("watch %s: %w", r.cfg.InputDir, err)
	}

	// Drain the backlog before reacting to events.
	if files, err := discover(r.cfg.InputDir); err == nil {
		for _, path := range files {
			r.ProcessFile(path)
		}
	}

	deb := newDebouncer(settleDelay, r.ProcessFile)
	defer deb.Stop()

	r.log.Info("watching for PDFs", "dir", r.cfg.InputDir)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".pdf") {
				continue
			}
			deb.Touch(ev.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Error("watch error", "error", err)
		}
	}
}
