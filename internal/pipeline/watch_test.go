package pipeline

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesBursts(t *testing.T) {
	calls := make(chan string, 8)
	deb := newDebouncer(20*time.Millisecond, func(path string) { calls <- path })
	defer deb.Stop()

	for i := 0; i < 5; i++ {
		deb.Touch("a.pdf")
	}

	select {
	case path := <-calls:
		if path != "a.pdf" {
			t.Errorf("fired for %q", path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debounced path never fired")
	}
	select {
	case <-calls:
		t.Error("burst of events fired more than once")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_ForgetsFiredPaths(t *testing.T) {
	calls := make(chan string, 8)
	deb := newDebouncer(10*time.Millisecond, func(path string) { calls <- path })
	defer deb.Stop()

	deb.Touch("a.pdf")
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("first touch never fired")
	}

	deb.mu.Lock()
	n := len(deb.pending)
	deb.mu.Unlock()
	if n != 0 {
		t.Errorf("%d pending entries after firing, expected 0", n)
	}

	// The same file written again later is a fresh event.
	deb.Touch("a.pdf")
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("second touch never fired")
	}
}

func TestDebouncer_StopSuppressesPending(t *testing.T) {
	var fired atomic.Int32
	deb := newDebouncer(20*time.Millisecond, func(string) { fired.Add(1) })

	deb.Touch("a.pdf")
	deb.Touch("b.pdf")
	deb.Stop()

	time.Sleep(100 * time.Millisecond)
	if n := fired.Load(); n != 0 {
		t.Errorf("%d paths fired after Stop", n)
	}
	// Touch after Stop is a no-op, not a panic.
	deb.Touch("c.pdf")
	time.Sleep(50 * time.Millisecond)
	if n := fired.Load(); n != 0 {
		t.Errorf("%d paths fired after Stop", n)
	}
}
