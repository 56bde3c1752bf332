package client

import (
	"context"
	"sync"
	"time"
)

// DefaultAutosaveDelay is the quiet period after the last edit before a
// save fires.
const DefaultAutosaveDelay = 2000 * time.Millisecond

// SaveFunc persists the given form. It receives the latest state at the
// moment the quiet period elapses.
type SaveFunc func(ctx context.Context, form NoteForm) error

// Autosaver debounces note edits: every Set restarts the quiet-period
// timer, and when the timer finally fires, exactly one save runs with the
// most recent state. Overlapping edits during a save queue a follow-up.
type Autosaver struct {
	delay time.Duration
	save  SaveFunc

	// OnStateChange, if set, is invoked with true when a save starts and
	// false when it finishes. OnError, if set, receives save failures.
	OnStateChange func(saving bool)
	OnError       func(err error)

	mu      sync.Mutex
	timer   *time.Timer
	pending *NoteForm
	saving  bool
	dirty   bool
	closed  bool
	inFly   sync.WaitGroup
}

// NewAutosaver constructs a debouncer around save. A delay of zero uses
// DefaultAutosaveDelay.
func NewAutosaver(delay time.Duration, save SaveFunc) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{delay: delay, save: save}
}

// Set records the latest editor state and restarts the quiet-period timer.
func (a *Autosaver) Set(form NoteForm) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.pending = &form
	if a.saving {
		// A save is running; remember that newer state arrived so a
		// follow-up fires once it completes.
		a.dirty = true
		return
	}
	if a.timer == nil {
		a.timer = time.AfterFunc(a.delay, a.fire)
	} else {
		a.timer.Reset(a.delay)
	}
}

// Flush saves immediately if edits are pending, bypassing the timer. A
// no-op after Close.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.mu.Unlock()
	a.fire()
	a.inFly.Wait()
}

// Close discards pending edits, stops the timer and waits for any
// in-flight save. Further Set calls are ignored. A fired timer still
// queued behind the mutex finds no pending state and does nothing.
func (a *Autosaver) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
	}
	a.mu.Unlock()
	a.inFly.Wait()
}

func (a *Autosaver) fire() {
	a.mu.Lock()
	if a.closed || a.saving || a.pending == nil {
		a.mu.Unlock()
		return
	}
	form := *a.pending
	a.pending = nil
	a.dirty = false
	a.saving = true
	a.inFly.Add(1)
	a.mu.Unlock()

	go a.run(form)
}

func (a *Autosaver) run(form NoteForm) {
	defer a.inFly.Done()
	if a.OnStateChange != nil {
		a.OnStateChange(true)
	}
	err := a.save(context.Background(), form)
	if err != nil && a.OnError != nil {
		a.OnError(err)
	}
	if a.OnStateChange != nil {
		a.OnStateChange(false)
	}

	a.mu.Lock()
	a.saving = false
	rearm := a.dirty && a.pending != nil && !a.closed
	if rearm {
		if a.timer == nil {
			a.timer = time.AfterFunc(a.delay, a.fire)
		} else {
			a.timer.Reset(a.delay)
		}
	}
	a.mu.Unlock()
}
