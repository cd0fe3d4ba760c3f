// Package gesture tracks which parameters the user is currently editing.
//
// Each parameter is either Idle or Editing. Begin moves it to Editing and End
// back to Idle; repeating either is a no-op. While a parameter is Editing the
// user owns its value and host automation for it is discarded.
package gesture

import "sync/atomic"

// State is the gesture state of one parameter.
type State uint8

const (
	Idle State = iota
	Editing
)

// String returns the state name.
func (s State) String() string {
	if s == Editing {
		return "Editing"
	}
	return "Idle"
}

// Tracker holds the gesture state of a fixed number of parameters. It is
// written only by the flush coordinator on the processing context; the
// atomic flags let the control context observe it without a lock.
type Tracker struct {
	editing []atomic.Bool
}

// NewTracker creates a tracker for count parameters, all Idle.
func NewTracker(count int) *Tracker {
	return &Tracker{
		editing: make([]atomic.Bool, count),
	}
}

// Len returns the number of tracked parameters.
func (t *Tracker) Len() int {
	return len(t.editing)
}

// Begin marks id as Editing. It returns false for an unknown id.
func (t *Tracker) Begin(id uint32) bool {
	if id >= uint32(len(t.editing)) {
		return false
	}
	t.editing[id].Store(true)
	return true
}

// End marks id as Idle. It returns false for an unknown id.
func (t *Tracker) End(id uint32) bool {
	if id >= uint32(len(t.editing)) {
		return false
	}
	t.editing[id].Store(false)
	return true
}

// Editing reports whether id is in a gesture. Unknown ids are never editing.
func (t *Tracker) Editing(id uint32) bool {
	if id >= uint32(len(t.editing)) {
		return false
	}
	return t.editing[id].Load()
}

// State returns the state of id.
func (t *Tracker) State(id uint32) State {
	if t.Editing(id) {
		return Editing
	}
	return Idle
}

// Active returns how many parameters are Editing.
func (t *Tracker) Active() int {
	n := 0
	for i := range t.editing {
		if t.editing[i].Load() {
			n++
		}
	}
	return n
}

// Reset returns every parameter to Idle.
func (t *Tracker) Reset() {
	for i := range t.editing {
		t.editing[i].Store(false)
	}
}
