package kart

import (
	"sync"
	"time"
)

// Action is a bindable input action.
type Action int

const (
	ActionForward Action = iota
	ActionBackward
	ActionLeft
	ActionRight
	ActionSteal
)

func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionBackward:
		return "backward"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionSteal:
		return "steal"
	}
	return "unknown"
}

// Controls is one frame's worth of input as seen by the simulation.
// Steal is an edge: it is true on exactly one frame per key press.
type Controls struct {
	Forward, Backward, Left, Right bool
	Steal                          bool
}

// LatchState is the state of the edge-triggered steal button.
type LatchState int

const (
	// LatchIdle means the button is up; the next press fires.
	LatchIdle LatchState = iota
	// LatchArmed means the button is held; presses are ignored until release.
	LatchArmed
)

// Latch turns a held button into a single edge per press.
type Latch struct {
	state   LatchState
	pending bool
}

// Press records a key-down. It reports whether this press is a new edge.
func (l *Latch) Press() bool {
	if l.state == LatchArmed {
		return false
	}
	l.state = LatchArmed
	l.pending = true
	return true
}

// Release records a key-up.
func (l *Latch) Release() {
	l.state = LatchIdle
}

// State returns the latch state.
func (l *Latch) State() LatchState {
	return l.state
}

// Take drains the pending edge.
func (l *Latch) Take() bool {
	p := l.pending
	l.pending = false
	return p
}

// Input is the process-wide key state. Key events are delivered on the
// terminal's event goroutine while frames run on the main loop, so every
// access goes through the mutex and frames read a single Snapshot.
type Input struct {
	mu    sync.Mutex
	held  [4]bool
	seen  [4]time.Time
	steal Latch
	stamp time.Time
}

// NewInput returns an input with nothing held.
func NewInput() *Input {
	return &Input{}
}

// Press records a key-down (or an auto-repeat) for action at time now.
func (in *Input) Press(a Action, now time.Time) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if a == ActionSteal {
		in.steal.Press()
		in.stamp = now
		return
	}
	if a < 0 || int(a) >= len(in.held) {
		return
	}
	in.held[a] = true
	in.seen[a] = now
}

// Release records a key-up for action.
func (in *Input) Release(a Action) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if a == ActionSteal {
		in.steal.Release()
		return
	}
	if a < 0 || int(a) >= len(in.held) {
		return
	}
	in.held[a] = false
}

// Expire releases every action whose last press is older than hold.
// Most terminals never report key releases, only auto-repeated presses,
// so a key that stops repeating is treated as released.
func (in *Input) Expire(now time.Time, hold time.Duration) {
	in.mu.Lock()
	defer in.mu.Unlock()

	for i := range in.held {
		if in.held[i] && now.Sub(in.seen[i]) > hold {
			in.held[i] = false
		}
	}
	if in.steal.State() == LatchArmed && now.Sub(in.stamp) > hold {
		in.steal.Release()
	}
}

// Reset releases everything and drops any pending edge.
func (in *Input) Reset() {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.held = [4]bool{}
	in.steal = Latch{}
}

// Snapshot returns this frame's controls and consumes the pending steal edge.
func (in *Input) Snapshot() Controls {
	in.mu.Lock()
	defer in.mu.Unlock()

	return Controls{
		Forward:  in.held[ActionForward],
		Backward: in.held[ActionBackward],
		Left:     in.held[ActionLeft],
		Right:    in.held[ActionRight],
		Steal:    in.steal.Take(),
	}
}
