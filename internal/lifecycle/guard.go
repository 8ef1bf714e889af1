// Package lifecycle provides the single-flight gate that keeps at most one
// capture loop running per event category.
package lifecycle

import (
	"errors"
	"sync/atomic"
)

// ErrAlreadyActive matches the error Begin returns while a loop holds the guard.
var ErrAlreadyActive = errors.New("already active")

// ActiveError names the category that refused admission.
type ActiveError struct {
	Category string
}

func (e *ActiveError) Error() string {
	return e.Category + " is already listening"
}

// Is makes errors.Is(err, ErrAlreadyActive) hold.
func (e *ActiveError) Is(target error) bool {
	return target == ErrAlreadyActive
}

const runningBit = 1

// Guard is an {Idle, Running} state machine. The low bit of state is the
// running flag and the remaining bits count admissions, so every transition is
// a single compare-and-set on one word.
type Guard struct {
	name  string
	state atomic.Uint64
}

// Ticket identifies one admitted loop.
type Ticket struct {
	guard *Guard
	gen   uint64
}

// New returns an idle guard for the named category.
func New(name string) *Guard {
	return &Guard{name: name}
}

// Name returns the category name.
func (g *Guard) Name() string {
	return g.name
}

// Begin admits the caller if the guard is idle.
func (g *Guard) Begin() (Ticket, error) {
	for {
		cur := g.state.Load()
		if cur&runningBit != 0 {
			return Ticket{}, &ActiveError{Category: g.name}
		}
		gen := cur>>1 + 1
		if g.state.CompareAndSwap(cur, gen<<1|runningBit) {
			return Ticket{guard: g, gen: gen}, nil
		}
	}
}

// End returns the guard to idle. It reports whether the guard was running.
func (g *Guard) End() bool {
	for {
		cur := g.state.Load()
		if cur&runningBit == 0 {
			return false
		}
		if g.state.CompareAndSwap(cur, cur&^runningBit) {
			return true
		}
	}
}

// Running reports whether a loop currently holds the guard.
func (g *Guard) Running() bool {
	return g.state.Load()&runningBit != 0
}

// Active reports whether the ticket's admission is still the current one.
// It turns false after End, and stays false even if a later Begin admits
// another loop.
func (t Ticket) Active() bool {
	if t.guard == nil {
		return false
	}
	cur := t.guard.state.Load()
	return cur&runningBit != 0 && cur>>1 == t.gen
}

// Release ends the guard only if this ticket still owns it.
func (t Ticket) Release() bool {
	if t.guard == nil {
		return false
	}
	owned := t.gen<<1 | runningBit
	return t.guard.state.CompareAndSwap(owned, owned&^runningBit)
}
