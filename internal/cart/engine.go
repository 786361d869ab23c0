package cart

import (
	"sync"
	"sync/atomic"
)

// Engine holds one cart and serializes its mutations. Snapshot is lock-free and
// always returns a complete state, either the one before or the one after an
// in-flight action.
type Engine struct {
	mu    sync.Mutex
	state atomic.Pointer[State]
}

// NewEngine returns an engine seeded with initial.
func NewEngine(initial State) *Engine {
	e := &Engine{}
	if initial.Items == nil {
		initial.Items = []Line{}
	}
	e.state.Store(&initial)
	return e
}

// Snapshot returns a copy of the current state. Writes to the copy never reach
// the engine.
func (e *Engine) Snapshot() State {
	return e.state.Load().clone()
}

// Dispatch applies action and returns the new state.
func (e *Engine) Dispatch(action Action) State {
	next, _ := e.Apply(action, nil)
	return next
}

// Apply reduces action against the current state and calls commit with the
// result before publishing it. Both commit and the caller receive copies. If commit fails the engine keeps the previous
// state and the error is returned along with that previous state.
// Snapshot called from inside commit still returns the state being replaced.
func (e *Engine) Apply(action Action, commit func(State) error) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.state.Load()
	next := Reduce(*prev, action)
	if commit != nil {
		if err := commit(next.clone()); err != nil {
			return prev.clone(), err
		}
	}
	e.state.Store(&next)
	return next.clone(), nil
}
