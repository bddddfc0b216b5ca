package native

import (
	"fmt"
	"sync"

	"marketwire/internal/sink"
	"marketwire/pkg/exception"
)

// State tracks the lifecycle of one guarded foreign resource.
type State uint32

const (
	StateUninitialized State = iota
	StateHealthy
	StateFaulted
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateHealthy:
		return "Healthy"
	case StateFaulted:
		return "Faulted"
	case StateDisposed:
		return "Disposed"
	default:
		return "Uninitialized"
	}
}

// Guard wraps every call that crosses into a foreign resource. It serializes
// calls (one in flight per guard), converts an intercepted catastrophic
// failure into ErrForeignCallFailure, and poisons the guard one-way:
//
//	Healthy --success--> Healthy
//	Healthy --catastrophic failure--> Faulted
//	Faulted --any call--> Faulted (foreign resource never touched again)
//	Healthy|Faulted --dispose--> Disposed
//
// The triggering conditions of a catastrophic failure are not reproducible
// call by call, so no call is assumed safe: every crossing is guarded the
// same way, and a fault is never selectively undone. Two guards share no
// state; a fault in one never affects the other.
type Guard struct {
	mu    sync.Mutex
	state State
	sink  sink.Sink
}

// NewGuard creates a Healthy guard. A nil sink is replaced by the default
// sink, never by a no-op.
func NewGuard(s sink.Sink) *Guard {
	return &Guard{
		state: StateHealthy,
		sink:  sink.OrDefault(s),
	}
}

// State returns the current lifecycle state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Do runs op while holding the guard's single call slot. On a Faulted or
// Disposed guard it returns immediately without attempting the call.
func (g *Guard) Do(op func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case StateFaulted:
		return exception.ErrClientFaulted
	case StateDisposed:
		return exception.ErrClientDisposed
	case StateHealthy:
	default:
		return exception.ErrNilInstance
	}
	return g.run(op)
}

// run executes op and intercepts a catastrophic failure. Must be called
// with the lock held and the state Healthy.
func (g *Guard) run(op func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			g.state = StateFaulted
			g.sink.Emit(sink.LevelError,
				fmt.Sprintf("catastrophic foreign failure intercepted, handle is faulted: %v", r))
			err = fmt.Errorf("%v: %w", r, exception.ErrForeignCallFailure)
		}
	}()
	return op()
}

// Dispose releases the foreign resource and moves the guard to Disposed.
// Legal from Healthy and Faulted; repeat disposal is a no-op. A failure
// during release is reported to the sink and otherwise ignored, matching
// the best-effort nature of teardown.
func (g *Guard) Dispose(release func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateDisposed {
		return
	}
	prev := g.state
	g.state = StateDisposed
	if release == nil || prev != StateHealthy {
		// A Faulted resource's internal invariants are untrustworthy;
		// it is abandoned rather than released.
		return
	}
	defer func() {
		if r := recover(); r != nil {
			g.sink.Emit(sink.LevelWarning, fmt.Sprintf("failure during dispose ignored: %v", r))
		}
	}()
	release()
}
