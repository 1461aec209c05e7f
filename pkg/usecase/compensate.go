package usecase

import "context"

// rollback collects undo actions for side effects already produced by a
// multi-step operation. Each step registers its undo right after committing
// its side effect; if a later step fails, the deferred unwind runs the undo
// actions in reverse order. Reaching the point of no return (a successful
// ledger commit) releases the guard so nothing is undone.
type rollback struct {
	actions []func(ctx context.Context)
}

func newRollback() *rollback {
	return &rollback{}
}

func (x *rollback) add(action func(ctx context.Context)) {
	x.actions = append(x.actions, action)
}

// release disarms the guard. Call it once the operation's outcome is durable.
func (x *rollback) release() {
	x.actions = nil
}

// unwind runs the registered undo actions in reverse order. Safe to call via
// defer on every exit path; it is a no-op after release.
func (x *rollback) unwind(ctx context.Context) {
	for i := len(x.actions) - 1; i >= 0; i-- {
		x.actions[i](ctx)
	}
	x.actions = nil
}
