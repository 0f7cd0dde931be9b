package luajs

import (
	"context"
	"sync"

	"github.com/Otixa/luajs/engine"
)

// Future is the eventual result of an asynchronous execution. It settles
// exactly once, with a value or an error.
type Future struct {
	done  chan struct{}
	once  sync.Once
	value engine.Value
	err   error

	mu        sync.Mutex
	callbacks []func(engine.Value, error)
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// settle records the outcome and runs registered callbacks. Only the first
// call has any effect.
func (f *Future) settle(v engine.Value, err error) {
	f.once.Do(func() {
		f.mu.Lock()
		f.value, f.err = v, err
		callbacks := f.callbacks
		f.callbacks = nil
		close(f.done)
		f.mu.Unlock()

		for _, fn := range callbacks {
			go fn(v, err)
		}
	})
}

// Done returns a channel closed once the future has settled.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future settles or ctx is done. A cancelled ctx only
// abandons the wait; the execution itself still runs to completion.
func (f *Future) Await(ctx context.Context) (engine.Value, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Wait blocks until the future settles.
func (f *Future) Wait() (engine.Value, error) {
	<-f.done
	return f.value, f.err
}

// Then registers fn to run on its own goroutine once the future settles.
// If it has already settled, fn is scheduled immediately.
func (f *Future) Then(fn func(engine.Value, error)) {
	f.mu.Lock()
	select {
	case <-f.done:
		f.mu.Unlock()
		go fn(f.value, f.err)
		return
	default:
	}
	f.callbacks = append(f.callbacks, fn)
	f.mu.Unlock()
}
