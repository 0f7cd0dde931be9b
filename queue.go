package luajs

import (
	"sync"

	"github.com/Otixa/luajs/engine"
)

// task is one request against a State's context.
type task struct {
	id     string
	kind   string
	label  string
	run    func(engine.Context) (engine.Value, error)
	future *Future

	// owner keeps the State reachable until the task settles.
	owner *State
}

// queue is an unbounded FIFO of tasks with a single consumer. Producers
// never block.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []*task
	closed bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends t. It reports false if the queue is closed.
func (q *queue) push(t *task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.tasks = append(q.tasks, t)
	q.cond.Signal()
	return true
}

// pop blocks until a task is available. It reports false once the queue is
// closed.
func (q *queue) pop() (*task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.tasks) == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed {
		return nil, false
	}
	t := q.tasks[0]
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	return t, true
}

// close stops the queue and returns the tasks that were never started.
func (q *queue) close() []*task {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	pending := q.tasks
	q.tasks = nil
	q.cond.Broadcast()
	return pending
}
