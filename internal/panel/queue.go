package panel

import "sync"

// Queue carries changes from front-end goroutines to the tick goroutine.
// Push never blocks; Drain hands back everything pushed since the last
// drain, in order.
type Queue struct {
	mu      sync.Mutex
	pending []Change
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(c Change) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, c)
}

func (q *Queue) Drain() []Change {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
