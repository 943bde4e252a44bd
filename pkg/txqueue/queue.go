// Package txqueue hands outbound payloads from the owner to the radio worker.
package txqueue

import "sync"

// Queue is an unbounded FIFO of payloads. Enqueue may be called from any
// goroutine; TryDequeue is meant for the single radio worker.
//
// There is no backpressure: under a saturated or absent link the queue grows
// without limit.
type Queue struct {
	mu    sync.Mutex
	items [][]byte
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue appends payload to the tail. The queue keeps its own copy.
func (q *Queue) Enqueue(payload []byte) {
	p := append([]byte(nil), payload...)

	q.mu.Lock()
	q.items = append(q.items, p)
	q.mu.Unlock()
}

// TryDequeue removes and returns the head payload, or false if the queue is
// empty.
func (q *Queue) TryDequeue() ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}
	p := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return p, true
}

// Len returns the number of queued payloads.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
