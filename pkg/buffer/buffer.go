// Package buffer provides a small blocking FIFO used to decouple a
// synchronous stream-processing loop from slower consumers such as a
// terminal progress printer.
package buffer

import (
	"errors"
	"io"
	"sync"
)

// ErrClosed is returned by Add after the queue is closed for writing.
var ErrClosed = errors.New("buffer: closed")

// Queue is a thread-safe unbounded FIFO. Next blocks while the queue is
// empty; CloseWrite lets readers drain what remains and then receive
// io.EOF. CloseWithError tears both ends down immediately.
type Queue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond

	items    []T
	closed   bool
	closeErr error
}

// New creates a Queue with capacity hint n.
func New[T any](n int) *Queue[T] {
	q := &Queue[T]{items: make([]T, 0, n)}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Add appends one item and wakes a blocked reader.
func (q *Queue[T]) Add(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		if q.closeErr != nil {
			return q.closeErr
		}
		return ErrClosed
	}
	q.items = append(q.items, v)
	q.notEmpty.Signal()
	return nil
}

// Next returns the oldest item, blocking while the queue is empty. After
// CloseWrite it keeps returning buffered items and then io.EOF; after
// CloseWithError it returns that error once the buffer is drained.
func (q *Queue[T]) Next() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	var zero T
	if len(q.items) == 0 {
		if q.closeErr != nil {
			return zero, q.closeErr
		}
		return zero, io.EOF
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, nil
}

// Len returns the number of buffered items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// CloseWrite stops accepting items; readers drain the rest, then get
// io.EOF.
func (q *Queue[T]) CloseWrite() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.notEmpty.Broadcast()
}

// CloseWithError stops accepting items and discards anything buffered;
// readers get err immediately.
func (q *Queue[T]) CloseWithError(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.closeErr = err
	q.items = nil
	q.notEmpty.Broadcast()
}
