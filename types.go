// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package linkq

// Queue is the combined producer-consumer interface for a linked FIFO
// queue.
//
// Queue provides non-blocking operations throughout. Dequeue returns
// ErrWouldBlock when the queue is empty; TryEnqueue returns
// ErrWouldBlock when the free pool is dry. Enqueue never fails.
//
// The interface intentionally excludes length because accurate counts
// in lock-free algorithms require expensive cross-core
// synchronization. Track counts in application logic when needed.
//
// Example:
//
//	q := linkq.NewMPMC[int](1024)
//
//	val := 42
//	q.Enqueue(&val) // always succeeds, may allocate
//
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after the call returns.
//
// Multiple goroutines may produce concurrently on all queue types in
// this package.
type Producer[T any] interface {
	// Enqueue adds an element to the queue. It never fails: when the
	// free pool is dry a fresh block is allocated. Returns nil.
	Enqueue(elem *T) error

	// TryEnqueue adds an element only if a pooled block is available.
	// Returns nil on success, ErrWouldBlock when the pool is dry.
	// This is the queue's backpressure signal: the pool refills as
	// consumers dequeue.
	TryEnqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value, copied out of the queue's block.
// Recycled blocks are cleared so consumed values do not pin heap
// objects.
//
// Thread safety depends on queue type:
//   - MPSC: single consumer only
//   - MPMC: multiple consumers safe
type Consumer[T any] interface {
	// Dequeue removes and returns an element from the queue.
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	Dequeue() (T, error)
}

// Rewinder pushes an element back to the front of a queue.
//
// Only MPSC implements Rewinder: push-front is safe solely under the
// single-consumer contract, and only from the consumer goroutine. Use
// a type assertion to discover support:
//
//	if r, ok := q.(linkq.Rewinder[Event]); ok {
//	    r.Rewind(&ev) // next Dequeue returns ev
//	}
//
// Rewind is the undo of a Dequeue: a consumer that claimed an element
// it cannot process yet puts it back without losing its position at
// the head of the line.
type Rewinder[T any] interface {
	// Rewind prepends an element so the next Dequeue returns it.
	// Never fails (may allocate). Must not run concurrently with
	// Dequeue.
	Rewind(elem *T) error
}
