// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package linkq

// MPSC is a linked multi-producer single-consumer unbounded queue.
//
// MPSC shares the MPMC chain and free pool but exploits the
// single-consumer contract on the dequeue side: head is advanced with
// plain loads and stores, no CAS and no reference counting, making
// Dequeue wait-free. The contract also enables Rewind, a push-front
// reserved for the owning consumer.
//
// Multiple goroutines may enqueue; exactly one goroutine may call
// Dequeue and Rewind. Violating the contract corrupts the chain.
type MPSC[T any] struct {
	MPMC[T]
}

// NewMPSC creates a linked MPSC queue with capacity pre-pooled blocks.
// Capacity 0 is valid; panics if capacity is negative.
func NewMPSC[T any](capacity int) *MPSC[T] {
	q := &MPSC[T]{}
	q.init(capacity)
	return q
}

// Dequeue removes and returns an element (single consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPSC[T]) Dequeue() (T, error) {
	h := q.head.Load()
	nh := h.next.Load()
	if nh == nil {
		var zero T
		return zero, ErrWouldBlock
	}
	elem := nh.elem
	// nh becomes the new sentinel; clear its slot so the consumed
	// value does not pin heap objects until the block recycles.
	var zero T
	nh.elem = zero
	q.head.Store(nh)
	q.blks.Push(&h.Node)
	return elem, nil
}

// Rewind pushes an element back to the front of the queue.
//
// The current sentinel takes the payload and a fresh block is
// prepended as the new sentinel, so the element is returned by the
// very next Dequeue. Always succeeds (may allocate when the pool is
// dry). Only the consumer goroutine may call Rewind; it must not run
// concurrently with Dequeue.
func (q *MPSC[T]) Rewind(elem *T) error {
	var nblk *block[T]
	if n, err := q.blks.Pop(); err == nil {
		nblk = blockOf[T](n)
	} else {
		nblk = newBlock[T]()
	}
	h := q.head.Load()
	h.elem = *elem
	nblk.next.Store(h)
	q.head.Store(nblk)
	return nil
}
