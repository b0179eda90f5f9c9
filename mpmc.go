// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package linkq

import (
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/spin"
)

// MPMC is a linked multi-producer multi-consumer unbounded queue.
//
// Michael-Scott layout with a sentinel head: producers only touch tail,
// consumers only touch head, and the two meet through next links. Blocks
// are recycled through an embedded FreeList instead of being dropped to
// the garbage collector, so a steady-state queue allocates nothing.
//
// The capacity argument seeds the free pool; it is not a fill limit.
// Enqueue grows the pool on demand and never fails, TryEnqueue refuses
// to grow and reports ErrWouldBlock when the pool is dry. Dequeue is
// lock-free: a consumer takes a transient reference on the sentinel
// through the FreeList before following its next link, which keeps a
// competing consumer from recycling the sentinel under its feet.
//
// Memory: one block per pooled or in-flight element, plus the sentinel.
type MPMC[T any] struct {
	blks     FreeList
	head     atomic.Pointer[block[T]]
	_        padPtr
	tail     atomic.Pointer[block[T]]
	_        padPtr
	capacity int
}

// block extends Node with element storage and a queue-chain link.
// The chain link is distinct from the Node's free-stack link; each is
// meaningful only in the state where the other is garbage.
type block[T any] struct {
	Node // must stay first: *Node and *block alias the same address
	elem T
	next atomic.Pointer[block[T]]
}

func newBlock[T any]() *block[T] {
	b := &block[T]{}
	b.refcnt.StoreRelaxed(1)
	return b
}

// blockOf recovers a block from its embedded Node.
func blockOf[T any](n *Node) *block[T] {
	return (*block[T])(unsafe.Pointer(n))
}

// NewMPMC creates a linked MPMC queue with capacity pre-pooled blocks.
// Capacity 0 is valid and makes the queue allocate per enqueue until
// dequeues feed the pool. Panics if capacity is negative.
func NewMPMC[T any](capacity int) *MPMC[T] {
	q := &MPMC[T]{}
	q.init(capacity)
	return q
}

func (q *MPMC[T]) init(capacity int) {
	if capacity < 0 {
		panic("linkq: negative capacity")
	}
	q.capacity = capacity
	sentinel := newBlock[T]()
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	for range capacity {
		q.blks.Push(&newBlock[T]().Node)
	}
}

// enqueue splices nblk carrying *elem behind the current tail.
// The tail swap is the linearization point; between the swap and the
// next store the chain is transiently disconnected, which consumers
// observe as an empty next link on the old tail.
func (q *MPMC[T]) enqueue(nblk *block[T], elem *T) {
	nblk.elem = *elem
	nblk.next.Store(nil)
	prev := q.tail.Swap(nblk)
	prev.next.Store(nblk)
}

// Enqueue adds an element to the queue (multiple producers safe).
// Always succeeds: when the free pool is dry a fresh block is allocated
// and joins the pool's circulation once its element is consumed.
func (q *MPMC[T]) Enqueue(elem *T) error {
	var nblk *block[T]
	if n, err := q.blks.Pop(); err == nil {
		nblk = blockOf[T](n)
	} else {
		nblk = newBlock[T]()
	}
	q.enqueue(nblk, elem)
	return nil
}

// TryEnqueue adds an element without growing the pool.
// Returns ErrWouldBlock when no pooled block is available; this is the
// queue's only backpressure signal.
func (q *MPMC[T]) TryEnqueue(elem *T) error {
	n, err := q.blks.Pop()
	if err != nil {
		return err
	}
	q.enqueue(blockOf[T](n), elem)
	return nil
}

// Dequeue removes and returns an element (multiple consumers safe).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPMC[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		h := q.head.Load()
		t := h.refcnt.LoadRelaxed()
		if t == 0 {
			// The sentinel is a ghost mid-recycle; its replacement is
			// about to become visible through head.
			sw.Once()
			continue
		}
		if !h.refcnt.CompareAndSwapRelaxed(t, t+1) {
			sw.Once()
			continue
		}
		// Reference held: h cannot be recycled while we follow next.
		nh := h.next.Load()
		if nh == nil {
			q.blks.ReleaseRef(&h.Node)
			var zero T
			return zero, ErrWouldBlock
		}
		elem := nh.elem
		if q.head.CompareAndSwap(h, nh) {
			// h is off the chain. Two references die here: the ticket
			// taken above and the chain's structural one. The final
			// owner of h (possibly a slower ticket holder) re-pools it.
			var zero T
			h.elem = zero
			q.blks.ReleaseRef(&h.Node)
			q.blks.Push(&h.Node)
			return elem, nil
		}
		// Another consumer advanced head first.
		q.blks.ReleaseRef(&h.Node)
		sw.Once()
	}
}

// Cap returns the free-pool seed the queue was created with.
// It is neither a limit on the queue length nor a fixed bound on
// TryEnqueue: blocks allocated by Enqueue join the pool once recycled,
// so the pool can grow past this seed.
func (q *MPMC[T]) Cap() int {
	return q.capacity
}
