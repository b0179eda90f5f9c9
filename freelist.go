// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package linkq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Node is an intrusive element of a FreeList.
//
// A Node alternates between two states: resting on the free stack
// (refcnt == 1, next links the stack) and claimed by a user
// (refcnt >= 1, next is garbage). Embed Node as the first field of a
// larger struct to pool that struct through a FreeList.
//
// The zero Node is not pool-ready; use NewNode.
type Node struct {
	next   atomic.Pointer[Node] // free-stack link; garbage while claimed
	refcnt atomix.Int64
}

// NewNode returns a claimed Node carrying its own reference.
// Hand it to FreeList.Push to seed a pool.
func NewNode() *Node {
	n := &Node{}
	n.refcnt.StoreRelaxed(1)
	return n
}

// FreeList is a lock-free stack of recyclable Nodes.
//
// Beyond plain push/pop, FreeList implements a reference-count-based
// reclamation discipline: a reader that must follow a pointer out of a
// Node which other threads may concurrently recycle takes a transient
// reference with a CAS on refcnt, and drops it with ReleaseRef. The
// Node only returns to the stack once the last reference is gone, so
// no reader ever chases a link out of a reused Node.
//
// A refcnt observed at 0 is a ghost: the Node is between its final
// release and its re-publication. Ghosts must never be resurrected;
// the CAS-from-observed-value in Pop enforces that an increment can
// only start from a nonzero count.
type FreeList struct {
	_   pad
	top atomic.Pointer[Node]
	_   padPtr
}

// ReleaseRef drops one reference to u. When the last reference goes,
// u is published back onto the stack with its refcnt reset to 1.
func (l *FreeList) ReleaseRef(u *Node) {
	if u.refcnt.AddAcqRel(-1) != 0 {
		return
	}
	for {
		t := l.top.Load()
		// Repair the link before publishing: a stale value left from
		// the previous claim would truncate the stack.
		u.next.Store(t)
		if l.top.CompareAndSwap(t, u) {
			// ABA on top is harmless here: u itself cannot be raced
			// onto the stack twice because only the thread that saw
			// refcnt hit 0 may publish it.
			u.refcnt.StoreRelaxed(1)
			return
		}
	}
}

// Push returns u to the pool. Equivalent to ReleaseRef on a Node whose
// sole remaining reference is the caller's; named separately to express
// intent at call sites.
func (l *FreeList) Push(u *Node) {
	l.ReleaseRef(u)
}

// Pop claims the top Node and transfers its ownership to the caller.
// The returned Node is off the stack with refcnt == 1 and an
// indeterminate next link. Returns ErrWouldBlock when the stack is
// observed empty.
func (l *FreeList) Pop() (*Node, error) {
	sw := spin.Wait{}
	for {
		u := l.top.Load()
		if u == nil {
			return nil, ErrWouldBlock
		}
		t := u.refcnt.LoadRelaxed()
		if t == 0 {
			// u is a ghost mid-reclamation; wait for its re-publication.
			sw.Once()
			continue
		}
		if !u.refcnt.CompareAndSwapRelaxed(t, t+1) {
			sw.Once()
			continue
		}
		// Holding a reference: u cannot be recycled, and u.next is
		// stable because links are only written before publication.
		nv := u.next.Load()
		popped := l.top.CompareAndSwap(u, nv)
		// Drop the transient reference. For the winner this nets the
		// count back to 1 without re-publishing; u now belongs to the
		// caller. For a loser it undoes the ticket, possibly running
		// a republication another thread deferred to us.
		l.ReleaseRef(u)
		if popped {
			return u, nil
		}
		sw.Once()
	}
}
