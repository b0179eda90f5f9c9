// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package linkq

import "unsafe"

// DefaultCapacity is a free-pool seed suited to event-loop mailboxes.
// Constructors and New always take the seed explicitly; none of them
// applies DefaultCapacity on its own.
const DefaultCapacity = 65536

// Options configures queue creation and algorithm selection.
type Options struct {
	// Consumer constraint (determines queue type)
	singleConsumer bool

	// Free-pool seed (not a fill limit)
	capacity int
}

// Builder creates queues with fluent configuration.
//
// The builder selects the dequeue algorithm from the consumer
// constraint: a declared single consumer gets the wait-free MPSC head
// advance and the Rewind operation, everything else gets the
// reference-counted MPMC dequeue.
//
// Example:
//
//	// MPSC mailbox for an event loop
//	q := linkq.BuildMPSC[Event](linkq.New(linkq.DefaultCapacity).SingleConsumer())
//
//	// MPMC work queue
//	q := linkq.BuildMPMC[Request](linkq.New(4096))
type Builder struct {
	opts Options
}

// New creates a queue builder with the given free-pool seed.
//
// The seed bounds TryEnqueue only; Enqueue grows the pool on demand.
// Zero is valid (pure allocate-on-demand). Panics if capacity is
// negative.
func New(capacity int) *Builder {
	if capacity < 0 {
		panic("linkq: negative capacity")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleConsumer declares that only one goroutine will dequeue.
// Enables the wait-free MPSC dequeue and the Rewind operation.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Build creates a Queue[T] with automatic algorithm selection.
//
// Algorithm selection:
//
//	SingleConsumer → MPSC (wait-free dequeue, Rewind via type assertion)
//	otherwise      → MPMC (reference-counted lock-free dequeue)
//
// For type-safe returns with concrete types, use:
//   - BuildMPSC[T](b) → *MPSC[T]
//   - BuildMPMC[T](b) → *MPMC[T]
func Build[T any](b *Builder) Queue[T] {
	if b.opts.singleConsumer {
		return NewMPSC[T](b.opts.capacity)
	}
	return NewMPMC[T](b.opts.capacity)
}

// BuildMPSC creates an MPSC queue with compile-time type safety.
// The concrete type exposes Rewind without a type assertion.
// Panics if builder is not configured with SingleConsumer().
func BuildMPSC[T any](b *Builder) *MPSC[T] {
	if !b.opts.singleConsumer {
		panic("linkq: BuildMPSC requires SingleConsumer()")
	}
	return NewMPSC[T](b.opts.capacity)
}

// BuildMPMC creates an MPMC queue with compile-time type safety.
// Panics if builder is configured with SingleConsumer().
func BuildMPMC[T any](b *Builder) *MPMC[T] {
	if b.opts.singleConsumer {
		panic("linkq: BuildMPMC requires no constraints")
	}
	return NewMPMC[T](b.opts.capacity)
}

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padPtr is padding to fill cache line after pointer-sized field.
type padPtr [64 - ptrSize]byte
