// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package linkq provides linked, node-recycling lock-free FIFO queues.
//
// The package offers two queue variants built on a shared chain layout:
//
//   - MPSC: Multi-Producer Single-Consumer (wait-free dequeue, Rewind)
//   - MPMC: Multi-Producer Multi-Consumer (lock-free dequeue)
//
// Unlike ring-buffer queues, linkq queues are unbounded: the capacity
// argument seeds a pool of recyclable blocks, it does not cap the fill
// level. Enqueue never fails and allocates when the pool is dry;
// TryEnqueue refuses to allocate and reports backpressure instead.
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	q := linkq.NewMPSC[Event](linkq.DefaultCapacity)
//	q := linkq.NewMPMC[*Request](4096)
//
// Builder API auto-selects algorithm based on constraints:
//
//	q := linkq.Build[Event](linkq.New(1024).SingleConsumer()) // → MPSC
//	q := linkq.Build[Event](linkq.New(1024))                  // → MPMC
//
// # Basic Usage
//
// All queues share the same interface for enqueueing and dequeueing:
//
//	// Create a queue
//	q := linkq.NewMPMC[int](1024)
//
//	// Enqueue (never fails, may allocate)
//	value := 42
//	q.Enqueue(&value)
//
//	// TryEnqueue (non-blocking, bounded by the pool)
//	if err := q.TryEnqueue(&value); linkq.IsWouldBlock(err) {
//	    // Pool is dry - handle backpressure
//	}
//
//	// Dequeue (non-blocking)
//	elem, err := q.Dequeue()
//	if linkq.IsWouldBlock(err) {
//	    // Queue is empty - try again later
//	}
//
// # Common Patterns
//
// Event Aggregation (MPSC):
//
//	// Multiple event sources → Single processor
//	q := linkq.NewMPSC[Event](4096)
//
//	// Multiple producers (event sources)
//	for sensor := range slices.Values(sensors) {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            q.Enqueue(&ev)
//	        }
//	    }(sensor)
//	}
//
//	// Single consumer (aggregator)
//	go func() {
//	    backoff := iox.Backoff{}
//	    for {
//	        ev, err := q.Dequeue()
//	        if err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        aggregate(ev)
//	    }
//	}()
//
// Deferred Handling (MPSC + Rewind):
//
//	// The consumer claims an event, discovers it cannot be handled
//	// yet, and puts it back at the front of the line.
//	ev, err := q.Dequeue()
//	if err == nil && !ready(ev) {
//	    q.Rewind(&ev) // next Dequeue returns ev again
//	}
//
// Worker Pool (MPMC):
//
//	// Multiple submitters → Multiple workers
//	q := linkq.NewMPMC[Job](4096)
//
//	// Workers
//	for range numWorkers {
//	    go func() {
//	        backoff := iox.Backoff{}
//	        for {
//	            job, err := q.Dequeue()
//	            if err != nil {
//	                backoff.Wait()
//	                continue
//	            }
//	            backoff.Reset()
//	            job.Run()
//	        }
//	    }()
//	}
//
//	// Submit jobs from anywhere; never drops, never blocks
//	func Submit(j Job) {
//	    q.Enqueue(&j)
//	}
//
// # Block Recycling
//
// Both queues keep their storage in circulation through [FreeList], a
// lock-free stack of recyclable blocks. A dequeued block returns to
// the pool and is handed to a later enqueue, so a queue in steady
// state allocates nothing regardless of throughput.
//
// Reclamation is guarded by per-block reference counts: a consumer
// that must follow the sentinel's next link first takes a transient
// reference, which defers the block's return to the pool until the
// last holder lets go. A count observed at zero marks a ghost block
// mid-recycle and is never raised again before re-publication. This
// yields hazard-pointer-grade safety for the one hot slot that needs
// it, at the cost of one CAS per dequeue.
//
// FreeList is exported and usable on its own as an allocation-free
// node pool; embed [Node] as the first field of the pooled type.
//
// # Capacity
//
// The capacity argument is a pool seed, not a limit:
//
//	q := linkq.NewMPMC[int](2)
//	q.TryEnqueue(&a) // ok, pool block
//	q.TryEnqueue(&b) // ok, pool block
//	q.TryEnqueue(&c) // ErrWouldBlock, pool dry
//	q.Enqueue(&c)    // ok, allocates a third block
//
// Dequeues feed blocks back to the pool, so a TryEnqueue that failed
// can succeed after any Dequeue completes. Capacity 0 is valid and
// defers all storage to Enqueue-time allocation. [DefaultCapacity]
// (65536) suits long-lived event-loop mailboxes.
//
// Length is intentionally not provided because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Track counts in application logic when needed.
//
// # Error Handling
//
// Queues return [ErrWouldBlock] when operations cannot proceed. This
// error is sourced from [code.hybscloud.com/iox] for ecosystem
// consistency.
//
//	// Retry loop with backoff
//	backoff := iox.Backoff{}
//	for {
//	    err := q.TryEnqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !linkq.IsWouldBlock(err) {
//	        return err // Unexpected error
//	    }
//	    backoff.Wait()
//	}
//
// For semantic error classification (delegates to iox):
//
//	linkq.IsWouldBlock(err)  // true if pool dry/queue empty
//	linkq.IsSemantic(err)    // true if control flow signal
//	linkq.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// # Thread Safety
//
// All queue operations are thread-safe within their access pattern
// constraints:
//
//   - MPSC: Multiple producer goroutines, one consumer goroutine.
//     Rewind belongs to the consumer goroutine only.
//   - MPMC: Multiple producer and consumer goroutines.
//
// Violating these constraints (e.g., two consumers on MPSC) causes
// undefined behavior including data corruption and lost elements.
//
// Ordering: elements from a single producer dequeue in their enqueue
// order; interleaving across producers is arbitrary. The queues are
// linearizable at the tail swap (enqueue) and the head advance
// (dequeue).
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm
// verification. The race detector tracks explicit synchronization
// primitives (mutex, channels, WaitGroup) but cannot observe
// happens-before relationships established through atomic memory
// orderings on separate variables, such as the reference counts that
// guard block recycling here.
//
// Tests incompatible with race detection are excluded via
// //go:build !race or skip themselves when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic counters with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions.
package linkq
