// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// Benchmarks exercise concurrent paths that trigger race detector
// false positives; excluded from race builds.

package linkq_test

import (
	"testing"

	"code.hybscloud.com/linkq"
)

// =============================================================================
// Single-Op Baselines
// =============================================================================

func BenchmarkMPMC_SingleOp(b *testing.B) {
	q := linkq.NewMPMC[int](1024)

	b.ResetTimer()
	for i := range b.N {
		v := i
		q.Enqueue(&v)
		q.Dequeue()
	}
}

func BenchmarkMPSC_SingleOp(b *testing.B) {
	q := linkq.NewMPSC[int](1024)

	b.ResetTimer()
	for i := range b.N {
		v := i
		q.Enqueue(&v)
		q.Dequeue()
	}
}

func BenchmarkMPSC_Rewind(b *testing.B) {
	q := linkq.NewMPSC[int](1024)

	b.ResetTimer()
	for i := range b.N {
		v := i
		q.Rewind(&v)
		q.Dequeue()
	}
}

func BenchmarkFreeList_SingleOp(b *testing.B) {
	var fl linkq.FreeList
	fl.Push(linkq.NewNode())

	b.ResetTimer()
	for range b.N {
		n, err := fl.Pop()
		if err != nil {
			b.Fatal(err)
		}
		fl.Push(n)
	}
}

// =============================================================================
// Contended Paths
// =============================================================================

func BenchmarkMPMC_Parallel(b *testing.B) {
	q := linkq.NewMPMC[int](4096)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		v := 7
		for pb.Next() {
			q.Enqueue(&v)
			q.Dequeue()
		}
	})
}

func BenchmarkFreeList_Parallel(b *testing.B) {
	var fl linkq.FreeList
	for range 4096 {
		fl.Push(linkq.NewNode())
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			n, err := fl.Pop()
			if err != nil {
				continue
			}
			fl.Push(n)
		}
	})
}
