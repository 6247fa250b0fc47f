package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	for _, items := range []int{0, 1, 7, 1000} {
		for _, workers := range []int{0, 1, 3, 64} {
			hits := make([]int32, items)
			ParallelizeN(items, workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i, h := range hits {
				if h != 1 {
					t.Fatalf("items=%d workers=%d: index %d visited %d times", items, workers, i, h)
				}
			}
		}
	}
}

func TestParallelizeWithThresholdSequential(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(10, 100, 4, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("expected single range [0,10), got [%d,%d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected 1 call below threshold, got %d", calls)
	}

	ParallelizeWithThreshold(0, 100, 4, func(start, end int) {
		t.Error("fn must not be called for zero items")
	})
}

func TestParallelizeSum(t *testing.T) {
	const n = 5000
	var total int64
	Parallelize(n, func(start, end int) {
		var local int64
		for i := start; i < end; i++ {
			local += int64(i)
		}
		atomic.AddInt64(&total, local)
	})
	if want := int64(n * (n - 1) / 2); total != want {
		t.Errorf("sum = %d, want %d", total, want)
	}
}
