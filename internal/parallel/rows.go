// Package parallel distributes per-row image work across goroutines.
//
// The pixel pipeline is stateless, so rows are independent and the
// only coordination needed is a WaitGroup. Rows are handed out in
// contiguous strips to keep each worker on adjacent memory.
package parallel

import (
	"runtime"
	"sync"
)

// ForEachRow calls fn(y) for every row in [0, height), spread across
// workers goroutines. workers <= 0 uses GOMAXPROCS. fn must be safe to
// call concurrently for distinct rows. ForEachRow returns after every
// row has completed.
func ForEachRow(height, workers int, fn func(y int)) {
	if height <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > height {
		workers = height
	}
	if workers == 1 {
		for y := 0; y < height; y++ {
			fn(y)
		}
		return
	}

	// Strip size rounds up so the last worker takes the remainder.
	strip := (height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * strip
		hi := min(lo+strip, height)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for y := lo; y < hi; y++ {
				fn(y)
			}
		}(lo, hi)
	}
	wg.Wait()
}
