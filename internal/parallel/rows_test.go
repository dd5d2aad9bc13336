package parallel

import (
	"sync/atomic"
	"testing"
)

func TestForEachRowCoversAllRows(t *testing.T) {
	for _, tt := range []struct {
		name    string
		height  int
		workers int
	}{
		{"single worker", 100, 1},
		{"default workers", 100, 0},
		{"more workers than rows", 3, 16},
		{"uneven split", 103, 4},
		{"one row", 1, 8},
	} {
		t.Run(tt.name, func(t *testing.T) {
			seen := make([]int32, tt.height)
			ForEachRow(tt.height, tt.workers, func(y int) {
				atomic.AddInt32(&seen[y], 1)
			})
			for y, n := range seen {
				if n != 1 {
					t.Errorf("row %d visited %d times", y, n)
				}
			}
		})
	}
}

func TestForEachRowZeroHeight(t *testing.T) {
	called := false
	ForEachRow(0, 4, func(int) { called = true })
	ForEachRow(-5, 4, func(int) { called = true })
	if called {
		t.Error("fn called for empty height")
	}
}
