package cache

import (
	"sync"
	"testing"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](10)

	if _, ok := c.Get("missing"); ok {
		t.Error("empty cache reported a hit")
	}

	c.Set("a", 1)
	c.Set("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}

	c.Set("a", 3)
	if v, _ := c.Get("a"); v != 3 {
		t.Errorf("overwrite lost: got %d, want 3", v)
	}
	if c.Len() != 2 {
		t.Errorf("overwrite grew the cache to %d entries", c.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	c := New[int, int](3)
	for i := 0; i < 3; i++ {
		c.Set(i, i*10)
	}

	// Touch 0 so 1 becomes the oldest.
	c.Get(0)
	c.Set(3, 30)

	if _, ok := c.Get(1); ok {
		t.Error("least recently used entry survived eviction")
	}
	for _, k := range []int{0, 2, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %d evicted unexpectedly", k)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](10)
	calls := 0
	build := func() int {
		calls++
		return 7
	}

	if v := c.GetOrCreate("k", build); v != 7 {
		t.Errorf("GetOrCreate = %d, want 7", v)
	}
	if v := c.GetOrCreate("k", build); v != 7 {
		t.Errorf("GetOrCreate = %d, want 7", v)
	}
	if calls != 1 {
		t.Errorf("create ran %d times, want 1", calls)
	}
}

func TestDeleteClear(t *testing.T) {
	c := New[string, int](0)
	c.Set("a", 1)
	c.Set("b", 2)

	if !c.Delete("a") {
		t.Error("Delete(a) = false for present key")
	}
	if c.Delete("a") {
		t.Error("Delete(a) = true for absent key")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
	// The list must be reusable after Clear.
	c.Set("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Error("cache unusable after Clear")
	}
}

func TestUnlimited(t *testing.T) {
	c := New[int, int](0)
	for i := 0; i < 1000; i++ {
		c.Set(i, i)
	}
	if c.Len() != 1000 {
		t.Errorf("unlimited cache evicted: Len = %d", c.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](64)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				k := (seed*31 + i) % 100
				c.GetOrCreate(k, func() int { return k * 2 })
				c.Get(k)
			}
		}(w)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("cache exceeded its limit: Len = %d", c.Len())
	}
}
