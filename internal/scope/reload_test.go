package scope

import (
	"sync"
	"testing"
)

func TestReloader(t *testing.T) {
	t.Run("latest scope wins", func(t *testing.T) {
		var r Reloader

		stale := r.Begin(1)
		fresh := r.Begin(2)

		applied := ""
		if r.Apply(stale, func() { applied = "stale" }) {
			t.Error("stale generation must not apply")
		}
		if !r.Apply(fresh, func() { applied = "fresh" }) {
			t.Fatal("fresh generation must apply")
		}
		if applied != "fresh" {
			t.Errorf("expected fresh result, got %q", applied)
		}
	})

	t.Run("unchanged scope shares a generation", func(t *testing.T) {
		var r Reloader

		first := r.Begin(7)
		second := r.Begin(7)
		if first != second {
			t.Fatalf("same scope must share a generation, got %d and %d", first, second)
		}

		// Both in-flight reloads of the same scope may land
		if !r.Apply(first, func() {}) {
			t.Error("first reload of the scope must apply")
		}
		if !r.Apply(second, func() {}) {
			t.Error("second reload of the same scope must also apply")
		}
	})

	t.Run("current reports staleness", func(t *testing.T) {
		var r Reloader
		first := r.Begin(1)
		if !r.Current(first) {
			t.Error("first generation should be current")
		}
		r.Begin(2)
		if r.Current(first) {
			t.Error("superseded generation should not be current")
		}
	})

	t.Run("concurrent begins leave exactly one current generation", func(t *testing.T) {
		var r Reloader
		const n = 50

		gens := make([]Generation, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				gens[i] = r.Begin(uint(i))
			}(i)
		}
		wg.Wait()

		current := 0
		for _, g := range gens {
			if r.Current(g) {
				current++
			}
		}
		if current != 1 {
			t.Errorf("expected exactly 1 current generation, got %d", current)
		}
	})
}
