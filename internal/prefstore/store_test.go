package prefstore

import (
	"context"
	"errors"
	"testing"
)

// failingKV simulates an unavailable backend
type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, error) {
	return "", errors.New("backend unavailable")
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("backend unavailable")
}

// readOnlyKV serves previously stored values but rejects all writes, like a
// backend that hit its quota.
type readOnlyKV struct {
	values map[string]string
}

func (kv readOnlyKV) Get(_ context.Context, key string) (string, error) {
	if v, ok := kv.values[key]; ok {
		return v, nil
	}
	return "", ErrNotFound
}

func (readOnlyKV) Set(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func TestDefaultMode(t *testing.T) {
	// Taxes defaulting to grid while the rest default to list is intentional
	cases := map[string]string{
		"articles":   ModeList,
		"businesses": ModeList,
		"taxes":      ModeGrid,
		"users":      ModeList,
	}
	for collection, want := range cases {
		if got := DefaultMode(collection); got != want {
			t.Errorf("DefaultMode(%q) = %q, want %q", collection, got, want)
		}
	}
}

func TestStore_GetViewMode(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing persisted returns the given default", func(t *testing.T) {
		store := New(NewMemoryKV(), nil)
		if got := store.GetViewMode(ctx, 1, "taxes", ModeGrid); got != ModeGrid {
			t.Errorf("expected grid, got %q", got)
		}
		if got := store.GetViewMode(ctx, 1, "articles", ModeList); got != ModeList {
			t.Errorf("expected list, got %q", got)
		}
	})

	t.Run("corrupted stored value is treated as absent", func(t *testing.T) {
		kv := NewMemoryKV()
		_ = kv.Set(ctx, "pref:1:viewmode:users", "table") // future/tampered value
		store := New(kv, nil)
		if got := store.GetViewMode(ctx, 1, "users", ModeList); got != ModeList {
			t.Errorf("expected default list for corrupted value, got %q", got)
		}
	})

	t.Run("read failure degrades to default", func(t *testing.T) {
		store := New(failingKV{}, nil)
		if got := store.GetViewMode(ctx, 1, "taxes", ModeGrid); got != ModeGrid {
			t.Errorf("expected grid, got %q", got)
		}
	})
}

func TestStore_SetViewMode(t *testing.T) {
	ctx := context.Background()

	t.Run("write then read round-trip", func(t *testing.T) {
		store := New(NewMemoryKV(), nil)
		if err := store.SetViewMode(ctx, 1, "users", ModeGrid); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := store.GetViewMode(ctx, 1, "users", ModeList); got != ModeGrid {
			t.Errorf("expected grid after write, got %q", got)
		}
		// Other collections are unaffected
		if got := store.GetViewMode(ctx, 1, "articles", ModeList); got != ModeList {
			t.Errorf("expected articles untouched, got %q", got)
		}
	})

	t.Run("distinct users are independent", func(t *testing.T) {
		store := New(NewMemoryKV(), nil)
		if err := store.SetViewMode(ctx, 1, "users", ModeGrid); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := store.GetViewMode(ctx, 2, "users", ModeList); got != ModeList {
			t.Errorf("expected user 2 unaffected, got %q", got)
		}
	})

	t.Run("invalid mode is rejected", func(t *testing.T) {
		store := New(NewMemoryKV(), nil)
		if err := store.SetViewMode(ctx, 1, "users", "table"); err == nil {
			t.Error("expected error for invalid mode")
		}
	})

	t.Run("backend write failure degrades to in-memory behavior", func(t *testing.T) {
		store := New(failingKV{}, nil)
		if err := store.SetViewMode(ctx, 1, "taxes", ModeList); err != nil {
			t.Fatalf("write failure must not surface, got %v", err)
		}
		// Read-your-writes within the process despite the dead backend
		if got := store.GetViewMode(ctx, 1, "taxes", ModeGrid); got != ModeList {
			t.Errorf("expected in-memory overlay value list, got %q", got)
		}
	})

	t.Run("failed write wins over an older readable backend value", func(t *testing.T) {
		kv := readOnlyKV{values: map[string]string{"pref:1:viewmode:users": ModeList}}
		store := New(kv, nil)
		if err := store.SetViewMode(ctx, 1, "users", ModeGrid); err != nil {
			t.Fatalf("write failure must not surface, got %v", err)
		}
		// The backend still serves the stale "list"; the session's own write
		// must shadow it.
		if got := store.GetViewMode(ctx, 1, "users", ModeList); got != ModeGrid {
			t.Errorf("expected grid from overlay, got %q", got)
		}
	})
}
