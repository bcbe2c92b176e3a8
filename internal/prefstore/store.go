// Package prefstore persists per-user, per-collection view-mode preferences
// behind an injected key-value interface.
package prefstore

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// View modes
const (
	ModeList = "list"
	ModeGrid = "grid"
)

// Per-collection defaults. Taxes defaulting to grid while everything else
// defaults to list is intentional and must be preserved.
var collectionDefaults = map[string]string{
	"articles":   ModeList,
	"businesses": ModeList,
	"taxes":      ModeGrid,
	"users":      ModeList,
}

// ValidMode reports whether s is exactly one of the two view modes
func ValidMode(s string) bool {
	return s == ModeList || s == ModeGrid
}

// DefaultMode returns the documented default for a collection, falling back
// to list for collections without a documented default.
func DefaultMode(collection string) string {
	if mode, ok := collectionDefaults[collection]; ok {
		return mode
	}
	return ModeList
}

// KnownCollection reports whether the collection has a documented default
func KnownCollection(collection string) bool {
	_, ok := collectionDefaults[collection]
	return ok
}

// KV is the backing key-value store. Implementations must return ErrNotFound
// for absent keys.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Store resolves and persists view modes. Backend failures never surface to
// callers: failed writes land in a per-process overlay so later reads in the
// same session still observe them, and failed reads fall back to the overlay
// and then the default.
type Store struct {
	kv  KV
	log *zap.Logger

	mu      sync.RWMutex
	overlay map[string]string
}

// New creates a preference store over the given backend
func New(kv KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		kv:      kv,
		log:     log,
		overlay: make(map[string]string),
	}
}

func prefKey(userID uint, collection string) string {
	return fmt.Sprintf("pref:%d:viewmode:%s", userID, collection)
}

// GetViewMode returns the persisted mode for the user and collection, or the
// given default. A stored value that is not exactly "list" or "grid" is
// treated as absent.
func (s *Store) GetViewMode(ctx context.Context, userID uint, collection, def string) string {
	key := prefKey(userID, collection)

	// The overlay holds the latest in-process write, so it wins over the
	// backend: after a failed write the backend may still serve the older
	// value, and that must not mask what this session just set.
	s.mu.RLock()
	value := s.overlay[key]
	s.mu.RUnlock()

	if !ValidMode(value) {
		var err error
		value, err = s.kv.Get(ctx, key)
		if err != nil && err != ErrNotFound {
			s.log.Warn("preference read failed, degrading to default",
				zap.String("key", key), zap.Error(err))
		}
	}

	if ValidMode(value) {
		return value
	}
	return def
}

// SetViewMode persists the mode for the user and collection. Invalid modes
// are rejected; backend write failures degrade to the in-memory overlay and
// are never returned to the caller.
func (s *Store) SetViewMode(ctx context.Context, userID uint, collection, mode string) error {
	if !ValidMode(mode) {
		return fmt.Errorf("invalid view mode %q", mode)
	}

	key := prefKey(userID, collection)
	if err := s.kv.Set(ctx, key, mode); err != nil {
		s.log.Warn("preference write failed, keeping in-memory only",
			zap.String("key", key), zap.Error(err))
	}

	// The overlay always records the latest write so a flaky backend still
	// yields read-your-writes within the process.
	s.mu.Lock()
	s.overlay[key] = mode
	s.mu.Unlock()

	return nil
}
