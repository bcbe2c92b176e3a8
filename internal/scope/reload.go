package scope

import "sync"

// Reloader serializes scope-dependent reloads so the result of the latest
// scope always wins. Each reload is tagged at dispatch with the generation of
// its resolved scope; a result is applied only if its generation is still
// current, otherwise it is discarded. Reloads of an unchanged scope share a
// generation, so concurrent requests for the same scope never invalidate
// each other.
type Reloader struct {
	mu     sync.Mutex
	gen    uint64
	scope  uint
	active bool
}

// Generation is the dispatch tag for one reload
type Generation uint64

// Begin returns the generation for the given scope, starting a new one only
// when the scope differs from the current generation's. Starting a new
// generation invalidates all in-flight reloads of the previous scope.
func (r *Reloader) Begin(scopeID uint) Generation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active || r.scope != scopeID {
		r.gen++
		r.scope = scopeID
		r.active = true
	}
	return Generation(r.gen)
}

// Current reports whether the generation is still the latest
func (r *Reloader) Current(g Generation) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(g) == r.gen
}

// Apply runs fn only if g is still the current generation, holding the lock
// so a concurrent Begin cannot interleave with the application. It reports
// whether fn ran.
func (r *Reloader) Apply(g Generation, fn func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if uint64(g) != r.gen {
		return false
	}
	fn()
	return true
}
