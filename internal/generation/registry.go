package generation

import (
	"sync"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
)

// Registry maps content types to strategies. Overrides registered with
// Register take precedence over the built-in mapping. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	overrides map[domain.ContentType]Strategy
	fallback  Strategy
}

// NewRegistry returns a Registry that serves the built-in strategies.
func NewRegistry() *Registry {
	return &Registry{
		overrides: make(map[domain.ContentType]Strategy),
		fallback:  FallbackStrategy{},
	}
}

// Register replaces the strategy for ct.
func (r *Registry) Register(ct domain.ContentType, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[ct] = s
}

// SetFallback replaces the strategy used for unknown content types.
func (r *Registry) SetFallback(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = s
}

// Resolve returns the strategy for ct, falling back for unknown types.
func (r *Registry) Resolve(ct domain.ContentType) Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.overrides[ct]; ok {
		return s
	}
	if !ct.Known() {
		return r.fallback
	}
	return defaultStrategy(ct)
}

// Models lists the model names of the known content types, deduplicated, in
// content-type order.
func (r *Registry) Models() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(domain.ContentTypes))
	for _, ct := range domain.ContentTypes {
		m := r.Resolve(ct).Model()
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
