package animation

import (
	"sync"

	"logoforge/pkg/models"
)

// Registry holds the registered providers and applies the fixed
// selection policy. Provider capabilities are immutable once
// registered; registering a duplicate id replaces the previous entry
// (last write wins, no error) while keeping its registration slot.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// NewDefaultRegistry returns a registry with all three built-in
// providers registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewCSSProvider())
	r.Register(NewSMILProvider())
	r.Register(NewJSProvider())
	return r
}

func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[p.ID()]; !exists {
		r.order = append(r.order, p.ID())
	}
	r.providers[p.ID()] = p
}

// Get returns a provider by id.
func (r *Registry) Get(id string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[id]
	return p, ok
}

// BestFor picks the provider for an animation type:
//  1. draw and morph prefer SMIL,
//  2. typewriter and custom prefer JS,
//  3. everything else prefers CSS,
//  4. otherwise the first registered provider that supports the type,
//  5. nil when none does.
func (r *Registry) BestFor(t models.AnimationType) Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefer := func(id string) Provider {
		if p, ok := r.providers[id]; ok && p.Supports(t) {
			return p
		}
		return nil
	}

	switch t {
	case models.Draw, models.Morph:
		if p := prefer(ProviderSMIL); p != nil {
			return p
		}
	case models.Typewriter, models.Custom:
		if p := prefer(ProviderJS); p != nil {
			return p
		}
	}
	if p := prefer(ProviderCSS); p != nil {
		return p
	}
	for _, id := range r.order {
		if p := r.providers[id]; p.Supports(t) {
			return p
		}
	}
	return nil
}
