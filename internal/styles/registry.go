// Package styles provides the style profile registry: the static description
// of each supported house style, resolved by identifier. The registry is
// read-only after process initialization; no mutation operations are exposed.
package styles

import (
	"fmt"

	"github.com/ahrav/go-newsdesk/internal/domain"
)

// Registry holds the configured style profiles, keyed by identifier.
// Construction validates every profile and rejects duplicates; afterwards the
// registry is immutable and safe for concurrent use without locking.
type Registry struct {
	profiles map[string]domain.StyleProfile
	order    []string
}

// NewRegistry creates a registry from the given profiles.
// Profile order is preserved for listing. Returns an error for invalid
// profiles or duplicate identifiers.
func NewRegistry(profiles ...domain.StyleProfile) (*Registry, error) {
	r := &Registry{profiles: make(map[string]domain.StyleProfile, len(profiles))}
	for i := range profiles {
		p := profiles[i]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("style %q: %w", p.ID, err)
		}
		if _, dup := r.profiles[p.ID]; dup {
			return nil, fmt.Errorf("style %q: duplicate identifier", p.ID)
		}
		r.profiles[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r, nil
}

// Default returns a registry holding the built-in express and ksta profiles.
func Default() *Registry {
	r, err := NewRegistry(Express(), KSTA())
	if err != nil {
		// Built-in profiles are compile-time constants; failing to validate
		// them is a programming error.
		panic(fmt.Sprintf("styles: invalid built-in profile: %v", err))
	}
	return r
}

// Resolve looks up a style profile by identifier.
// Returns an UnknownStyleError if the identifier is not configured.
func (r *Registry) Resolve(id string) (domain.StyleProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return domain.StyleProfile{}, &domain.UnknownStyleError{ID: id, Known: r.IDs()}
	}
	return p, nil
}

// ResolveAll resolves an ordered list of identifiers, preserving order.
// The first unknown identifier fails the whole resolution; this is the
// run-level precondition check performed before any variant work begins.
func (r *Registry) ResolveAll(ids []string) ([]domain.StyleProfile, error) {
	profiles := make([]domain.StyleProfile, 0, len(ids))
	for _, id := range ids {
		p, err := r.Resolve(id)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// IDs returns the registered identifiers in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int { return len(r.profiles) }
