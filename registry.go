package fapickle

import (
	"fmt"
	"sort"
)

// BuildFunc assembles one concrete object from its validated fields. Children
// named by the contract are already fully built when it runs. Returning an
// Issues error keeps paths structured (they are rebased under the object's
// position in the document); any other error is wrapped as shape_mismatch.
type BuildFunc func(f Fields) (any, error)

// Entry registers one concrete type: the tag that names it on the wire, the
// capability it implements, its field contract, and its builder.
type Entry struct {
	Tag        string
	Capability Capability
	Contract   Contract
	Build      BuildFunc
}

// Registry maps tag strings to registered entries. A Registry is immutable
// after construction, so concurrent lookups from parallel reconstruction
// calls need no locking. Adding a variant means adding one Entry; the
// traversal logic never changes.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry builds an immutable registry from the given entries. Duplicate
// tags, empty tags, and nil builders are configuration errors, not Issues.
func NewRegistry(entries ...Entry) (*Registry, error) {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if e.Tag == "" {
			return nil, fmt.Errorf("fapickle: entry with empty tag")
		}
		if e.Build == nil {
			return nil, fmt.Errorf("fapickle: entry %q has nil build func", e.Tag)
		}
		if _, dup := m[e.Tag]; dup {
			return nil, fmt.Errorf("fapickle: duplicate tag %q", e.Tag)
		}
		m[e.Tag] = e
	}
	return &Registry{entries: m}, nil
}

// MustRegistry is NewRegistry that panics on configuration errors. Intended
// for one-time registration at process start.
func MustRegistry(entries ...Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup resolves a tag to its entry.
func (r *Registry) Lookup(tag string) (Entry, bool) {
	e, ok := r.entries[tag]
	return e, ok
}

// Tags returns all registered tags in ascending order for deterministic
// diagnostics.
func (r *Registry) Tags() []string {
	out := make([]string, 0, len(r.entries))
	for t := range r.entries {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// With returns a new registry extending r with additional entries. r itself
// is never mutated.
func (r *Registry) With(entries ...Entry) (*Registry, error) {
	all := make([]Entry, 0, len(r.entries)+len(entries))
	for _, t := range r.Tags() {
		all = append(all, r.entries[t])
	}
	all = append(all, entries...)
	return NewRegistry(all...)
}
