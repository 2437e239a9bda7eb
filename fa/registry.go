package fa

import (
	"sync"

	fapickle "github.com/dmpkit/fapickle"
)

var (
	builtinOnce sync.Once
	builtin     *fapickle.Registry
)

// Registry returns the immutable built-in registry covering LWR, RBFN, GMR,
// GPR, their parameter sub-objects, and the Gaussian mixture component.
// Assembly happens once on first use; lookups afterwards are lock-free and
// safe from concurrent reconstruction calls.
func Registry() *fapickle.Registry {
	builtinOnce.Do(func() {
		var entries []fapickle.Entry
		entries = append(entries, rbfnEntries()...)
		entries = append(entries, lwrEntries()...)
		entries = append(entries, gmrEntries()...)
		entries = append(entries, gprEntries()...)
		entries = append(entries, gaussianEntry())
		builtin = fapickle.MustRegistry(entries...)
	})
	return builtin
}

// Reconstruct builds a FunctionApproximator from a decoded JSON value using
// the built-in registry. An explicit Opt.Registry (e.g. the built-in set
// extended via With) takes precedence.
func Reconstruct(v any, opts ...fapickle.Opt) (FunctionApproximator, error) {
	return fapickle.As[FunctionApproximator](v, CapApproximator, withBuiltin(opts))
}

// FromJSON decodes a JSON document and reconstructs a FunctionApproximator.
func FromJSON(data []byte, opts ...fapickle.Opt) (FunctionApproximator, error) {
	opt := withBuiltin(opts)
	v, err := fapickle.FromBytes(data, opt)
	if err != nil {
		return nil, err
	}
	return Reconstruct(v, opt)
}

// FromYAML decodes a YAML document carrying the same tagged convention and
// reconstructs a FunctionApproximator.
func FromYAML(data []byte, opts ...fapickle.Opt) (FunctionApproximator, error) {
	opt := withBuiltin(opts)
	v, err := fapickle.FromYAML(data, opt)
	if err != nil {
		return nil, err
	}
	return Reconstruct(v, opt)
}

func withBuiltin(opts []fapickle.Opt) fapickle.Opt {
	var opt fapickle.Opt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Registry == nil {
		opt.Registry = Registry()
	}
	return opt
}
