package fapickle

// Package fapickle reconstructs polymorphic object graphs from tagged JSON
// documents produced by jsonpickle-style serializers.
//
// It provides:
//
// - Tag-driven dispatch through an immutable Registry (tag -> contract + builder)
// - Declarative field contracts with recursive, bottom-up child construction
// - A stable error model via Issues (JSON Pointer, code, message)
// - Dense numeric containers (gonum mat.VecDense / mat.Dense) for embedded
//   vectors and matrices, with shape checking at construction time
//
// Design policy:
// - Keep only public APIs in the root package; put the token decoder under internal/.
// - Place the built-in function-approximator variant set under fa/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v, err := fapickle.FromBytes(data)
//	obj, err := fapickle.Reconstruct(v, fa.CapApproximator, fapickle.Opt{Registry: fa.Registry()})
//
// or, for the built-in variants:
//
//	approx, err := fa.FromJSON(data)
