package fapickle

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Reconstruct walks a decoded JSON value and produces one fully owned object
// implementing the wanted capability, or an error. The caller owns the root;
// every internal node is owned exclusively by its parent. Children are built
// bottom-up, so cross-field shape invariants are enforced at construction
// time and no partial graph ever escapes a failed call.
func Reconstruct(v any, want Capability, opts ...Opt) (any, error) {
	opt := pickOpt(opts)
	if opt.Registry == nil {
		return nil, fmt.Errorf("fapickle: nil registry")
	}
	b := &builder{reg: opt.Registry, strict: opt.StrictFields, maxDepth: opt.MaxDepth}
	obj, iss := b.node(v, want, "", 0)
	if len(iss) > 0 {
		return nil, iss
	}
	return obj, nil
}

// As reconstructs and asserts the result to T.
func As[T any](v any, want Capability, opts ...Opt) (T, error) {
	var zero T
	obj, err := Reconstruct(v, want, opts...)
	if err != nil {
		return zero, err
	}
	t, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("fapickle: reconstructed %T does not satisfy %T", obj, zero)
	}
	return t, nil
}

type builder struct {
	reg      *Registry
	strict   bool
	maxDepth int
}

// node reconstructs one tagged object at the given document path.
func (b *builder) node(v any, want Capability, path string, depth int) (any, Issues) {
	if depth > b.maxDepth {
		return nil, Issues{Issue{Path: path, Code: CodeMalformedDocument, Message: "max depth exceeded"}}
	}
	m, ok := v.(map[string]any)
	if !ok {
		if path == "" {
			return nil, Issues{Issue{Path: path, Code: CodeMalformedDocument, Message: "expected object at document root", Params: map[string]any{"actual": kindName(v)}}}
		}
		return nil, Issues{Issue{Path: path, Code: CodeFieldShapeMismatch, Message: "expected tagged object", Params: map[string]any{"expected": FieldTagged.String(), "actual": kindName(v)}}}
	}

	tag, err := TagOf(m)
	if err != nil {
		return nil, rebaseIssues(path, CodeMalformedDocument, err)
	}
	entry, ok := b.reg.Lookup(tag)
	if !ok {
		return nil, Issues{Issue{
			Path:    path,
			Code:    CodeUnknownType,
			Message: "tag not registered",
			Hint:    "unknown variant: '" + tag + "'",
			Params:  map[string]any{"tag": tag},
		}}
	}
	if want != CapAny && entry.Capability != want {
		return nil, Issues{Issue{
			Path:    path,
			Code:    CodeCapabilityMismatch,
			Message: "resolved type does not implement the expected capability",
			Params:  map[string]any{"expected": string(want), "tag": tag},
		}}
	}

	fields, iss := b.collect(m, entry.Contract, path, depth)
	if b.strict {
		iss = AppendIssues(iss, b.unknownFields(m, entry.Contract, path)...)
	}
	if len(iss) > 0 {
		return nil, iss
	}

	obj, berr := entry.Build(fields)
	if berr != nil {
		return nil, rebaseIssues(path, CodeShapeMismatch, berr)
	}
	return obj, nil
}

// collect validates known fields against the contract and builds nested
// children bottom-up. Field names are visited in ascending order for
// deterministic issue selection.
func (b *builder) collect(m map[string]any, c Contract, path string, depth int) (Fields, Issues) {
	names := make([]string, 0, len(c))
	for k := range c {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make(Fields, len(c))
	var iss Issues
	for _, name := range names {
		spec := c[name]
		fp := path + "/" + name
		raw, exists := m[name]
		if !exists {
			if spec.Optional {
				continue
			}
			iss = AppendIssues(iss, Issue{Path: fp, Code: CodeMissingField, Message: "required field missing"})
			continue
		}
		if raw == nil {
			if spec.Optional {
				continue
			}
			iss = AppendIssues(iss, Issue{Path: fp, Code: CodeFieldShapeMismatch, Message: "required field is null", Params: map[string]any{"expected": spec.Kind.String(), "actual": "null"}})
			continue
		}

		val, i2 := b.field(raw, spec, fp, depth)
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			continue
		}
		out[name] = val
	}
	return out, iss
}

// field decodes a single present, non-null field per its spec.
func (b *builder) field(raw any, spec FieldSpec, fp string, depth int) (any, Issues) {
	switch spec.Kind {
	case FieldNumber:
		f, ok := asFloat(raw)
		if !ok {
			return nil, shapeIssue(fp, spec.Kind, raw)
		}
		return f, nil
	case FieldString:
		s, ok := raw.(string)
		if !ok {
			return nil, shapeIssue(fp, spec.Kind, raw)
		}
		return s, nil
	case FieldBool:
		bb, ok := raw.(bool)
		if !ok {
			return nil, shapeIssue(fp, spec.Kind, raw)
		}
		return bb, nil
	case FieldVector:
		return decodeVector(raw, fp)
	case FieldMatrix:
		return decodeMatrix(raw, fp)
	case FieldTagged:
		return b.node(raw, spec.Capability, fp, depth+1)
	case FieldTaggedArray:
		arr, ok := raw.([]any)
		if !ok {
			return nil, shapeIssue(fp, spec.Kind, raw)
		}
		out := make([]any, 0, len(arr))
		var iss Issues
		for i, el := range arr {
			child, i2 := b.node(el, spec.Capability, fp+"/"+strconv.Itoa(i), depth+1)
			if len(i2) > 0 {
				iss = AppendIssues(iss, i2...)
				continue
			}
			out = append(out, child)
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return out, nil
	default:
		return nil, Issues{Issue{Path: fp, Code: CodeMalformedDocument, Message: "contract names an unknown field kind"}}
	}
}

// unknownFields reports contract-foreign keys in key-sorted order. The
// reserved tag and id keys are always tolerated.
func (b *builder) unknownFields(m map[string]any, c Contract, path string) Issues {
	uks := make([]string, 0, len(m))
	for k := range m {
		if k == TagKey || k == RefKey {
			continue
		}
		if _, known := c[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	var iss Issues
	for _, k := range uks {
		iss = AppendIssues(iss, Issue{Path: path + "/" + k, Code: CodeUnknownField, Message: "field not named by contract"})
	}
	return iss
}

func shapeIssue(fp string, want FieldKind, raw any) Issues {
	return Issues{Issue{
		Path:    fp,
		Code:    CodeFieldShapeMismatch,
		Message: "unexpected field shape",
		Params:  map[string]any{"expected": want.String(), "actual": kindName(raw)},
	}}
}

// asFloat coerces the number representations produced by the supported
// decoders (float64 from the engine, json.Number from callers that parsed
// with UseNumber, integer kinds from YAML).
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}

// decodeVector reconstructs a flat array of numbers into a dense vector.
// Empty vectors carry no shape and are rejected.
func decodeVector(raw any, fp string) (*mat.VecDense, Issues) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, shapeIssue(fp, FieldVector, raw)
	}
	if len(arr) == 0 {
		return nil, Issues{Issue{Path: fp, Code: CodeShapeMismatch, Message: "empty vector"}}
	}
	data := make([]float64, len(arr))
	for i, el := range arr {
		f, ok := asFloat(el)
		if !ok {
			return nil, Issues{Issue{
				Path:    fp + "/" + strconv.Itoa(i),
				Code:    CodeFieldShapeMismatch,
				Message: "unexpected element shape",
				Params:  map[string]any{"expected": "number", "actual": kindName(el)},
			}}
		}
		data[i] = f
	}
	return mat.NewVecDense(len(data), data), nil
}

// decodeMatrix reconstructs a nested array of equal-length number rows into a
// row-major dense matrix.
func decodeMatrix(raw any, fp string) (*mat.Dense, Issues) {
	rows, ok := raw.([]any)
	if !ok {
		return nil, shapeIssue(fp, FieldMatrix, raw)
	}
	if len(rows) == 0 {
		return nil, Issues{Issue{Path: fp, Code: CodeShapeMismatch, Message: "empty matrix"}}
	}
	var data []float64
	cols := -1
	for i, rr := range rows {
		rp := fp + "/" + strconv.Itoa(i)
		row, ok := rr.([]any)
		if !ok {
			return nil, Issues{Issue{
				Path:    rp,
				Code:    CodeFieldShapeMismatch,
				Message: "unexpected row shape",
				Params:  map[string]any{"expected": "array of numbers", "actual": kindName(rr)},
			}}
		}
		if cols < 0 {
			cols = len(row)
			if cols == 0 {
				return nil, Issues{Issue{Path: rp, Code: CodeShapeMismatch, Message: "empty matrix row"}}
			}
			data = make([]float64, 0, len(rows)*cols)
		} else if len(row) != cols {
			return nil, Issues{Issue{
				Path:    rp,
				Code:    CodeShapeMismatch,
				Message: "ragged matrix row",
				Params:  map[string]any{"want": cols, "got": len(row)},
			}}
		}
		for j, el := range row {
			f, ok := asFloat(el)
			if !ok {
				return nil, Issues{Issue{
					Path:    rp + "/" + strconv.Itoa(j),
					Code:    CodeFieldShapeMismatch,
					Message: "unexpected element shape",
					Params:  map[string]any{"expected": "number", "actual": kindName(el)},
				}}
			}
			data = append(data, f)
		}
	}
	return mat.NewDense(len(rows), cols, data), nil
}
