package fapickle

import "gonum.org/v1/gonum/mat"

// Capability names an abstract role (e.g. "function approximator") that one or
// more registered concrete types implement. The builder checks the capability
// of every resolved tag against the capability expected at that position.
type Capability string

// CapAny matches entries of every capability.
const CapAny Capability = ""

// FieldKind enumerates the JSON shapes a field contract can require.
type FieldKind int

const (
	FieldNumber      FieldKind = iota // scalar number
	FieldString                       // string
	FieldBool                         // boolean
	FieldVector                       // flat array of numbers -> *mat.VecDense
	FieldMatrix                       // array of equal-length number rows -> *mat.Dense
	FieldTagged                       // nested tagged object
	FieldTaggedArray                  // array of nested tagged objects
)

// String returns the wire-level name of the kind, used in issue params.
func (k FieldKind) String() string {
	switch k {
	case FieldNumber:
		return "number"
	case FieldString:
		return "string"
	case FieldBool:
		return "bool"
	case FieldVector:
		return "vector"
	case FieldMatrix:
		return "matrix"
	case FieldTagged:
		return "tagged object"
	case FieldTaggedArray:
		return "array of tagged objects"
	default:
		return "unknown"
	}
}

// FieldSpec declares the expected shape of a single field.
type FieldSpec struct {
	Kind FieldKind
	// Capability constrains the tag resolved for Tagged/TaggedArray children.
	Capability Capability
	// Optional fields may be absent or null; required fields must be present
	// and non-null.
	Optional bool
}

// Contract is the required field set of one concrete type: field name to
// expected shape. Unknown extra fields are ignored unless strict mode is on.
type Contract map[string]FieldSpec

// Fields holds the validated, fully built field values handed to a BuildFunc.
// Values are typed per FieldKind: float64, string, bool, *mat.VecDense,
// *mat.Dense, or already-built child objects.
type Fields map[string]any

// Has reports whether an (optional) field was present in the document.
func (f Fields) Has(name string) bool { _, ok := f[name]; return ok }

// Number returns a scalar field. The zero value is returned for absent fields.
func (f Fields) Number(name string) float64 { v, _ := f[name].(float64); return v }

// Text returns a string field.
func (f Fields) Text(name string) string { v, _ := f[name].(string); return v }

// Bool returns a boolean field.
func (f Fields) Bool(name string) bool { v, _ := f[name].(bool); return v }

// Vec returns a vector field.
func (f Fields) Vec(name string) *mat.VecDense { v, _ := f[name].(*mat.VecDense); return v }

// Mat returns a matrix field.
func (f Fields) Mat(name string) *mat.Dense { v, _ := f[name].(*mat.Dense); return v }

// Child returns a built nested object.
func (f Fields) Child(name string) any { return f[name] }

// Children returns a built array of nested objects.
func (f Fields) Children(name string) []any { v, _ := f[name].([]any); return v }

// DefaultMaxDepth bounds recursion when Opt.MaxDepth is unset, guarding
// against pathological nesting.
const DefaultMaxDepth = 256

// Opt bundles reconstruction options. Variadic call sites take the last
// option when several are passed.
type Opt struct {
	// StrictFields rejects fields not named by the resolved contract.
	StrictFields bool
	// MaxDepth caps nesting of the input document; 0 means DefaultMaxDepth.
	MaxDepth int
	// MaxBytes caps input size for FromBytes/FromReader; 0 means unlimited.
	MaxBytes int64
	// Registry supplies the tag -> builder entries. Reconstruct requires it;
	// callers using the built-in variant set should reach for fa.Reconstruct.
	Registry *Registry
}

func pickOpt(opts []Opt) Opt {
	var opt Opt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = DefaultMaxDepth
	}
	return opt
}
