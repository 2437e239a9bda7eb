package fa

import (
	fapickle "github.com/dmpkit/fapickle"
	"gonum.org/v1/gonum/mat"
)

// MetaParametersRBFN is the training-time layout of a radial basis function
// network: one center and one width per basis function.
type MetaParametersRBFN struct {
	Centers *mat.VecDense
	Widths  *mat.VecDense
	// IntersectionHeight is the activation height at which neighboring basis
	// functions intersect; zero when the document omits it.
	IntersectionHeight float64
}

// NumBasisFunctions returns the basis-function count.
func (m *MetaParametersRBFN) NumBasisFunctions() int { return m.Centers.Len() }

// ModelParametersRBFN is the learned state: one weight per basis function.
type ModelParametersRBFN struct {
	Weights *mat.VecDense
}

// RBFN is a radial basis function network. Model is nil while untrained.
type RBFN struct {
	Meta  *MetaParametersRBFN
	Model *ModelParametersRBFN
}

func (r *RBFN) Name() string    { return "RBFN" }
func (r *RBFN) IsTrained() bool { return r.Model != nil }

func rbfnEntries() []fapickle.Entry {
	return []fapickle.Entry{
		{
			Tag:        "RBFN",
			Capability: CapApproximator,
			Contract: fapickle.Contract{
				"metaParameters":  {Kind: fapickle.FieldTagged, Capability: CapMetaRBFN},
				"modelParameters": {Kind: fapickle.FieldTagged, Capability: CapModelRBFN, Optional: true},
			},
			Build: buildRBFN,
		},
		{
			Tag:        "MetaParametersRBFN",
			Capability: CapMetaRBFN,
			Contract: fapickle.Contract{
				"centers":            {Kind: fapickle.FieldVector},
				"widths":             {Kind: fapickle.FieldVector},
				"intersectionHeight": {Kind: fapickle.FieldNumber, Optional: true},
			},
			Build: buildMetaRBFN,
		},
		{
			Tag:        "ModelParametersRBFN",
			Capability: CapModelRBFN,
			Contract: fapickle.Contract{
				"weights": {Kind: fapickle.FieldVector},
			},
			Build: func(f fapickle.Fields) (any, error) {
				return &ModelParametersRBFN{Weights: f.Vec("weights")}, nil
			},
		},
	}
}

func buildMetaRBFN(f fapickle.Fields) (any, error) {
	centers, widths := f.Vec("centers"), f.Vec("widths")
	if widths.Len() != centers.Len() {
		return nil, shapeIssue("/widths", "one width per center required", centers.Len(), widths.Len())
	}
	return &MetaParametersRBFN{
		Centers:            centers,
		Widths:             widths,
		IntersectionHeight: f.Number("intersectionHeight"),
	}, nil
}

func buildRBFN(f fapickle.Fields) (any, error) {
	meta := f.Child("metaParameters").(*MetaParametersRBFN)
	out := &RBFN{Meta: meta}
	if f.Has("modelParameters") {
		model := f.Child("modelParameters").(*ModelParametersRBFN)
		if model.Weights.Len() != meta.NumBasisFunctions() {
			return nil, shapeIssue("/modelParameters/weights",
				"one weight per basis function required",
				meta.NumBasisFunctions(), model.Weights.Len())
		}
		out.Model = model
	}
	return out, nil
}
