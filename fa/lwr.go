package fa

import (
	fapickle "github.com/dmpkit/fapickle"
	"gonum.org/v1/gonum/mat"
)

// MetaParametersLWR lays out the receptive fields of locally weighted
// regression: one center and one width per local model.
type MetaParametersLWR struct {
	Centers *mat.VecDense
	Widths  *mat.VecDense
}

// NumBasisFunctions returns the local model count.
func (m *MetaParametersLWR) NumBasisFunctions() int { return m.Centers.Len() }

// ModelParametersLWR holds the line fitted inside each receptive field: a
// slopes matrix (one row per local model) and an offsets vector.
type ModelParametersLWR struct {
	Slopes  *mat.Dense
	Offsets *mat.VecDense
}

// LWR is a locally weighted regression approximator. Model is nil while
// untrained.
type LWR struct {
	Meta  *MetaParametersLWR
	Model *ModelParametersLWR
}

func (l *LWR) Name() string    { return "LWR" }
func (l *LWR) IsTrained() bool { return l.Model != nil }

func lwrEntries() []fapickle.Entry {
	return []fapickle.Entry{
		{
			Tag:        "LWR",
			Capability: CapApproximator,
			Contract: fapickle.Contract{
				"metaParameters":  {Kind: fapickle.FieldTagged, Capability: CapMetaLWR},
				"modelParameters": {Kind: fapickle.FieldTagged, Capability: CapModelLWR, Optional: true},
			},
			Build: buildLWR,
		},
		{
			Tag:        "MetaParametersLWR",
			Capability: CapMetaLWR,
			Contract: fapickle.Contract{
				"centers": {Kind: fapickle.FieldVector},
				"widths":  {Kind: fapickle.FieldVector},
			},
			Build: func(f fapickle.Fields) (any, error) {
				centers, widths := f.Vec("centers"), f.Vec("widths")
				if widths.Len() != centers.Len() {
					return nil, shapeIssue("/widths", "one width per center required", centers.Len(), widths.Len())
				}
				return &MetaParametersLWR{Centers: centers, Widths: widths}, nil
			},
		},
		{
			Tag:        "ModelParametersLWR",
			Capability: CapModelLWR,
			Contract: fapickle.Contract{
				"slopes":  {Kind: fapickle.FieldMatrix},
				"offsets": {Kind: fapickle.FieldVector},
			},
			Build: func(f fapickle.Fields) (any, error) {
				slopes, offsets := f.Mat("slopes"), f.Vec("offsets")
				rows, _ := slopes.Dims()
				if offsets.Len() != rows {
					return nil, shapeIssue("/offsets", "one offset per slope row required", rows, offsets.Len())
				}
				return &ModelParametersLWR{Slopes: slopes, Offsets: offsets}, nil
			},
		},
	}
}

func buildLWR(f fapickle.Fields) (any, error) {
	meta := f.Child("metaParameters").(*MetaParametersLWR)
	out := &LWR{Meta: meta}
	if f.Has("modelParameters") {
		model := f.Child("modelParameters").(*ModelParametersLWR)
		rows, _ := model.Slopes.Dims()
		if rows != meta.NumBasisFunctions() {
			return nil, shapeIssue("/modelParameters/slopes",
				"one local model per receptive field required",
				meta.NumBasisFunctions(), rows)
		}
		out.Model = model
	}
	return out, nil
}
