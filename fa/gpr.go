package fa

import (
	fapickle "github.com/dmpkit/fapickle"
	"gonum.org/v1/gonum/mat"
)

// MetaParametersGPR configures the squared-exponential kernel of a Gaussian
// process regressor.
type MetaParametersGPR struct {
	MaxCovariance float64
	LengthScale   float64
}

// ModelParametersGPR is the fitted posterior: the training inputs (one row
// per sample) and the precomputed prediction weights, one per sample.
type ModelParametersGPR struct {
	Inputs  *mat.Dense
	Weights *mat.VecDense
}

// GPR is a Gaussian process regression approximator. Model is nil while
// untrained.
type GPR struct {
	Meta  *MetaParametersGPR
	Model *ModelParametersGPR
}

func (g *GPR) Name() string    { return "GPR" }
func (g *GPR) IsTrained() bool { return g.Model != nil }

func gprEntries() []fapickle.Entry {
	return []fapickle.Entry{
		{
			Tag:        "GPR",
			Capability: CapApproximator,
			Contract: fapickle.Contract{
				"metaParameters":  {Kind: fapickle.FieldTagged, Capability: CapMetaGPR},
				"modelParameters": {Kind: fapickle.FieldTagged, Capability: CapModelGPR, Optional: true},
			},
			Build: buildGPR,
		},
		{
			Tag:        "MetaParametersGPR",
			Capability: CapMetaGPR,
			Contract: fapickle.Contract{
				"maxCovariance": {Kind: fapickle.FieldNumber},
				"lengthScale":   {Kind: fapickle.FieldNumber},
			},
			Build: func(f fapickle.Fields) (any, error) {
				return &MetaParametersGPR{
					MaxCovariance: f.Number("maxCovariance"),
					LengthScale:   f.Number("lengthScale"),
				}, nil
			},
		},
		{
			Tag:        "ModelParametersGPR",
			Capability: CapModelGPR,
			Contract: fapickle.Contract{
				"inputs":  {Kind: fapickle.FieldMatrix},
				"weights": {Kind: fapickle.FieldVector},
			},
			Build: func(f fapickle.Fields) (any, error) {
				inputs, weights := f.Mat("inputs"), f.Vec("weights")
				rows, _ := inputs.Dims()
				if weights.Len() != rows {
					return nil, shapeIssue("/weights", "one weight per training sample required", rows, weights.Len())
				}
				return &ModelParametersGPR{Inputs: inputs, Weights: weights}, nil
			},
		},
	}
}

func buildGPR(f fapickle.Fields) (any, error) {
	out := &GPR{Meta: f.Child("metaParameters").(*MetaParametersGPR)}
	if f.Has("modelParameters") {
		out.Model = f.Child("modelParameters").(*ModelParametersGPR)
	}
	return out, nil
}
