package fa

import (
	"strconv"

	fapickle "github.com/dmpkit/fapickle"
	"gonum.org/v1/gonum/mat"
)

// MetaParametersGMR fixes the mixture size chosen before training.
type MetaParametersGMR struct {
	NumGaussians int
}

// ModelParametersGMR is the fitted mixture: one prior per component, each
// component a tagged Gaussian sub-object.
type ModelParametersGMR struct {
	Priors    *mat.VecDense
	Gaussians []*Gaussian
}

// GMR is a Gaussian mixture regression approximator. Model is nil while
// untrained.
type GMR struct {
	Meta  *MetaParametersGMR
	Model *ModelParametersGMR
}

func (g *GMR) Name() string    { return "GMR" }
func (g *GMR) IsTrained() bool { return g.Model != nil }

func gmrEntries() []fapickle.Entry {
	return []fapickle.Entry{
		{
			Tag:        "GMR",
			Capability: CapApproximator,
			Contract: fapickle.Contract{
				"metaParameters":  {Kind: fapickle.FieldTagged, Capability: CapMetaGMR},
				"modelParameters": {Kind: fapickle.FieldTagged, Capability: CapModelGMR, Optional: true},
			},
			Build: buildGMR,
		},
		{
			Tag:        "MetaParametersGMR",
			Capability: CapMetaGMR,
			Contract: fapickle.Contract{
				"numGaussians": {Kind: fapickle.FieldNumber},
			},
			Build: func(f fapickle.Fields) (any, error) {
				n := int(f.Number("numGaussians"))
				if n < 1 {
					return nil, shapeIssue("/numGaussians", "mixture needs at least one component", 1, n)
				}
				return &MetaParametersGMR{NumGaussians: n}, nil
			},
		},
		{
			Tag:        "ModelParametersGMR",
			Capability: CapModelGMR,
			Contract: fapickle.Contract{
				"priors":    {Kind: fapickle.FieldVector},
				"gaussians": {Kind: fapickle.FieldTaggedArray, Capability: CapGaussian},
			},
			Build: buildModelGMR,
		},
	}
}

func buildModelGMR(f fapickle.Fields) (any, error) {
	priors := f.Vec("priors")
	raw := f.Children("gaussians")
	if len(raw) != priors.Len() {
		return nil, shapeIssue("/gaussians", "one prior per component required", priors.Len(), len(raw))
	}
	gaussians := make([]*Gaussian, len(raw))
	dim := -1
	for i, g := range raw {
		gaussians[i] = g.(*Gaussian)
		if dim < 0 {
			dim = gaussians[i].Dim()
		} else if gaussians[i].Dim() != dim {
			return nil, shapeIssue("/gaussians/"+strconv.Itoa(i), "components must share a dimension", dim, gaussians[i].Dim())
		}
	}
	return &ModelParametersGMR{Priors: priors, Gaussians: gaussians}, nil
}

func buildGMR(f fapickle.Fields) (any, error) {
	meta := f.Child("metaParameters").(*MetaParametersGMR)
	out := &GMR{Meta: meta}
	if f.Has("modelParameters") {
		model := f.Child("modelParameters").(*ModelParametersGMR)
		if len(model.Gaussians) != meta.NumGaussians {
			return nil, shapeIssue("/modelParameters/gaussians",
				"component count fixed by meta-parameters",
				meta.NumGaussians, len(model.Gaussians))
		}
		out.Model = model
	}
	return out, nil
}
