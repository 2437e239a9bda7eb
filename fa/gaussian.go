package fa

import (
	fapickle "github.com/dmpkit/fapickle"
	"gonum.org/v1/gonum/mat"
)

// Gaussian is one mixture component: a mean vector with a square covariance
// matrix of matching dimension.
type Gaussian struct {
	Mean  *mat.VecDense
	Covar *mat.Dense
}

// Dim returns the component's dimensionality.
func (g *Gaussian) Dim() int { return g.Mean.Len() }

func gaussianEntry() fapickle.Entry {
	return fapickle.Entry{
		Tag:        "Gaussian",
		Capability: CapGaussian,
		Contract: fapickle.Contract{
			"mean":  {Kind: fapickle.FieldVector},
			"covar": {Kind: fapickle.FieldMatrix},
		},
		Build: buildGaussian,
	}
}

func buildGaussian(f fapickle.Fields) (any, error) {
	mean := f.Vec("mean")
	covar := f.Mat("covar")
	r, c := covar.Dims()
	if r != c {
		return nil, shapeIssue("/covar", "covariance matrix is not square", r, c)
	}
	if r != mean.Len() {
		return nil, shapeIssue("/covar", "covariance dimension does not match mean", mean.Len(), r)
	}
	return &Gaussian{Mean: mean, Covar: covar}, nil
}
