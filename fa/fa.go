package fa

import (
	fapickle "github.com/dmpkit/fapickle"
)

// FunctionApproximator is the capability shared by every reconstructed
// approximator variant. An approximator without model parameters is
// untrained; a trained one holds model parameters whose shape was checked
// against its meta-parameters at construction time.
type FunctionApproximator interface {
	// Name returns the variant's tag.
	Name() string
	// IsTrained reports whether learned model parameters are present.
	IsTrained() bool
}

// Capabilities of the built-in variant set. The approximator capability is
// shared by all four variants; meta/model capabilities are per variant so a
// sub-object of the wrong variant fails with capability_mismatch rather than
// at assembly time.
const (
	CapApproximator fapickle.Capability = "functionApproximator"
	CapGaussian     fapickle.Capability = "gaussian"

	CapMetaRBFN  fapickle.Capability = "metaParameters/RBFN"
	CapModelRBFN fapickle.Capability = "modelParameters/RBFN"
	CapMetaLWR   fapickle.Capability = "metaParameters/LWR"
	CapModelLWR  fapickle.Capability = "modelParameters/LWR"
	CapMetaGMR   fapickle.Capability = "metaParameters/GMR"
	CapModelGMR  fapickle.Capability = "modelParameters/GMR"
	CapMetaGPR   fapickle.Capability = "metaParameters/GPR"
	CapModelGPR  fapickle.Capability = "modelParameters/GPR"
)

// shapeIssue builds a shape_mismatch at the given field path. Builders return
// these with paths relative to their own object; fapickle rebases them under
// the object's position in the document.
func shapeIssue(path, msg string, want, got int) error {
	return fapickle.Issues{fapickle.Issue{
		Path:    path,
		Code:    fapickle.CodeShapeMismatch,
		Message: msg,
		Params:  map[string]any{"want": want, "got": got},
	}}
}
