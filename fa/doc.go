package fa

// Package fa supplies the built-in function-approximator variant set for
// fapickle: locally weighted regression (LWR), radial basis function networks
// (RBFN), Gaussian mixture regression (GMR), and Gaussian process regression
// (GPR), each split into training-time meta-parameters and learned model
// parameters.
//
// The package owns no prediction or training math; reconstructed values carry
// parameters for downstream consumers. Registry() exposes the immutable entry
// set; Reconstruct/FromJSON/FromYAML are the convenience entry points.
