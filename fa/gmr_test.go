package fa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fapickle "github.com/dmpkit/fapickle"
	"github.com/dmpkit/fapickle/fa"
)

const gmrDoc = `{
	"py/object": "GMR",
	"metaParameters": {"py/object": "MetaParametersGMR", "numGaussians": 2},
	"modelParameters": {
		"py/object": "ModelParametersGMR",
		"priors": [0.6, 0.4],
		"gaussians": [
			{"py/object": "Gaussian", "mean": [0.0, 0.0], "covar": [[1.0, 0.0], [0.0, 1.0]]},
			{"py/object": "Gaussian", "mean": [1.0, 2.0], "covar": [[2.0, 0.1], [0.1, 2.0]]}
		]
	}
}`

func TestGMR_FromJSON(t *testing.T) {
	approx, err := fa.FromJSON([]byte(gmrDoc))
	require.NoError(t, err)

	gmr, ok := approx.(*fa.GMR)
	require.True(t, ok)
	assert.True(t, gmr.IsTrained())
	assert.Equal(t, 2, gmr.Meta.NumGaussians)
	require.Len(t, gmr.Model.Gaussians, 2)
	assert.Equal(t, 2, gmr.Model.Gaussians[1].Dim())
	assert.Equal(t, 0.4, gmr.Model.Priors.AtVec(1))
}

func TestGMR_BadCovarDeepPath(t *testing.T) {
	doc := `{
		"py/object": "GMR",
		"metaParameters": {"py/object": "MetaParametersGMR", "numGaussians": 3},
		"modelParameters": {
			"py/object": "ModelParametersGMR",
			"priors": [0.5, 0.3, 0.2],
			"gaussians": [
				{"py/object": "Gaussian", "mean": [0.0], "covar": [[1.0]]},
				{"py/object": "Gaussian", "mean": [0.0], "covar": [[1.0]]},
				{"py/object": "Gaussian", "mean": [0.0], "covar": [[1.0, 0.0]]}
			]
		}
	}`
	_, err := fa.FromJSON([]byte(doc))
	iss := mustIssues(t, err)
	assert.Equal(t, fapickle.CodeShapeMismatch, iss[0].Code)
	assert.Equal(t, "/modelParameters/gaussians/2/covar", iss[0].Path)
}

func TestGMR_PriorPerComponent(t *testing.T) {
	doc := `{
		"py/object": "GMR",
		"metaParameters": {"py/object": "MetaParametersGMR", "numGaussians": 1},
		"modelParameters": {
			"py/object": "ModelParametersGMR",
			"priors": [0.5, 0.5],
			"gaussians": [{"py/object": "Gaussian", "mean": [0.0], "covar": [[1.0]]}]
		}
	}`
	_, err := fa.FromJSON([]byte(doc))
	iss := mustIssues(t, err)
	assert.Equal(t, fapickle.CodeShapeMismatch, iss[0].Code)
	assert.Equal(t, "/modelParameters/gaussians", iss[0].Path)
}

func TestGMR_ComponentCountFixedByMeta(t *testing.T) {
	doc := `{
		"py/object": "GMR",
		"metaParameters": {"py/object": "MetaParametersGMR", "numGaussians": 3},
		"modelParameters": {
			"py/object": "ModelParametersGMR",
			"priors": [1.0],
			"gaussians": [{"py/object": "Gaussian", "mean": [0.0], "covar": [[1.0]]}]
		}
	}`
	_, err := fa.FromJSON([]byte(doc))
	iss := mustIssues(t, err)
	assert.Equal(t, fapickle.CodeShapeMismatch, iss[0].Code)
	assert.Equal(t, "/modelParameters/gaussians", iss[0].Path)
	assert.Equal(t, 3, iss[0].Params["want"])
	assert.Equal(t, 1, iss[0].Params["got"])
}

func TestGMR_MixedComponentDims(t *testing.T) {
	doc := `{
		"py/object": "GMR",
		"metaParameters": {"py/object": "MetaParametersGMR", "numGaussians": 2},
		"modelParameters": {
			"py/object": "ModelParametersGMR",
			"priors": [0.5, 0.5],
			"gaussians": [
				{"py/object": "Gaussian", "mean": [0.0], "covar": [[1.0]]},
				{"py/object": "Gaussian", "mean": [0.0, 1.0], "covar": [[1.0, 0.0], [0.0, 1.0]]}
			]
		}
	}`
	_, err := fa.FromJSON([]byte(doc))
	iss := mustIssues(t, err)
	assert.Equal(t, fapickle.CodeShapeMismatch, iss[0].Code)
	assert.Equal(t, "/modelParameters/gaussians/1", iss[0].Path)
}

func TestGMR_Untrained(t *testing.T) {
	doc := `{"py/object": "GMR", "metaParameters": {"py/object": "MetaParametersGMR", "numGaussians": 4}}`
	approx, err := fa.FromJSON([]byte(doc))
	require.NoError(t, err)
	assert.False(t, approx.IsTrained())
}
