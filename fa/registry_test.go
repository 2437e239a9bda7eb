package fa_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	fapickle "github.com/dmpkit/fapickle"
	"github.com/dmpkit/fapickle/fa"
)

func TestRegistry_CoversBuiltinVariants(t *testing.T) {
	reg := fa.Registry()
	for _, tag := range []string{
		"LWR", "RBFN", "GMR", "GPR", "Gaussian",
		"MetaParametersLWR", "ModelParametersLWR",
		"MetaParametersRBFN", "ModelParametersRBFN",
		"MetaParametersGMR", "ModelParametersGMR",
		"MetaParametersGPR", "ModelParametersGPR",
	} {
		_, ok := reg.Lookup(tag)
		assert.True(t, ok, "tag %s missing from built-in registry", tag)
	}
}

func TestFromJSON_MissingTag(t *testing.T) {
	_, err := fa.FromJSON([]byte(`{"centers": [0.0]}`))
	iss := mustIssues(t, err)
	assert.Equal(t, fapickle.CodeMissingTypeTag, iss[0].Code)
}

func TestFromJSON_UnknownType(t *testing.T) {
	_, err := fa.FromJSON([]byte(`{"py/object": "Unobtainium", "x": 1}`))
	iss := mustIssues(t, err)
	assert.Equal(t, fapickle.CodeUnknownType, iss[0].Code)
	assert.Equal(t, "Unobtainium", iss[0].Params["tag"])
}

func TestFromJSON_CapabilityAtRoot(t *testing.T) {
	// a bare Gaussian is registered but is not a function approximator
	_, err := fa.FromJSON([]byte(`{"py/object": "Gaussian", "mean": [0.0], "covar": [[1.0]]}`))
	iss := mustIssues(t, err)
	assert.Equal(t, fapickle.CodeCapabilityMismatch, iss[0].Code)
}

func TestFromJSON_Idempotent(t *testing.T) {
	first, err := fa.FromJSON([]byte(rbfnDoc))
	require.NoError(t, err)
	second, err := fa.FromJSON([]byte(rbfnDoc))
	require.NoError(t, err)

	a := first.(*fa.RBFN)
	b := second.(*fa.RBFN)
	assert.True(t, mat.Equal(a.Meta.Centers, b.Meta.Centers))
	assert.True(t, mat.Equal(a.Meta.Widths, b.Meta.Widths))
	assert.True(t, mat.Equal(a.Model.Weights, b.Model.Weights))
	// structurally equal but independently owned
	assert.NotSame(t, a.Meta, b.Meta)
	assert.NotSame(t, a.Model, b.Model)
	assert.NotSame(t, a.Model.Weights, b.Model.Weights)
}

func TestFromJSON_ConcurrentReconstruction(t *testing.T) {
	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			doc := rbfnDoc
			if i%2 == 1 {
				doc = gmrDoc
			}
			approx, err := fa.FromJSON([]byte(doc))
			if err == nil && !approx.IsTrained() {
				err = assert.AnError
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		assert.NoError(t, err, "worker %d", i)
	}
}

func TestFromYAML_RBFN(t *testing.T) {
	doc := []byte(`
py/object: RBFN
metaParameters:
  py/object: MetaParametersRBFN
  centers: [0, 1, 2]
  widths: [0.5, 0.5, 0.5]
modelParameters:
  py/object: ModelParametersRBFN
  weights: [1, -1, 0.5]
`)
	approx, err := fa.FromYAML(doc)
	require.NoError(t, err)
	require.IsType(t, &fa.RBFN{}, approx)
	assert.True(t, approx.IsTrained())
	assert.Equal(t, 2.0, approx.(*fa.RBFN).Meta.Centers.AtVec(2))
}

func TestReconstruct_CustomRegistryExtension(t *testing.T) {
	type constant struct{ value float64 }

	reg, err := fa.Registry().With(fapickle.Entry{
		Tag:        "Constant",
		Capability: fa.CapApproximator,
		Contract: fapickle.Contract{
			"value": {Kind: fapickle.FieldNumber},
		},
		Build: func(f fapickle.Fields) (any, error) {
			return &constant{value: f.Number("value")}, nil
		},
	})
	require.NoError(t, err)

	v, err := fapickle.FromBytes([]byte(`{"py/object": "Constant", "value": 7.5}`))
	require.NoError(t, err)
	obj, err := fapickle.Reconstruct(v, fa.CapApproximator, fapickle.Opt{Registry: reg})
	require.NoError(t, err)
	assert.Equal(t, 7.5, obj.(*constant).value)
}

func TestFromJSON_StrictFields(t *testing.T) {
	doc := `{
		"py/object": "RBFN",
		"metaParameters": {"py/object": "MetaParametersRBFN", "py/id": 3, "centers": [0.0], "widths": [1.0], "legacy": true}
	}`
	// lenient by default
	_, err := fa.FromJSON([]byte(doc))
	require.NoError(t, err)
	// strict mode flags the stray field, not the reserved id key
	_, err = fa.FromJSON([]byte(doc), fapickle.Opt{StrictFields: true})
	iss := mustIssues(t, err)
	assert.Equal(t, fapickle.CodeUnknownField, iss[0].Code)
	assert.Equal(t, "/metaParameters/legacy", iss[0].Path)
}
