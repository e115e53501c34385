package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/FEKernel/form"
)

func TestSourceFormShape(t *testing.T) {
	f := NewSourceForm()
	assert.Equal(t, 1, f.Rank())
	assert.Equal(t, 2, f.NumCoefficients())
	// g at original position 0 was eliminated; f and h survive
	assert.Equal(t, 1, f.OriginalCoefficientPosition(0))
	assert.Equal(t, 2, f.OriginalCoefficientPosition(1))
	assert.True(t, f.HasCellIntegrals())
	assert.True(t, f.HasVertexIntegrals())
	assert.True(t, f.HasCustomIntegrals())
	assert.False(t, f.HasExteriorFacetIntegrals())
}

func TestLoadKernelValues(t *testing.T) {
	f := NewSourceForm()
	k := f.CreateDefaultCellIntegral()
	require.NotNil(t, k)
	// Only f is read; h's buffer may be absent
	assert.Equal(t, []bool{true, false}, k.EnabledCoefficients())

	var (
		A = make([]float64, 3)
		w = [][]float64{{1, 1, 1}, nil}
	)
	k.TabulateTensor(A, w, unitTriangleDofs, 0)
	// Constant unit source: each entry is the basis integral 1/6
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.0/6, A[i], 1.e-14)
	}

	// Linear source f = x picks up the exact P1 moments
	k.TabulateTensor(A, [][]float64{{0, 1, 0}, nil}, unitTriangleDofs, 0)
	assert.InDelta(t, 1.0/24, A[0], 1.e-14)
	assert.InDelta(t, 1.0/12, A[1], 1.e-14)
	assert.InDelta(t, 1.0/24, A[2], 1.e-14)
}

func TestPointLoadKernel(t *testing.T) {
	f := NewSourceForm()
	k := f.CreateDefaultVertexIntegral()
	require.NotNil(t, k)
	assert.Equal(t, []bool{false, true}, k.EnabledCoefficients())

	var (
		A = make([]float64, 3)
		w = [][]float64{nil, {2, 5, -3}}
	)
	k.TabulateTensor(A, w, unitTriangleDofs, 1, 0)
	assert.Equal(t, []float64{0, 5, 0}, A)

	k.TabulateTensor(A, w, unitTriangleDofs, 2, 0)
	assert.Equal(t, []float64{0, 0, -3}, A)
}

func TestQuadratureLoadKernel(t *testing.T) {
	f := NewSourceForm()
	k := f.CreateDefaultCustomIntegral()
	require.NotNil(t, k)
	assert.Equal(t, []bool{true, false}, k.EnabledCoefficients())

	// One-point midpoint rule, exact for the constant source
	var (
		A      = make([]float64, 3)
		w      = [][]float64{{1, 1, 1}, nil}
		points = []float64{1.0 / 3, 1.0 / 3}
		wq     = []float64{0.5}
	)
	k.TabulateTensor(A, w, unitTriangleDofs, 1, points, wq, nil, 0)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.0/6, A[i], 1.e-14)
	}

	// A three-point rule reproduces the exact P1 load vector
	var (
		points3 = []float64{0.5, 0, 0, 0.5, 0.5, 0.5}
		wq3     = []float64{1.0 / 6, 1.0 / 6, 1.0 / 6}
	)
	k.TabulateTensor(A, w, unitTriangleDofs, 3, points3, wq3, nil, 0)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.0/6, A[i], 1.e-14)
	}
}

func TestSourceDispatchWithoutRegistrations(t *testing.T) {
	f := NewSourceForm()
	assert.Zero(t, f.MaxCellSubdomainID())
	assert.Zero(t, f.MaxVertexSubdomainID())

	// Every id falls through to the default kernel
	for _, id := range []int{0, 5} {
		assert.NotNil(t, form.SelectCellIntegral(f, id))
		assert.NotNil(t, form.SelectVertexIntegral(f, id))
		assert.NotNil(t, form.SelectCustomIntegral(f, id))
	}
	assert.Nil(t, form.SelectExteriorFacetIntegral(f, 0))
}
