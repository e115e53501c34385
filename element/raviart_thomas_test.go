package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaviartThomasReferenceBasis(t *testing.T) {
	el := NewRaviartThomas()
	assert.Equal(t, 3, el.SpaceDimension())
	assert.Equal(t, 1, el.ValueRank())
	assert.Equal(t, 2, el.ValueSize())
	assert.Equal(t, "Raviart-Thomas", el.Family())

	// phi_k(X) = X - v_k
	var (
		X      = []float64{0.25, 0.5}
		values = make([]float64, 3*2)
	)
	require.NoError(t, el.EvaluateReferenceBasis(values, 1, X))
	expected := []float64{
		0.25, 0.5, // phi_0 = X - (0,0)
		-0.75, 0.5, // phi_1 = X - (1,0)
		0.25, -0.5, // phi_2 = X - (0,1)
	}
	for i, e := range expected {
		assert.InDelta(t, e, values[i], 1.e-14)
	}
}

func TestRaviartThomasDivergence(t *testing.T) {
	// div(phi_k) = 2 for every basis function
	el := NewRaviartThomas()
	var (
		X      = []float64{0.2, 0.3}
		values = make([]float64, 3*2*2) // [dof][deriv][component]
	)
	require.NoError(t, el.EvaluateReferenceBasisDerivatives(values, 1, 1, X))
	for k := 0; k < 3; k++ {
		// d(comp 0)/dX0 + d(comp 1)/dX1
		div := values[k*4] + values[k*4+3]
		assert.InDelta(t, 2.0, div, 1.e-14)
	}
}

func TestRaviartThomasPiolaTransform(t *testing.T) {
	// Uniform scaling x = 2X: J = 2I, detJ = 4, so the contravariant
	// Piola map scales values by 2/4 = 1/2
	el := NewRaviartThomas()
	var (
		X    = []float64{0.25, 0.25}
		ref  = make([]float64, 3*2)
		phys = make([]float64, 3*2)
		J    = []float64{2, 0, 0, 2}
		detJ = []float64{4}
		K    = []float64{0.5, 0, 0, 0.5}
	)
	require.NoError(t, el.EvaluateReferenceBasis(ref, 1, X))
	require.NoError(t, el.TransformReferenceBasisDerivatives(phys, 0, 1, ref, X, J, detJ, K, 0))
	for i := range ref {
		assert.InDelta(t, ref[i]/2, phys[i], 1.e-14)
	}
}

func TestRaviartThomasMapDofs(t *testing.T) {
	el := NewRaviartThomas()
	var (
		vals   = []float64{1, -2, 3}
		mapped = make([]float64, 3)
	)
	el.MapDofs(mapped, vals, nil, 0, nil)
	assert.Equal(t, vals, mapped)
	el.MapDofs(mapped, vals, nil, 1, nil)
	assert.Equal(t, []float64{-1, 2, -3}, mapped)
}

func TestRaviartThomasDofCoordinates(t *testing.T) {
	el := NewRaviartThomas()
	X := make([]float64, 6)
	el.TabulateReferenceDofCoordinates(X)
	// Edge midpoints, edge k opposite vertex k
	expected := []float64{0.5, 0.5, 0, 0.5, 0.5, 0}
	for i, e := range expected {
		assert.InDelta(t, e, X[i], 1.e-14)
	}
}
