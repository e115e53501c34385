package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/FEKernel/form"
)

// Unit right triangle at the origin: the coordinate map is the identity.
var unitTriangleDofs = []float64{0, 0, 1, 0, 0, 1}

func TestUnitTriangleGeometry(t *testing.T) {
	cm, err := NewMapping(form.Triangle, 1, 2)
	require.NoError(t, err)

	var (
		X    = []float64{0.25, 0.25}
		x    = make([]float64, 2)
		J    = make([]float64, 4)
		detJ = make([]float64, 1)
		K    = make([]float64, 4)
	)
	cm.ComputeGeometry(x, J, detJ, K, 1, X, unitTriangleDofs, 0)

	assert.InDelta(t, 0.25, x[0], 1.e-14)
	assert.InDelta(t, 0.25, x[1], 1.e-14)
	for i, e := range []float64{1, 0, 0, 1} {
		assert.InDelta(t, e, J[i], 1.e-14)
		assert.InDelta(t, e, K[i], 1.e-14)
	}
	assert.InDelta(t, 1.0, detJ[0], 1.e-14)
}

func TestAffineRoundTrip(t *testing.T) {
	cm, err := NewMapping(form.Triangle, 1, 2)
	require.NoError(t, err)

	// A skewed triangle
	dofs := []float64{1, 1, 3, 1.5, 1.2, 4}
	var (
		X    = []float64{0.3, 0.2, 0.1, 0.7, 0, 0}
		x    = make([]float64, 6)
		Xrec = make([]float64, 6)
	)
	cm.ComputePhysicalCoordinates(x, 3, X, dofs)
	require.NoError(t, cm.ComputeReferenceCoordinates(Xrec, 3, x, dofs, 0))
	for i := range X {
		assert.InDelta(t, X[i], Xrec[i], 1.e-10)
	}
}

func TestBilinearNewtonRoundTrip(t *testing.T) {
	cm, err := NewMapping(form.Quadrilateral, 1, 2)
	require.NoError(t, err)

	// A non-affine (bilinear) quadrilateral
	dofs := []float64{0, 0, 2, 0.2, -0.1, 1, 2.5, 1.8}
	var (
		X    = []float64{0.3, 0.4, 0.75, 0.1, 0.5, 0.5}
		x    = make([]float64, 6)
		Xrec = make([]float64, 6)
	)
	cm.ComputePhysicalCoordinates(x, 3, X, dofs)
	require.NoError(t, cm.ComputeReferenceCoordinates(Xrec, 3, x, dofs, 0))
	for i := range X {
		assert.InDelta(t, X[i], Xrec[i], 1.e-9)
	}
}

func TestNewtonNonConvergence(t *testing.T) {
	cm, err := NewMapping(form.Quadrilateral, 1, 2)
	require.NoError(t, err)

	// A fully collapsed cell cannot be inverted
	dofs := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	var (
		x = []float64{3, 4}
		X = make([]float64, 2)
	)
	err = cm.ComputeReferenceCoordinates(X, 1, x, dofs, 0)
	require.ErrorIs(t, err, form.ErrNonConvergence)
}

func TestManifoldPseudoGeometry(t *testing.T) {
	// Unit triangle embedded in the z = 0 plane of 3-space
	cm, err := NewMapping(form.Triangle, 1, 3)
	require.NoError(t, err)

	dofs := []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}
	var (
		X    = []float64{0.25, 0.25}
		J    = make([]float64, 6)
		detJ = make([]float64, 1)
		K    = make([]float64, 6)
	)
	cm.ComputeJacobians(J, 1, X, dofs)
	for i, e := range []float64{1, 0, 0, 1, 0, 0} {
		assert.InDelta(t, e, J[i], 1.e-14)
	}

	cm.ComputeJacobianDeterminants(detJ, 1, J, 0)
	assert.InDelta(t, 1.0, detJ[0], 1.e-14)

	// A flipped cell negates the pseudo determinant
	cm.ComputeJacobianDeterminants(detJ, 1, J, 1)
	assert.InDelta(t, -1.0, detJ[0], 1.e-14)

	// K J = I on the reference tangent space
	cm.ComputeJacobianInverses(K, 1, J, detJ)
	var KJ [4]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for a := 0; a < 3; a++ {
				KJ[i*2+j] += K[i*3+a] * J[a*2+j]
			}
		}
	}
	for i, e := range []float64{1, 0, 0, 1} {
		assert.InDelta(t, e, KJ[i], 1.e-12)
	}
}

func TestManifoldScaledPseudoDeterminant(t *testing.T) {
	// Triangle scaled by 3 in a tilted plane keeps detJ = area scale
	cm, err := NewMapping(form.Triangle, 1, 3)
	require.NoError(t, err)

	dofs := []float64{0, 0, 0, 3, 0, 0, 0, 0, 3}
	var (
		X    = []float64{0.25, 0.25}
		J    = make([]float64, 6)
		detJ = make([]float64, 1)
	)
	cm.ComputeJacobians(J, 1, X, dofs)
	cm.ComputeJacobianDeterminants(detJ, 1, J, 0)
	assert.InDelta(t, 9.0, detJ[0], 1.e-12)
}

func TestInverseConsistencySquare(t *testing.T) {
	cm, err := NewMapping(form.Triangle, 1, 2)
	require.NoError(t, err)

	dofs := []float64{0.5, -1, 2.5, 0, 1, 3}
	var (
		X    = []float64{0.2, 0.2}
		J    = make([]float64, 4)
		detJ = make([]float64, 1)
		K    = make([]float64, 4)
	)
	cm.ComputeJacobians(J, 1, X, dofs)
	cm.ComputeJacobianDeterminants(detJ, 1, J, 0)
	cm.ComputeJacobianInverses(K, 1, J, detJ)

	// detJ matches the closed-form 2x2 determinant
	assert.InDelta(t, J[0]*J[3]-J[1]*J[2], detJ[0], 1.e-12)

	var KJ [4]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for a := 0; a < 2; a++ {
				KJ[i*2+j] += K[i*2+a] * J[a*2+j]
			}
		}
	}
	for i, e := range []float64{1, 0, 0, 1} {
		assert.InDelta(t, e, KJ[i], 1.e-12)
	}
}

func TestCompositeMatchesPrimitives(t *testing.T) {
	cm, err := NewMapping(form.Quadrilateral, 1, 2)
	require.NoError(t, err)

	dofs := []float64{0, 0, 2, 0.2, -0.1, 1, 2.5, 1.8}
	var (
		X     = []float64{0.3, 0.4, 0.6, 0.1}
		np    = 2
		x     = make([]float64, np*2)
		J     = make([]float64, np*4)
		detJ  = make([]float64, np)
		K     = make([]float64, np*4)
		x2    = make([]float64, np*2)
		J2    = make([]float64, np*4)
		detJ2 = make([]float64, np)
		K2    = make([]float64, np*4)
	)
	cm.ComputeGeometry(x, J, detJ, K, np, X, dofs, 0)

	cm.ComputePhysicalCoordinates(x2, np, X, dofs)
	cm.ComputeJacobians(J2, np, X, dofs)
	cm.ComputeJacobianDeterminants(detJ2, np, J2, 0)
	cm.ComputeJacobianInverses(K2, np, J2, detJ2)

	assert.Equal(t, x2, x)
	assert.Equal(t, J2, J)
	assert.Equal(t, detJ2, detJ)
	assert.Equal(t, K2, K)
}

func TestMidpointGeometry(t *testing.T) {
	cm, err := NewMapping(form.Triangle, 1, 2)
	require.NoError(t, err)

	var (
		x = make([]float64, 2)
		J = make([]float64, 4)
	)
	cm.ComputeMidpointGeometry(x, J, unitTriangleDofs)
	assert.InDelta(t, 1.0/3, x[0], 1.e-14)
	assert.InDelta(t, 1.0/3, x[1], 1.e-14)
	for i, e := range []float64{1, 0, 0, 1} {
		assert.InDelta(t, e, J[i], 1.e-14)
	}
}

func TestReferenceGeometryComposite(t *testing.T) {
	cm, err := NewMapping(form.Triangle, 1, 2)
	require.NoError(t, err)

	dofs := []float64{1, 1, 3, 1.5, 1.2, 4}
	var (
		Xin  = []float64{0.3, 0.2}
		x    = make([]float64, 2)
		X    = make([]float64, 2)
		J    = make([]float64, 4)
		detJ = make([]float64, 1)
		K    = make([]float64, 4)
	)
	cm.ComputePhysicalCoordinates(x, 1, Xin, dofs)
	require.NoError(t, cm.ComputeReferenceGeometry(X, J, detJ, K, 1, x, dofs, 0))
	assert.InDelta(t, Xin[0], X[0], 1.e-10)
	assert.InDelta(t, Xin[1], X[1], 1.e-10)

	var KJ [4]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for a := 0; a < 2; a++ {
				KJ[i*2+j] += K[i*2+a] * J[a*2+j]
			}
		}
	}
	for i, e := range []float64{1, 0, 0, 1} {
		assert.InDelta(t, e, KJ[i], 1.e-12)
	}
}

func TestCoordinateFactories(t *testing.T) {
	cm, err := NewMapping(form.Triangle, 2, 2)
	require.NoError(t, err)

	el := cm.CreateCoordinateElement()
	require.NotNil(t, el)
	assert.Equal(t, 12, el.SpaceDimension()) // 2 components x 6 P2 dofs
	assert.Equal(t, 2, el.ValueSize())

	dm := cm.CreateCoordinateDofmap()
	require.NotNil(t, dm)
	assert.Equal(t, el.SpaceDimension(), dm.NumElementDofs())

	clone := cm.Create()
	require.NotNil(t, clone)
	assert.Equal(t, cm.Signature(), clone.Signature())
}
