package dofmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/FEKernel/form"
)

func newP1P2(t *testing.T) *Mixed {
	t.Helper()
	p1, err := NewLagrange(form.Triangle, 1)
	require.NoError(t, err)
	p2, err := NewLagrange(form.Triangle, 2)
	require.NoError(t, err)
	dm, err := NewMixed(form.Triangle, p1, p2)
	require.NoError(t, err)
	return dm
}

func TestMixedCounts(t *testing.T) {
	dm := newP1P2(t)
	assert.Equal(t, 9, dm.NumElementDofs())
	assert.Equal(t, 9, dm.NumElementSupportDofs())
	assert.Zero(t, dm.NumGlobalSupportDofs())
	assert.Equal(t, 5, dm.NumFacetDofs())
	assert.Equal(t, 2, dm.NumEntityDofs(0))
	assert.Equal(t, 1, dm.NumEntityDofs(1))
	assert.Equal(t, 2, dm.NumSubDofmaps())

	sub := dm.CreateSubDofmap(1)
	require.NotNil(t, sub)
	assert.Equal(t, 6, sub.NumElementDofs())
}

// Global numbering stacks each sub-dofmap's full global index space, so the
// two blocks can never collide.
func TestMixedTabulateDofsStacked(t *testing.T) {
	dm := newP1P2(t)
	numGlobal := []int64{4, 5, 2}
	cell := [][]int64{{0, 1, 2}, {0, 1, 2}, {0}}

	dofs := make([]int64, 9)
	dm.TabulateDofs(dofs, numGlobal, cell)

	// P1 block first; P2 block offset by the P1 global size (4 vertices)
	assert.Equal(t, []int64{0, 1, 2}, dofs[:3])
	assert.Equal(t, []int64{4, 5, 6, 8, 9, 10}, dofs[3:])
}

// Local indices from entity tabulation shift by the sub block offset.
func TestMixedEntityDofsBlocked(t *testing.T) {
	dm := newP1P2(t)

	// Vertex 1 owns P1 dof 1 and P2 dof 3+1
	dofs := make([]int, 2)
	dm.TabulateEntityDofs(dofs, 0, 1)
	assert.Equal(t, []int{1, 4}, dofs)

	// Edge 0 owns only the P2 interior dof 3+3
	dofs = dofs[:1]
	dm.TabulateEntityDofs(dofs, 1, 0)
	assert.Equal(t, []int{6}, dofs)
}

func TestMixedFacetDofs(t *testing.T) {
	dm := newP1P2(t)
	dofs := make([]int, dm.NumFacetDofs())
	dm.TabulateFacetDofs(dofs, 0)
	// P1 closure {1, 2} then P2 closure {1, 2, 3} shifted by 3
	assert.Equal(t, []int{1, 2, 4, 5, 6}, dofs)
}

func TestMixedWithGlobalSupport(t *testing.T) {
	p1, err := NewLagrange(form.Triangle, 1)
	require.NoError(t, err)
	dm, err := NewMixed(form.Triangle, p1, NewReal(form.Triangle))
	require.NoError(t, err)

	assert.Equal(t, 4, dm.NumElementDofs())
	assert.Equal(t, 1, dm.NumGlobalSupportDofs())

	numGlobal := []int64{4, 5, 2}
	cell := [][]int64{{1, 3, 2}, {3, 4, 2}, {1}}
	dofs := make([]int64, 4)
	dm.TabulateDofs(dofs, numGlobal, cell)
	// The single real dof lands after the 4 vertex dofs of the P1 block
	assert.Equal(t, []int64{1, 3, 2, 4}, dofs)
}

func TestMixedCreate(t *testing.T) {
	dm := newP1P2(t)
	clone := dm.Create()
	require.NotNil(t, clone)
	assert.Equal(t, dm.Signature(), clone.Signature())
	assert.Equal(t, dm.NumElementDofs(), clone.NumElementDofs())
}

func TestMixedEmpty(t *testing.T) {
	_, err := NewMixed(form.Triangle)
	require.Error(t, err)
}
