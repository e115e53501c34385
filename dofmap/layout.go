// Package dofmap provides the concrete degree-of-freedom maps of the
// kernel set. A dofmap is driven by a per-entity-dimension dof layout on
// the reference cell; local dofs are ordered entity-wise (all vertex dofs,
// then edge dofs, and so on), matching the node ordering of the nodal
// elements.
package dofmap

import (
	"fmt"

	"github.com/notargets/FEKernel/form"
	"github.com/notargets/FEKernel/reference"
)

// Layout is a dofmap defined by the number of dofs owned by each entity
// of every topological dimension, plus optional globally-supported dofs.
type Layout struct {
	shape         form.Shape
	dofsPerEntity [4]int
	globalSupport int
	sig           string
}

// NewLayout constructs a dofmap from an explicit per-dimension entity dof
// layout.
func NewLayout(shape form.Shape, dofsPerEntity [4]int, globalSupport int, signature string) *Layout {
	return &Layout{
		shape:         shape,
		dofsPerEntity: dofsPerEntity,
		globalSupport: globalSupport,
		sig:           signature,
	}
}

// NewLagrange constructs the dofmap paired with the scalar Lagrange
// element of the same shape and degree.
func NewLagrange(shape form.Shape, degree int) (*Layout, error) {
	if degree < 1 {
		return nil, fmt.Errorf("lagrange dofmap needs degree >= 1, got %d", degree)
	}
	var dpe [4]int
	switch shape {
	case form.Quadrilateral, form.Hexahedron:
		if degree != 1 {
			return nil, fmt.Errorf("lagrange dofmap on %v supports degree 1, got %d", shape, degree)
		}
		dpe[0] = 1
	case form.Interval, form.Triangle, form.Tetrahedron:
		dpe[0] = 1
		dpe[1] = degree - 1
		dpe[2] = (degree - 1) * (degree - 2) / 2
		dpe[3] = (degree - 1) * (degree - 2) * (degree - 3) / 6
	default:
		return nil, fmt.Errorf("lagrange dofmap not defined on %v", shape)
	}
	sig := fmt.Sprintf("DofMap('Lagrange', %v, %d)", shape, degree)
	return NewLayout(shape, dpe, 0, sig), nil
}

// NewRaviartThomas constructs the dofmap paired with the lowest-order
// Raviart-Thomas triangle: one dof per edge.
func NewRaviartThomas() *Layout {
	return NewLayout(form.Triangle, [4]int{0, 1, 0, 0}, 0,
		"DofMap('Raviart-Thomas', triangle, 1)")
}

// NewReal constructs a dofmap with a single globally-supported dof and no
// cell-local support (a global constant).
func NewReal(shape form.Shape) *Layout {
	return NewLayout(shape, [4]int{}, 1, fmt.Sprintf("DofMap('Real', %v, 0)", shape))
}

func (dm *Layout) Signature() string         { return dm.sig }
func (dm *Layout) NumGlobalSupportDofs() int { return dm.globalSupport }

func (dm *Layout) NumElementSupportDofs() (n int) {
	tdim := dm.shape.Dimension()
	for d := 0; d <= tdim; d++ {
		n += dm.dofsPerEntity[d] * reference.NumEntities(dm.shape, d)
	}
	return
}

func (dm *Layout) NumElementDofs() int {
	return dm.NumElementSupportDofs() + dm.globalSupport
}

func (dm *Layout) NumEntityDofs(d int) int {
	if d < 0 || d > dm.shape.Dimension() {
		return 0
	}
	return dm.dofsPerEntity[d]
}

func (dm *Layout) NumEntityClosureDofs(d int) (n int) {
	if d < 0 || d > dm.shape.Dimension() {
		return 0
	}
	for _, ent := range reference.EntityClosure(dm.shape, d, 0) {
		n += dm.dofsPerEntity[ent.Dim]
	}
	return
}

func (dm *Layout) NumFacetDofs() int {
	return dm.NumEntityClosureDofs(dm.shape.Dimension() - 1)
}

// entityOffset returns the local index of the first dof of dimension d.
func (dm *Layout) entityOffset(d int) (offset int) {
	for dd := 0; dd < d; dd++ {
		offset += dm.dofsPerEntity[dd] * reference.NumEntities(dm.shape, dd)
	}
	return
}

// TabulateDofs combines a per-dimension global numbering offset with the
// cell's global entity indices: all dofs attached to dimension-d entities
// are numbered before those of dimension d+1, and globally-supported dofs
// after everything else.
func (dm *Layout) TabulateDofs(dofs []int64, numGlobalEntities []int64, entityIndices [][]int64) {
	var (
		tdim  = dm.shape.Dimension()
		local = 0
		base  = int64(0)
	)
	for d := 0; d <= tdim; d++ {
		nd := dm.dofsPerEntity[d]
		if nd > 0 {
			for i := 0; i < reference.NumEntities(dm.shape, d); i++ {
				for c := 0; c < nd; c++ {
					dofs[local] = base + entityIndices[d][i]*int64(nd) + int64(c)
					local++
				}
			}
		}
		base += int64(dm.dofsPerEntity[d]) * numGlobalEntities[d]
	}
	for k := 0; k < dm.globalSupport; k++ {
		dofs[local] = base + int64(k)
		local++
	}
}

// TabulateEntityDofs writes the local indices of the dofs owned by entity
// (d, i).
func (dm *Layout) TabulateEntityDofs(dofs []int, d, i int) {
	nd := dm.dofsPerEntity[d]
	offset := dm.entityOffset(d) + i*nd
	for c := 0; c < nd; c++ {
		dofs[c] = offset + c
	}
}

// TabulateEntityClosureDofs writes the local indices of all dofs on the
// closure of entity (d, i), ordered by ascending entity dimension.
func (dm *Layout) TabulateEntityClosureDofs(dofs []int, d, i int) {
	n := 0
	for _, ent := range reference.EntityClosure(dm.shape, d, i) {
		nd := dm.dofsPerEntity[ent.Dim]
		dm.TabulateEntityDofs(dofs[n:n+nd], ent.Dim, ent.Index)
		n += nd
	}
}

// TabulateFacetDofs writes the local indices of all dofs on the closure of
// the given facet.
func (dm *Layout) TabulateFacetDofs(dofs []int, facet int) {
	dm.TabulateEntityClosureDofs(dofs, dm.shape.Dimension()-1, facet)
}

func (dm *Layout) NumSubDofmaps() int                { return 0 }
func (dm *Layout) CreateSubDofmap(i int) form.DofMap { return nil }

func (dm *Layout) Create() form.DofMap {
	return NewLayout(dm.shape, dm.dofsPerEntity, dm.globalSupport, dm.sig)
}
