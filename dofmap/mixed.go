package dofmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notargets/FEKernel/form"
)

// Mixed stacks sub-dofmaps with the same block ordering as the mixed
// element: sub-dofmap k's local dofs occupy one contiguous block after all
// blocks of sub-dofmaps before it. Global numbering stacks each
// sub-dofmap's full global index space in block order.
type Mixed struct {
	shape form.Shape
	subs  []form.DofMap
	sig   string
}

// NewMixed composes the given sub-dofmaps on a shared cell shape.
func NewMixed(shape form.Shape, subs ...form.DofMap) (*Mixed, error) {
	if len(subs) == 0 {
		return nil, errors.New("mixed dofmap needs at least one sub-dofmap")
	}
	sigs := make([]string, len(subs))
	for i, sub := range subs {
		sigs[i] = sub.Signature()
	}
	return &Mixed{
		shape: shape,
		subs:  subs,
		sig:   fmt.Sprintf("MixedDofMap(%s)", strings.Join(sigs, ", ")),
	}, nil
}

func (dm *Mixed) Signature() string { return dm.sig }

func (dm *Mixed) NumGlobalSupportDofs() (n int) {
	for _, sub := range dm.subs {
		n += sub.NumGlobalSupportDofs()
	}
	return
}

func (dm *Mixed) NumElementSupportDofs() (n int) {
	for _, sub := range dm.subs {
		n += sub.NumElementSupportDofs()
	}
	return
}

func (dm *Mixed) NumElementDofs() (n int) {
	for _, sub := range dm.subs {
		n += sub.NumElementDofs()
	}
	return
}

func (dm *Mixed) NumFacetDofs() (n int) {
	for _, sub := range dm.subs {
		n += sub.NumFacetDofs()
	}
	return
}

func (dm *Mixed) NumEntityDofs(d int) (n int) {
	for _, sub := range dm.subs {
		n += sub.NumEntityDofs(d)
	}
	return
}

func (dm *Mixed) NumEntityClosureDofs(d int) (n int) {
	for _, sub := range dm.subs {
		n += sub.NumEntityClosureDofs(d)
	}
	return
}

// globalSize computes one sub-dofmap's total global dof count for the
// given per-dimension global entity counts.
func globalSize(sub form.DofMap, shape form.Shape, numGlobalEntities []int64) int64 {
	var n int64
	for d := 0; d <= shape.Dimension(); d++ {
		n += int64(sub.NumEntityDofs(d)) * numGlobalEntities[d]
	}
	return n + int64(sub.NumGlobalSupportDofs())
}

func (dm *Mixed) TabulateDofs(dofs []int64, numGlobalEntities []int64, entityIndices [][]int64) {
	var (
		local  = 0
		offset = int64(0)
	)
	for _, sub := range dm.subs {
		n := sub.NumElementDofs()
		sub.TabulateDofs(dofs[local:local+n], numGlobalEntities, entityIndices)
		for k := local; k < local+n; k++ {
			dofs[k] += offset
		}
		local += n
		offset += globalSize(sub, dm.shape, numGlobalEntities)
	}
}

func (dm *Mixed) TabulateEntityDofs(dofs []int, d, i int) {
	dm.gather(dofs, func(sub form.DofMap, out []int) {
		sub.TabulateEntityDofs(out, d, i)
	}, func(sub form.DofMap) int { return sub.NumEntityDofs(d) })
}

func (dm *Mixed) TabulateEntityClosureDofs(dofs []int, d, i int) {
	dm.gather(dofs, func(sub form.DofMap, out []int) {
		sub.TabulateEntityClosureDofs(out, d, i)
	}, func(sub form.DofMap) int { return sub.NumEntityClosureDofs(d) })
}

func (dm *Mixed) TabulateFacetDofs(dofs []int, facet int) {
	dm.TabulateEntityClosureDofs(dofs, dm.shape.Dimension()-1, facet)
}

// gather collects per-sub local index subsets, shifting each sub's indices
// by its local block offset.
func (dm *Mixed) gather(dofs []int, tab func(form.DofMap, []int), count func(form.DofMap) int) {
	var (
		n           = 0
		blockOffset = 0
	)
	for _, sub := range dm.subs {
		nd := count(sub)
		tab(sub, dofs[n:n+nd])
		for k := n; k < n+nd; k++ {
			dofs[k] += blockOffset
		}
		n += nd
		blockOffset += sub.NumElementDofs()
	}
}

func (dm *Mixed) NumSubDofmaps() int { return len(dm.subs) }

func (dm *Mixed) CreateSubDofmap(i int) form.DofMap { return dm.subs[i].Create() }

func (dm *Mixed) Create() form.DofMap {
	subs := make([]form.DofMap, len(dm.subs))
	for i, sub := range dm.subs {
		subs[i] = sub.Create()
	}
	clone, _ := NewMixed(dm.shape, subs...)
	return clone
}
