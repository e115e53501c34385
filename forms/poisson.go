package forms

import (
	"math"

	"github.com/notargets/FEKernel/dofmap"
	"github.com/notargets/FEKernel/element"
	"github.com/notargets/FEKernel/form"
	"github.com/notargets/FEKernel/geometry"
	"github.com/notargets/FEKernel/reference"
)

// NewPoissonForm builds the bilinear conductivity form on P1 triangles:
//
//	a(u, v; kappa) = integral_Omega kappa grad(u) . grad(v) dx
//	              + integral_dOmega u v ds            (boundary mass)
//	              + integral_Gamma  [u] [v] dS        (facet jump penalty)
//
// with one P1 coefficient kappa, evaluated at the cell midpoint.
func NewPoissonForm() form.Form {
	b := &base{
		sig:    "a(u, v; kappa) = kappa*dot(grad(u), grad(v))*dx + u*v*ds + jump(u)*jump(v)*dS, P1 triangle",
		rank:   2,
		shape:  form.Triangle,
		degree: 1,
		gdim:   2,
	}
	p1 := func() form.FiniteElement {
		el, _ := element.NewLagrange(form.Triangle, 1)
		return el
	}
	dm := func() form.DofMap {
		d, _ := dofmap.NewLagrange(form.Triangle, 1)
		return d
	}
	// Two arguments plus the kappa coefficient
	b.elements = []func() form.FiniteElement{p1, p1, p1}
	b.dofmaps = []func() form.DofMap{dm, dm, dm}

	b.cell = form.IntegralTable[form.CellIntegral]{
		Default: func() form.CellIntegral { return newStiffnessKernel(b) },
	}
	b.extFacet = form.IntegralTable[form.ExteriorFacetIntegral]{
		Default: func() form.ExteriorFacetIntegral { return &boundaryMassKernel{} },
	}
	b.intFacet = form.IntegralTable[form.InteriorFacetIntegral]{
		Default: func() form.InteriorFacetIntegral { return &jumpPenaltyKernel{} },
	}
	return b
}

// stiffnessKernel tabulates kappa * |detJ|/2 * grad(phi_i).grad(phi_j)
// using the element's derivative transform; exact for P1 since the
// gradients are constant.
type stiffnessKernel struct {
	el form.FiniteElement
	cm *geometry.Mapping
}

func newStiffnessKernel(b *base) *stiffnessKernel {
	return &stiffnessKernel{el: b.elements[0](), cm: b.coordinateMapping()}
}

func (k *stiffnessKernel) EnabledCoefficients() []bool { return []bool{true} }

func (k *stiffnessKernel) TabulateTensor(A []float64, w [][]float64, coordinateDofs []float64, cellOrientation int) {
	var (
		X          = reference.Midpoint(form.Triangle)
		x          [2]float64
		J          [4]float64
		detJ       [1]float64
		K          [4]float64
		refDerivs  [6]float64 // [1 point][3 dofs][2 derivs][1 component]
		physDerivs [6]float64
	)
	k.cm.ComputeGeometry(x[:], J[:], detJ[:], K[:], 1, X, coordinateDofs, cellOrientation)
	_ = k.el.EvaluateReferenceBasisDerivatives(refDerivs[:], 1, 1, X)
	_ = k.el.TransformReferenceBasisDerivatives(physDerivs[:], 1, 1,
		refDerivs[:], X, J[:], detJ[:], K[:], cellOrientation)

	kappa := (w[0][0] + w[0][1] + w[0][2]) / 3
	scale := kappa * math.Abs(detJ[0]) / 2
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dot := physDerivs[2*i]*physDerivs[2*j] + physDerivs[2*i+1]*physDerivs[2*j+1]
			A[i*3+j] = scale * dot
		}
	}
}

// boundaryMassKernel tabulates the facet mass matrix L * (1+delta)/6 over
// the two vertex dofs of the boundary facet.
type boundaryMassKernel struct{}

func (k *boundaryMassKernel) EnabledCoefficients() []bool { return []bool{false} }

func (k *boundaryMassKernel) TabulateTensor(A []float64, w [][]float64, coordinateDofs []float64, facet, cellOrientation int) {
	for i := range A[:9] {
		A[i] = 0
	}
	fv := reference.FacetVertices(form.Triangle, facet)
	L := edgeLength(coordinateDofs, fv[0], fv[1])
	for a, i := range fv {
		for c, j := range fv {
			m := 1.0
			if a == c {
				m = 2
			}
			A[i*3+j] = L * m / 6
		}
	}
}

// jumpPenaltyKernel penalizes the jump of the facet-midpoint value across
// an interior facet. The 6x6 macro tensor is L * b b^T where b holds
// +-1/2 on the facet dofs of the two adjacent cells.
type jumpPenaltyKernel struct{}

func (k *jumpPenaltyKernel) EnabledCoefficients() []bool { return []bool{false} }

func (k *jumpPenaltyKernel) TabulateTensor(A []float64, w [][]float64,
	coordinateDofs0, coordinateDofs1 []float64,
	facet0, facet1, cellOrientation0, cellOrientation1 int) {

	var b [6]float64
	for _, v := range reference.FacetVertices(form.Triangle, facet0) {
		b[v] = 0.5
	}
	for _, v := range reference.FacetVertices(form.Triangle, facet1) {
		b[3+v] = -0.5
	}
	L := edgeLength(coordinateDofs0,
		reference.FacetVertices(form.Triangle, facet0)[0],
		reference.FacetVertices(form.Triangle, facet0)[1])
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			A[i*6+j] = L * b[i] * b[j]
		}
	}
}

// edgeLength returns the physical distance between coordinate dofs a and b
// (2D coordinate buffers).
func edgeLength(coordinateDofs []float64, a, b int) float64 {
	dx := coordinateDofs[2*a] - coordinateDofs[2*b]
	dy := coordinateDofs[2*a+1] - coordinateDofs[2*b+1]
	return math.Hypot(dx, dy)
}
