package forms

import (
	"math"

	"github.com/notargets/FEKernel/dofmap"
	"github.com/notargets/FEKernel/element"
	"github.com/notargets/FEKernel/form"
	"github.com/notargets/FEKernel/geometry"
)

// NewMassForm builds the bilinear mass form on P1 triangles:
//
//	a(u, v) = integral_Omega u v dx
//
// The default cell kernel covers unmarked cells; a kernel scaled by two is
// registered on subdomain id 3.
func NewMassForm() form.Form {
	b := &base{
		sig:    "a(u, v) = u*v*dx, P1 triangle",
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
	b.elements = []func() form.FiniteElement{p1, p1}
	b.dofmaps = []func() form.DofMap{dm, dm}

	b.cell = form.IntegralTable[form.CellIntegral]{
		Factories: map[int]func() form.CellIntegral{
			3: func() form.CellIntegral { return newMassKernel(b, 2.0) },
		},
		Default: func() form.CellIntegral { return newMassKernel(b, 1.0) },
	}
	return b
}

// massKernel tabulates the P1 triangle mass matrix, scale * |detJ| *
// (1+delta_ij)/24, exact for the affine coordinate map.
type massKernel struct {
	scale float64
	cm    *geometry.Mapping
}

func newMassKernel(b *base, scale float64) *massKernel {
	return &massKernel{scale: scale, cm: b.coordinateMapping()}
}

func (k *massKernel) EnabledCoefficients() []bool { return []bool{} }

func (k *massKernel) TabulateTensor(A []float64, w [][]float64, coordinateDofs []float64, cellOrientation int) {
	var (
		x    [2]float64
		J    [4]float64
		detJ [1]float64
	)
	k.cm.ComputeMidpointGeometry(x[:], J[:], coordinateDofs)
	k.cm.ComputeJacobianDeterminants(detJ[:], 1, J[:], cellOrientation)
	scale := k.scale * math.Abs(detJ[0])
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m := 1.0
			if i == j {
				m = 2
			}
			A[i*3+j] = scale * m / 24
		}
	}
}
