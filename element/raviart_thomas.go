package element

import (
	"github.com/notargets/FEKernel/form"
	"github.com/notargets/FEKernel/reference"
)

// RaviartThomas is the lowest-order Raviart-Thomas element on the
// triangle: three vector-valued basis functions, one per edge, with
// edge-flux dof functionals. Reference basis phi_k(X) = X - v_k where v_k
// is the vertex opposite edge k, normalized to unit flux across edge k.
// Values map contravariantly: phi = (1/detJ) J phi_ref (Piola transform).
type RaviartThomas struct{}

// NewRaviartThomas constructs the degree-1 Raviart-Thomas triangle.
func NewRaviartThomas() *RaviartThomas { return &RaviartThomas{} }

func (el *RaviartThomas) Signature() string {
	return "FiniteElement('Raviart-Thomas', triangle, 1)"
}

func (el *RaviartThomas) CellShape() form.Shape             { return form.Triangle }
func (el *RaviartThomas) TopologicalDimension() int         { return 2 }
func (el *RaviartThomas) GeometricDimension() int           { return 2 }
func (el *RaviartThomas) SpaceDimension() int               { return 3 }
func (el *RaviartThomas) ValueRank() int                    { return 1 }
func (el *RaviartThomas) ValueDimension(i int) int          { return 2 }
func (el *RaviartThomas) ValueSize() int                    { return 2 }
func (el *RaviartThomas) ReferenceValueRank() int           { return 1 }
func (el *RaviartThomas) ReferenceValueDimension(i int) int { return 2 }
func (el *RaviartThomas) ReferenceValueSize() int           { return 2 }
func (el *RaviartThomas) Degree() int                       { return 1 }
func (el *RaviartThomas) Family() string                    { return "Raviart-Thomas" }
func (el *RaviartThomas) NumSubElements() int               { return 0 }

func (el *RaviartThomas) CreateSubElement(i int) form.FiniteElement { return nil }
func (el *RaviartThomas) Create() form.FiniteElement                { return NewRaviartThomas() }

func (el *RaviartThomas) EvaluateReferenceBasis(values []float64, numPoints int, X []float64) error {
	return el.EvaluateReferenceBasisDerivatives(values, 0, numPoints, X)
}

func (el *RaviartThomas) EvaluateReferenceBasisDerivatives(values []float64, order, numPoints int, X []float64) error {
	var (
		verts   = reference.VertexCoordinates(form.Triangle)
		nd      = numDerivatives(2, order)
		outside = false
	)
	for i := range values[:numPoints*3*nd*2] {
		values[i] = 0
	}
	for p := 0; p < numPoints; p++ {
		Xp := X[2*p : 2*p+2]
		if !insideReference(form.Triangle, Xp) {
			outside = true
		}
		for k := 0; k < 3; k++ {
			base := ((p*3 + k) * nd) * 2
			switch order {
			case 0:
				values[base] = Xp[0] - verts[k][0]
				values[base+1] = Xp[1] - verts[k][1]
			case 1:
				// dphi_a/dX_j = delta_aj for every basis function
				values[base] = 1     // deriv d/dX0, component 0
				values[base+2+1] = 1 // deriv d/dX1, component 1
			}
			// All higher derivatives vanish
		}
	}
	if outside {
		return form.ErrPointOutsideDomain
	}
	return nil
}

func (el *RaviartThomas) TransformReferenceBasisDerivatives(values []float64, order, numPoints int,
	referenceValues, X, J, detJ, K []float64, cellOrientation int) error {
	// The Piola map is only defined for gdim == tdim == 2 here
	nd := numDerivatives(2, order)
	// Chain rule on the derivative indices, then the contravariant Piola
	// map (1/detJ) J on the value components at each point
	transformIdentityDerivatives(values, referenceValues, K,
		order, numPoints, 3, 2, 2, 2)
	var piola [2]float64
	for p := 0; p < numPoints; p++ {
		jp := J[p*4 : (p+1)*4]
		scale := 1 / detJ[p]
		for dof := 0; dof < 3; dof++ {
			for r := 0; r < nd; r++ {
				v := values[((p*3+dof)*nd+r)*2 : ((p*3+dof)*nd+r+1)*2]
				piola[0] = scale * (jp[0]*v[0] + jp[1]*v[1])
				piola[1] = scale * (jp[2]*v[0] + jp[3]*v[1])
				v[0], v[1] = piola[0], piola[1]
			}
		}
	}
	return nil
}

// MapDofs applies the edge-flux orientation correction: a flipped cell
// reverses all edge normals, so every dof changes sign.
func (el *RaviartThomas) MapDofs(values, vals, coordinateDofs []float64, cellOrientation int, cm form.CoordinateMapping) {
	sign := 1.0
	if cellOrientation == 1 {
		sign = -1
	}
	for i := 0; i < 3; i++ {
		values[i] = sign * vals[i]
	}
}

func (el *RaviartThomas) TabulateReferenceDofCoordinates(X []float64) {
	verts := reference.VertexCoordinates(form.Triangle)
	for k := 0; k < 3; k++ {
		ev := reference.EntityVertices(form.Triangle, 1, k)
		a, b := verts[ev[0]], verts[ev[1]]
		X[2*k] = (a[0] + b[0]) / 2
		X[2*k+1] = (a[1] + b[1]) / 2
	}
}
