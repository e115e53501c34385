// Package element provides the concrete finite elements of the kernel set:
// nodal Lagrange elements, vector and mixed compositions, and a
// lowest-order Raviart-Thomas element. Nodal bases are constructed by
// inverting the monomial Vandermonde matrix at the element's node lattice.
package element

import (
	"fmt"

	"github.com/notargets/gocfd/utils"

	"github.com/notargets/FEKernel/form"
)

// Lagrange is a scalar nodal Lagrange element. Supported cells and
// degrees: interval (any degree >= 1), triangle and tetrahedron (degrees 1
// and 2), quadrilateral and hexahedron (degree 1).
type Lagrange struct {
	shape     form.Shape
	degree    int
	nodes     [][]float64
	exponents [][]int
	// coeffs[i][m] expands basis function i over the monomial set
	coeffs utils.Matrix
	sig    string
}

// NewLagrange constructs a scalar Lagrange element on the given cell.
func NewLagrange(shape form.Shape, degree int) (*Lagrange, error) {
	if degree < 1 {
		return nil, fmt.Errorf("lagrange element needs degree >= 1, got %d", degree)
	}
	switch shape {
	case form.Interval:
	case form.Triangle, form.Tetrahedron:
		if degree > 2 {
			return nil, fmt.Errorf("lagrange %v supports degree <= 2, got %d", shape, degree)
		}
	case form.Quadrilateral, form.Hexahedron:
		if degree != 1 {
			return nil, fmt.Errorf("lagrange %v supports degree 1, got %d", shape, degree)
		}
	default:
		return nil, fmt.Errorf("lagrange element not defined on %v", shape)
	}

	nodes := lagrangeNodes(shape, degree)
	exps := monomialSet(shape, degree)
	if len(nodes) != len(exps) {
		return nil, fmt.Errorf("node count %d does not match monomial count %d",
			len(nodes), len(exps))
	}

	// Vandermonde V[i][m] = mono_m(node_i); basis coefficients are rows of
	// its inverse transpose so that phi_j(node_i) = delta_ij
	n := len(nodes)
	V := utils.NewMatrix(n, n)
	for i, node := range nodes {
		for m, e := range exps {
			V.Set(i, m, evalMonomial(e, nil, node))
		}
	}
	Vinv, err := V.Inverse()
	if err != nil {
		return nil, fmt.Errorf("degenerate node lattice for lagrange %v degree %d: %w",
			shape, degree, err)
	}
	return &Lagrange{
		shape:     shape,
		degree:    degree,
		nodes:     nodes,
		exponents: exps,
		coeffs:    Vinv.Transpose(),
		sig:       fmt.Sprintf("FiniteElement('Lagrange', %v, %d)", shape, degree),
	}, nil
}

func (el *Lagrange) Signature() string                 { return el.sig }
func (el *Lagrange) CellShape() form.Shape             { return el.shape }
func (el *Lagrange) TopologicalDimension() int         { return el.shape.Dimension() }
func (el *Lagrange) GeometricDimension() int           { return el.shape.Dimension() }
func (el *Lagrange) SpaceDimension() int               { return len(el.nodes) }
func (el *Lagrange) ValueRank() int                    { return 0 }
func (el *Lagrange) ValueDimension(i int) int          { return 1 }
func (el *Lagrange) ValueSize() int                    { return 1 }
func (el *Lagrange) ReferenceValueRank() int           { return 0 }
func (el *Lagrange) ReferenceValueDimension(i int) int { return 1 }
func (el *Lagrange) ReferenceValueSize() int           { return 1 }
func (el *Lagrange) Degree() int                       { return el.degree }
func (el *Lagrange) Family() string                    { return "Lagrange" }
func (el *Lagrange) NumSubElements() int               { return 0 }

func (el *Lagrange) CreateSubElement(i int) form.FiniteElement { return nil }

func (el *Lagrange) Create() form.FiniteElement {
	clone, _ := NewLagrange(el.shape, el.degree)
	return clone
}

func (el *Lagrange) EvaluateReferenceBasis(values []float64, numPoints int, X []float64) error {
	return el.EvaluateReferenceBasisDerivatives(values, 0, numPoints, X)
}

func (el *Lagrange) EvaluateReferenceBasisDerivatives(values []float64, order, numPoints int, X []float64) error {
	var (
		tdim    = el.shape.Dimension()
		nd      = numDerivatives(tdim, order)
		n       = len(el.nodes)
		counts  = make([]int, tdim)
		outside = false
	)
	for p := 0; p < numPoints; p++ {
		Xp := X[p*tdim : (p+1)*tdim]
		if !insideReference(el.shape, Xp) {
			outside = true
		}
		for r := 0; r < nd; r++ {
			derivCounts(r, order, tdim, counts)
			for i := 0; i < n; i++ {
				v := 0.0
				for m, e := range el.exponents {
					c := el.coeffs.At(i, m)
					if c != 0 {
						v += c * evalMonomial(e, counts, Xp)
					}
				}
				values[((p*n)+i)*nd+r] = v
			}
		}
	}
	if outside {
		return form.ErrPointOutsideDomain
	}
	return nil
}

func (el *Lagrange) TransformReferenceBasisDerivatives(values []float64, order, numPoints int,
	referenceValues, X, J, detJ, K []float64, cellOrientation int) error {
	tdim := el.shape.Dimension()
	gdim := len(K) / (numPoints * tdim)
	transformIdentityDerivatives(values, referenceValues, K,
		order, numPoints, len(el.nodes), 1, tdim, gdim)
	return nil
}

// MapDofs is the identity for point-evaluation functionals.
func (el *Lagrange) MapDofs(values, vals, coordinateDofs []float64, cellOrientation int, cm form.CoordinateMapping) {
	copy(values[:len(el.nodes)], vals[:len(el.nodes)])
}

func (el *Lagrange) TabulateReferenceDofCoordinates(X []float64) {
	tdim := el.shape.Dimension()
	for i, node := range el.nodes {
		copy(X[i*tdim:(i+1)*tdim], node)
	}
}
