package element

import (
	"github.com/notargets/FEKernel/form"
	"github.com/notargets/FEKernel/reference"
)

// nodeTol is the tolerance for the point-membership test on the closed
// reference cell.
const nodeTol = 1.e-12

// monomialSet enumerates the monomial exponents spanning the polynomial
// space of a nodal element: total degree <= q on simplices, per-axis
// degree <= q on tensor cells. Ordered by total degree, then
// lexicographically.
func monomialSet(shape form.Shape, degree int) [][]int {
	tdim := shape.Dimension()
	tensor := shape == form.Quadrilateral || shape == form.Hexahedron
	var exps [][]int
	var walk func(prefix []int, remaining int)
	walk = func(prefix []int, remaining int) {
		if len(prefix) == tdim {
			e := make([]int, tdim)
			copy(e, prefix)
			exps = append(exps, e)
			return
		}
		limit := remaining
		if tensor {
			limit = degree
		}
		for k := 0; k <= limit; k++ {
			next := remaining
			if !tensor {
				next = remaining - k
			}
			walk(append(prefix, k), next)
		}
	}
	walk(nil, degree)
	// Reorder by total degree for a conventional Vandermonde column order
	ordered := make([][]int, 0, len(exps))
	for total := 0; total <= degree*tdim; total++ {
		for _, e := range exps {
			sum := 0
			for _, k := range e {
				sum += k
			}
			if sum == total {
				ordered = append(ordered, e)
			}
		}
	}
	return ordered
}

// evalMonomial evaluates the monomial with the given exponents,
// differentiated counts[d] times along each axis d, at point X.
func evalMonomial(exp, counts []int, X []float64) float64 {
	v := 1.0
	for d, e := range exp {
		c := 0
		if counts != nil {
			c = counts[d]
		}
		if c > e {
			return 0
		}
		// Falling factorial from differentiation, then the power
		for k := 0; k < c; k++ {
			v *= float64(e - k)
		}
		for k := 0; k < e-c; k++ {
			v *= X[d]
		}
	}
	return v
}

// derivCounts converts the flat derivative index into per-axis counts.
// Derivative multi-indices (d_1, ..., d_order) are enumerated
// lexicographically, d_1 most significant, tdim^order in total.
func derivCounts(deriv, order, tdim int, counts []int) {
	for d := range counts {
		counts[d] = 0
	}
	for k := 0; k < order; k++ {
		counts[deriv%tdim]++
		deriv /= tdim
	}
}

// numDerivatives returns tdim^order.
func numDerivatives(tdim, order int) int {
	n := 1
	for k := 0; k < order; k++ {
		n *= tdim
	}
	return n
}

// lagrangeNodes generates the nodal lattice in entity order: for each
// dimension d ascending, for each entity, the nodes interior to that
// entity. This ordering is the canonical local dof ordering shared with
// the dofmaps.
func lagrangeNodes(shape form.Shape, degree int) [][]float64 {
	verts := reference.VertexCoordinates(shape)
	tdim := shape.Dimension()
	var nodes [][]float64
	// Vertex nodes
	for _, v := range verts {
		n := make([]float64, tdim)
		copy(n, v)
		nodes = append(nodes, n)
	}
	// Edge-interior nodes
	if degree >= 2 && tdim >= 1 {
		for e := 0; e < reference.NumEntities(shape, 1); e++ {
			ev := reference.EntityVertices(shape, 1, e)
			a, b := verts[ev[0]], verts[ev[1]]
			for k := 1; k < degree; k++ {
				t := float64(k) / float64(degree)
				n := make([]float64, tdim)
				for j := 0; j < tdim; j++ {
					n[j] = a[j] + t*(b[j]-a[j])
				}
				nodes = append(nodes, n)
			}
		}
	}
	return nodes
}

// lagrangeEntityDofs returns the number of dofs owned by each entity of
// dimension d for a Lagrange element of the given degree.
func lagrangeEntityDofs(shape form.Shape, degree, d int) int {
	tdim := shape.Dimension()
	if d < 0 || d > tdim {
		return 0
	}
	switch shape {
	case form.Quadrilateral, form.Hexahedron:
		// Degree 1 tensor elements carry vertex dofs only
		if d == 0 {
			return 1
		}
		return 0
	}
	switch d {
	case 0:
		return 1
	case 1:
		return degree - 1
	case 2:
		return (degree - 1) * (degree - 2) / 2
	case 3:
		return (degree - 1) * (degree - 2) * (degree - 3) / 6
	}
	return 0
}

// insideReference reports whether X lies on the closed reference cell
// within nodeTol.
func insideReference(shape form.Shape, X []float64) bool {
	tdim := shape.Dimension()
	switch shape {
	case form.Interval, form.Quadrilateral, form.Hexahedron:
		for d := 0; d < tdim; d++ {
			if X[d] < -nodeTol || X[d] > 1+nodeTol {
				return false
			}
		}
		return true
	case form.Triangle, form.Tetrahedron:
		sum := 0.0
		for d := 0; d < tdim; d++ {
			if X[d] < -nodeTol {
				return false
			}
			sum += X[d]
		}
		return sum <= 1+nodeTol
	}
	return true
}
