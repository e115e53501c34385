package form

import "errors"

// ErrNonConvergence reports that the inverse coordinate mapping's Newton
// iteration exhausted its iteration budget. The best estimate found is
// still written to the output buffer; callers decide whether the failure
// is fatal or tolerable for the entity at hand.
var ErrNonConvergence = errors.New("inverse coordinate mapping did not converge")

// CoordinateMapping represents the geometric parameterization of a cell by
// a local finite-element basis (iso- or sub-parametric). The geometric
// dimension may exceed the topological dimension for manifold cells, in
// which case determinants and inverses are the pseudo variants.
//
// Buffer layouts are row-major flattened:
//
//	x               [numPoints][gdim]
//	X               [numPoints][tdim]
//	J               [numPoints][gdim][tdim]
//	detJ            [numPoints]
//	K               [numPoints][tdim][gdim]
//	coordinateDofs  [numDofs][gdim]
//
// cellOrientation is 1 when the cell is flipped w.r.t. the reference cell,
// relevant only on manifolds (tdim < gdim).
type CoordinateMapping interface {
	// Signature is an opaque identity token, safe for use as a map key.
	Signature() string

	GeometricDimension() int
	TopologicalDimension() int
	CellShape() Shape

	// CreateCoordinateElement returns a new element representing the
	// coordinate parameterization.
	CreateCoordinateElement() FiniteElement

	// CreateCoordinateDofmap returns a new dofmap for the coordinate
	// parameterization.
	CreateCoordinateDofmap() DofMap

	// Create returns a new instance of the same mapping.
	Create() CoordinateMapping

	// ComputePhysicalCoordinates evaluates x(X) on one cell.
	ComputePhysicalCoordinates(x []float64, numPoints int, X, coordinateDofs []float64)

	// ComputeReferenceCoordinates inverts the coordinate map, X(x). For
	// non-affine cells this is a damped Newton iteration; returns
	// ErrNonConvergence (wrapped) when the iteration budget is exhausted.
	ComputeReferenceCoordinates(X []float64, numPoints int, x, coordinateDofs []float64, cellOrientation int) error

	// ComputeReferenceGeometry computes X, J, detJ and K from physical
	// coordinates x; composition of the primitives.
	ComputeReferenceGeometry(X, J, detJ, K []float64, numPoints int, x, coordinateDofs []float64, cellOrientation int) error

	// ComputeJacobians computes J = dx/dX at reference points X.
	ComputeJacobians(J []float64, numPoints int, X, coordinateDofs []float64)

	// ComputeJacobianDeterminants computes det(J), or the pseudo
	// determinant sqrt(det(J^T J)) with orientation sign when tdim < gdim.
	ComputeJacobianDeterminants(detJ []float64, numPoints int, J []float64, cellOrientation int)

	// ComputeJacobianInverses computes K = J^-1, or the pseudo inverse
	// (J^T J)^-1 J^T when tdim < gdim.
	ComputeJacobianInverses(K []float64, numPoints int, J, detJ []float64)

	// ComputeGeometry computes x, J, detJ and K from reference points X;
	// composition of the primitives.
	ComputeGeometry(x, J, detJ, K []float64, numPoints int, X, coordinateDofs []float64, cellOrientation int)

	// ComputeMidpointGeometry computes x and J at the cell midpoint.
	// Layouts: x[gdim], J[gdim][tdim].
	ComputeMidpointGeometry(x, J []float64, coordinateDofs []float64)
}
