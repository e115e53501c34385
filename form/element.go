package form

import "errors"

// ErrPointOutsideDomain reports that one or more evaluation points lie
// outside the reference cell. Basis values are still tabulated by
// extrapolation; callers evaluating on facet closures may ignore it.
var ErrPointOutsideDomain = errors.New("point outside reference domain")

// FiniteElement describes a scalar, vector or mixed finite element and its
// basis-evaluation kernels on the reference cell.
//
// Buffer layouts are row-major flattened:
//
//	X               [numPoints][tdim]
//	values          [numPoints][spaceDim][numDerivs][valueSize]
//	referenceValues [numPoints][spaceDim][numDerivs][referenceValueSize]
//
// where numDerivs = tdim^order for reference derivatives and gdim^order for
// transformed (physical) derivatives, enumerated lexicographically over the
// derivative multi-index.
type FiniteElement interface {
	// Signature is an opaque identity token, safe for use as a map key.
	Signature() string

	CellShape() Shape
	TopologicalDimension() int
	GeometricDimension() int

	// SpaceDimension is the number of local basis functions.
	SpaceDimension() int

	// Physical (post-mapping) value space.
	ValueRank() int
	ValueDimension(i int) int
	ValueSize() int

	// Reference (pre-mapping) value space.
	ReferenceValueRank() int
	ReferenceValueDimension(i int) int
	ReferenceValueSize() int

	Degree() int
	Family() string

	// EvaluateReferenceBasis tabulates all basis functions at each point X.
	// Returns ErrPointOutsideDomain when a point is not on the closed
	// reference cell; values are tabulated regardless.
	EvaluateReferenceBasis(values []float64, numPoints int, X []float64) error

	// EvaluateReferenceBasisDerivatives tabulates all mixed partial
	// derivatives of the given order at each point X.
	EvaluateReferenceBasisDerivatives(values []float64, order, numPoints int, X []float64) error

	// TransformReferenceBasisDerivatives pushes reference basis derivatives
	// forward to physical derivatives using the cell geometry J, detJ, K.
	TransformReferenceBasisDerivatives(values []float64, order, numPoints int,
		referenceValues, X, J, detJ, K []float64, cellOrientation int) error

	// MapDofs applies the element's dof functional map (e.g. orientation
	// sign corrections) from raw coefficients to element-ordered values.
	MapDofs(values, vals, coordinateDofs []float64, cellOrientation int, cm CoordinateMapping)

	// TabulateReferenceDofCoordinates writes the reference coordinates of
	// all dofs, layout [spaceDim][tdim].
	TabulateReferenceDofCoordinates(X []float64)

	// NumSubElements is greater than zero for mixed elements.
	NumSubElements() int

	// CreateSubElement returns a new, independently owned sub-element.
	CreateSubElement(i int) FiniteElement

	// Create returns a new instance of the same element.
	Create() FiniteElement
}
