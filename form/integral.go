package form

// The five integral kernel variants. Each holds an enablement mask with one
// entry per form coefficient; a tabulation kernel never reads the values of
// a coefficient whose flag is false, and the caller need not provide a
// valid buffer for it. Kernel instances are stateless aside from the mask
// and may be reused across entities sharing a subdomain id.
//
// Buffer layouts:
//
//	A               the local element tensor, row-major over argument dofs
//	w[i]            coefficient i's expansion coefficients on the cell
//	coordinateDofs  [numDofs][gdim] coordinate dofs of the cell

// CellIntegral tabulates the local tensor over one cell.
type CellIntegral interface {
	EnabledCoefficients() []bool
	TabulateTensor(A []float64, w [][]float64, coordinateDofs []float64, cellOrientation int)
}

// ExteriorFacetIntegral tabulates the local tensor over one boundary facet
// of a cell.
type ExteriorFacetIntegral interface {
	EnabledCoefficients() []bool
	TabulateTensor(A []float64, w [][]float64, coordinateDofs []float64, facet, cellOrientation int)
}

// InteriorFacetIntegral tabulates the local tensor over one facet shared by
// two cells. The two coordinate buffers, facet numbers and orientations
// refer to the two adjacent cells; w holds macro-element coefficients over
// both cells.
type InteriorFacetIntegral interface {
	EnabledCoefficients() []bool
	TabulateTensor(A []float64, w [][]float64, coordinateDofs0, coordinateDofs1 []float64,
		facet0, facet1, cellOrientation0, cellOrientation1 int)
}

// VertexIntegral tabulates the local tensor at one vertex of a cell.
type VertexIntegral interface {
	EnabledCoefficients() []bool
	TabulateTensor(A []float64, w [][]float64, coordinateDofs []float64, vertex, cellOrientation int)
}

// CustomIntegral tabulates the local tensor over a caller-supplied
// quadrature rule on one cell.
type CustomIntegral interface {
	EnabledCoefficients() []bool
	TabulateTensor(A []float64, w [][]float64, coordinateDofs []float64,
		numQuadraturePoints int, quadraturePoints, quadratureWeights, facetNormals []float64,
		cellOrientation int)
}
