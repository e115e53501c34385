package form

// Form aggregates everything an assembly engine needs to assemble the
// global tensor of a variational form with r argument slots and n
// coefficients:
//
//	a : V1 x ... x Vr x W1 x ... x Wn -> R
//
// Element and dofmap factories are indexed over [0, r+n): arguments first,
// then coefficients. Per entity kind the form carries a subdomain-indexed
// integral factory plus one optional default; Create*Integral returns nil
// for an unregistered id, and CreateDefault*Integral returns nil when no
// default exists. Select* in this package implements the engine-side
// lookup-then-fallback rule.
type Form interface {
	// Signature is an opaque identity token, safe for use as a map key.
	Signature() string

	// Rank is the number of test/trial argument slots (r).
	Rank() int

	// NumCoefficients is the number of coefficients (n).
	NumCoefficients() int

	// OriginalCoefficientPosition maps a compacted coefficient index back
	// to the position it held before dead-coefficient elimination.
	OriginalCoefficientPosition(i int) int

	CreateCoordinateFiniteElement() FiniteElement
	CreateCoordinateDofmap() DofMap
	CreateCoordinateMapping() CoordinateMapping

	// CreateFiniteElement returns a new element for argument i < r, or
	// coefficient i-r for r <= i < r+n.
	CreateFiniteElement(i int) FiniteElement

	// CreateDofmap returns a new dofmap for argument i < r, or coefficient
	// i-r for r <= i < r+n.
	CreateDofmap(i int) DofMap

	// Upper bounds (exclusive) on subdomain ids per entity kind.
	MaxCellSubdomainID() int
	MaxExteriorFacetSubdomainID() int
	MaxInteriorFacetSubdomainID() int
	MaxVertexSubdomainID() int
	MaxCustomSubdomainID() int

	// Presence flags per entity kind. When false the engine must not
	// request that kind's kernels.
	HasCellIntegrals() bool
	HasExteriorFacetIntegrals() bool
	HasInteriorFacetIntegrals() bool
	HasVertexIntegrals() bool
	HasCustomIntegrals() bool

	// Subdomain-registered integral factories; nil for unregistered ids.
	CreateCellIntegral(subdomainID int) CellIntegral
	CreateExteriorFacetIntegral(subdomainID int) ExteriorFacetIntegral
	CreateInteriorFacetIntegral(subdomainID int) InteriorFacetIntegral
	CreateVertexIntegral(subdomainID int) VertexIntegral
	CreateCustomIntegral(subdomainID int) CustomIntegral

	// Default integral factories for everywhere else; nil when absent.
	CreateDefaultCellIntegral() CellIntegral
	CreateDefaultExteriorFacetIntegral() ExteriorFacetIntegral
	CreateDefaultInteriorFacetIntegral() InteriorFacetIntegral
	CreateDefaultVertexIntegral() VertexIntegral
	CreateDefaultCustomIntegral() CustomIntegral
}

// SelectCellIntegral resolves the cell integral for one subdomain id: the
// registered kernel when id is in range and present, else the default,
// else nil (the entity contributes nothing).
func SelectCellIntegral(f Form, subdomainID int) CellIntegral {
	if subdomainID < f.MaxCellSubdomainID() {
		if k := f.CreateCellIntegral(subdomainID); k != nil {
			return k
		}
	}
	return f.CreateDefaultCellIntegral()
}

// SelectExteriorFacetIntegral resolves the exterior facet integral for one
// subdomain id; same fallback rule as SelectCellIntegral.
func SelectExteriorFacetIntegral(f Form, subdomainID int) ExteriorFacetIntegral {
	if subdomainID < f.MaxExteriorFacetSubdomainID() {
		if k := f.CreateExteriorFacetIntegral(subdomainID); k != nil {
			return k
		}
	}
	return f.CreateDefaultExteriorFacetIntegral()
}

// SelectInteriorFacetIntegral resolves the interior facet integral for one
// subdomain id; same fallback rule as SelectCellIntegral.
func SelectInteriorFacetIntegral(f Form, subdomainID int) InteriorFacetIntegral {
	if subdomainID < f.MaxInteriorFacetSubdomainID() {
		if k := f.CreateInteriorFacetIntegral(subdomainID); k != nil {
			return k
		}
	}
	return f.CreateDefaultInteriorFacetIntegral()
}

// SelectVertexIntegral resolves the vertex integral for one subdomain id;
// same fallback rule as SelectCellIntegral.
func SelectVertexIntegral(f Form, subdomainID int) VertexIntegral {
	if subdomainID < f.MaxVertexSubdomainID() {
		if k := f.CreateVertexIntegral(subdomainID); k != nil {
			return k
		}
	}
	return f.CreateDefaultVertexIntegral()
}

// SelectCustomIntegral resolves the custom integral for one subdomain id;
// same fallback rule as SelectCellIntegral.
func SelectCustomIntegral(f Form, subdomainID int) CustomIntegral {
	if subdomainID < f.MaxCustomSubdomainID() {
		if k := f.CreateCustomIntegral(subdomainID); k != nil {
			return k
		}
	}
	return f.CreateDefaultCustomIntegral()
}
