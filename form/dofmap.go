package form

// DofMap describes local-to-global degree-of-freedom indexing for one
// element type. All Tabulate* methods are pure functions of their inputs
// and return identical results across repeated calls.
type DofMap interface {
	// Signature is an opaque identity token, safe for use as a map key.
	Signature() string

	// NumGlobalSupportDofs counts dofs with global support, e.g. constants
	// with no local cell support.
	NumGlobalSupportDofs() int

	// NumElementSupportDofs counts dofs supported on the local cell.
	NumElementSupportDofs() int

	// NumElementDofs is the legacy combined count, including global
	// support dofs.
	NumElementDofs() int

	// NumFacetDofs counts dofs on the closure of one cell facet.
	NumFacetDofs() int

	// NumEntityDofs counts dofs owned by each entity of dimension d.
	NumEntityDofs(d int) int

	// NumEntityClosureDofs counts dofs on the closure of each entity of
	// dimension d.
	NumEntityClosureDofs(d int) int

	// TabulateDofs writes the global index of every local dof.
	//
	//	numGlobalEntities[d]  global entity count per dimension
	//	entityIndices[d][i]   global index of local entity (d, i)
	TabulateDofs(dofs []int64, numGlobalEntities []int64, entityIndices [][]int64)

	// TabulateFacetDofs writes the local dof indices on the closure of the
	// given facet.
	TabulateFacetDofs(dofs []int, facet int)

	// TabulateEntityDofs writes the local dof indices owned by entity (d, i).
	TabulateEntityDofs(dofs []int, d, i int)

	// TabulateEntityClosureDofs writes the local dof indices on the closure
	// of entity (d, i). Always a superset of TabulateEntityDofs(d, i).
	TabulateEntityClosureDofs(dofs []int, d, i int)

	// NumSubDofmaps is greater than zero for mixed dofmaps.
	NumSubDofmaps() int

	// CreateSubDofmap returns a new, independently owned sub-dofmap.
	CreateSubDofmap(i int) DofMap

	// Create returns a new instance of the same dofmap.
	Create() DofMap
}
