// Package forms provides generated-style concrete forms: signature-bearing
// aggregates binding elements, dofmaps, a coordinate mapping and
// subdomain-dispatched integral kernels, the way a form compiler would
// emit them. They double as the reference kernel set for the contract
// tests.
package forms

import (
	"github.com/notargets/FEKernel/form"
	"github.com/notargets/FEKernel/geometry"
)

// base carries the aggregate state shared by every concrete form: slot
// factories indexed arguments-first, and one integral table per entity
// kind.
type base struct {
	sig      string
	rank     int
	origPos  []int
	shape    form.Shape
	degree   int
	gdim     int
	elements []func() form.FiniteElement
	dofmaps  []func() form.DofMap

	cell     form.IntegralTable[form.CellIntegral]
	extFacet form.IntegralTable[form.ExteriorFacetIntegral]
	intFacet form.IntegralTable[form.InteriorFacetIntegral]
	vertex   form.IntegralTable[form.VertexIntegral]
	custom   form.IntegralTable[form.CustomIntegral]
}

func (b *base) Signature() string    { return b.sig }
func (b *base) Rank() int            { return b.rank }
func (b *base) NumCoefficients() int { return len(b.elements) - b.rank }

func (b *base) OriginalCoefficientPosition(i int) int {
	if b.origPos == nil {
		return i
	}
	return b.origPos[i]
}

func (b *base) coordinateMapping() *geometry.Mapping {
	cm, _ := geometry.NewMapping(b.shape, b.degree, b.gdim)
	return cm
}

func (b *base) CreateCoordinateMapping() form.CoordinateMapping { return b.coordinateMapping() }

func (b *base) CreateCoordinateFiniteElement() form.FiniteElement {
	return b.coordinateMapping().CreateCoordinateElement()
}

func (b *base) CreateCoordinateDofmap() form.DofMap {
	return b.coordinateMapping().CreateCoordinateDofmap()
}

func (b *base) CreateFiniteElement(i int) form.FiniteElement { return b.elements[i]() }
func (b *base) CreateDofmap(i int) form.DofMap               { return b.dofmaps[i]() }

func (b *base) MaxCellSubdomainID() int          { return b.cell.MaxSubdomainID() }
func (b *base) MaxExteriorFacetSubdomainID() int { return b.extFacet.MaxSubdomainID() }
func (b *base) MaxInteriorFacetSubdomainID() int { return b.intFacet.MaxSubdomainID() }
func (b *base) MaxVertexSubdomainID() int        { return b.vertex.MaxSubdomainID() }
func (b *base) MaxCustomSubdomainID() int        { return b.custom.MaxSubdomainID() }

func (b *base) HasCellIntegrals() bool          { return b.cell.Present() }
func (b *base) HasExteriorFacetIntegrals() bool { return b.extFacet.Present() }
func (b *base) HasInteriorFacetIntegrals() bool { return b.intFacet.Present() }
func (b *base) HasVertexIntegrals() bool        { return b.vertex.Present() }
func (b *base) HasCustomIntegrals() bool        { return b.custom.Present() }

func (b *base) CreateCellIntegral(subdomainID int) form.CellIntegral {
	k, _ := b.cell.Lookup(subdomainID)
	return k
}

func (b *base) CreateExteriorFacetIntegral(subdomainID int) form.ExteriorFacetIntegral {
	k, _ := b.extFacet.Lookup(subdomainID)
	return k
}

func (b *base) CreateInteriorFacetIntegral(subdomainID int) form.InteriorFacetIntegral {
	k, _ := b.intFacet.Lookup(subdomainID)
	return k
}

func (b *base) CreateVertexIntegral(subdomainID int) form.VertexIntegral {
	k, _ := b.vertex.Lookup(subdomainID)
	return k
}

func (b *base) CreateCustomIntegral(subdomainID int) form.CustomIntegral {
	k, _ := b.custom.Lookup(subdomainID)
	return k
}

func (b *base) CreateDefaultCellIntegral() form.CellIntegral {
	k, _ := b.cell.CreateDefault()
	return k
}

func (b *base) CreateDefaultExteriorFacetIntegral() form.ExteriorFacetIntegral {
	k, _ := b.extFacet.CreateDefault()
	return k
}

func (b *base) CreateDefaultInteriorFacetIntegral() form.InteriorFacetIntegral {
	k, _ := b.intFacet.CreateDefault()
	return k
}

func (b *base) CreateDefaultVertexIntegral() form.VertexIntegral {
	k, _ := b.vertex.CreateDefault()
	return k
}

func (b *base) CreateDefaultCustomIntegral() form.CustomIntegral {
	k, _ := b.custom.CreateDefault()
	return k
}
