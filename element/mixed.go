package element

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notargets/FEKernel/form"
)

// Mixed composes sub-elements on a shared cell shape. Local dofs are
// blocked per sub-element in order, and each sub-element's value
// components occupy a disjoint, contiguous slice of the mixed value space.
// A vector element is the special case of identical scalar sub-elements.
type Mixed struct {
	subs   []form.FiniteElement
	family string
	gdim   int
	sig    string
}

// NewMixed composes the given sub-elements into a mixed element. All
// sub-elements must share one cell shape.
func NewMixed(subs ...form.FiniteElement) (*Mixed, error) {
	if len(subs) == 0 {
		return nil, errors.New("mixed element needs at least one sub-element")
	}
	shape := subs[0].CellShape()
	for _, sub := range subs[1:] {
		if sub.CellShape() != shape {
			return nil, fmt.Errorf("mixed element cell shapes differ: %v vs %v",
				shape, sub.CellShape())
		}
	}
	sigs := make([]string, len(subs))
	for i, sub := range subs {
		sigs[i] = sub.Signature()
	}
	return &Mixed{
		subs:   subs,
		family: "Mixed",
		gdim:   subs[0].GeometricDimension(),
		sig:    fmt.Sprintf("MixedElement(%s)", strings.Join(sigs, ", ")),
	}, nil
}

// NewVector builds a vector element of n independently owned copies of the
// scalar sub-element.
func NewVector(sub form.FiniteElement, n int) (*Mixed, error) {
	if n < 1 {
		return nil, fmt.Errorf("vector element needs n >= 1, got %d", n)
	}
	subs := make([]form.FiniteElement, n)
	for i := range subs {
		subs[i] = sub.Create()
	}
	m, err := NewMixed(subs...)
	if err != nil {
		return nil, err
	}
	m.family = "Vector"
	m.sig = fmt.Sprintf("VectorElement(%s, %d)", sub.Signature(), n)
	return m, nil
}

// NewCoordinateElement builds the vector Lagrange element parameterizing
// cell coordinates: gdim components of a degree-q scalar basis. gdim may
// exceed the cell dimension for manifold cells.
func NewCoordinateElement(shape form.Shape, degree, gdim int) (*Mixed, error) {
	if gdim < shape.Dimension() {
		return nil, fmt.Errorf("geometric dimension %d below topological dimension %d",
			gdim, shape.Dimension())
	}
	scalar, err := NewLagrange(shape, degree)
	if err != nil {
		return nil, err
	}
	m, err := NewVector(scalar, gdim)
	if err != nil {
		return nil, err
	}
	m.gdim = gdim
	return m, nil
}

func (m *Mixed) Signature() string         { return m.sig }
func (m *Mixed) CellShape() form.Shape     { return m.subs[0].CellShape() }
func (m *Mixed) TopologicalDimension() int { return m.subs[0].TopologicalDimension() }
func (m *Mixed) GeometricDimension() int   { return m.gdim }
func (m *Mixed) Family() string            { return m.family }
func (m *Mixed) NumSubElements() int       { return len(m.subs) }

func (m *Mixed) SpaceDimension() (n int) {
	for _, sub := range m.subs {
		n += sub.SpaceDimension()
	}
	return
}

func (m *Mixed) ValueRank() int           { return 1 }
func (m *Mixed) ValueDimension(i int) int { return m.ValueSize() }

func (m *Mixed) ValueSize() (n int) {
	for _, sub := range m.subs {
		n += sub.ValueSize()
	}
	return
}

func (m *Mixed) ReferenceValueRank() int           { return 1 }
func (m *Mixed) ReferenceValueDimension(i int) int { return m.ReferenceValueSize() }

func (m *Mixed) ReferenceValueSize() (n int) {
	for _, sub := range m.subs {
		n += sub.ReferenceValueSize()
	}
	return
}

func (m *Mixed) Degree() (q int) {
	for _, sub := range m.subs {
		if sub.Degree() > q {
			q = sub.Degree()
		}
	}
	return
}

func (m *Mixed) CreateSubElement(i int) form.FiniteElement { return m.subs[i].Create() }

func (m *Mixed) Create() form.FiniteElement {
	subs := make([]form.FiniteElement, len(m.subs))
	for i, sub := range m.subs {
		subs[i] = sub.Create()
	}
	clone, _ := NewMixed(subs...)
	clone.family = m.family
	clone.gdim = m.gdim
	clone.sig = m.sig
	return clone
}

func (m *Mixed) EvaluateReferenceBasis(values []float64, numPoints int, X []float64) error {
	return m.EvaluateReferenceBasisDerivatives(values, 0, numPoints, X)
}

func (m *Mixed) EvaluateReferenceBasisDerivatives(values []float64, order, numPoints int, X []float64) error {
	var (
		tdim = m.TopologicalDimension()
		nd   = numDerivatives(tdim, order)
		n    = m.SpaceDimension()
		vs   = m.ReferenceValueSize()
		errs error
	)
	for i := range values[:numPoints*n*nd*vs] {
		values[i] = 0
	}
	dofOffset, compOffset := 0, 0
	for _, sub := range m.subs {
		sn, svs := sub.SpaceDimension(), sub.ReferenceValueSize()
		scratch := make([]float64, numPoints*sn*nd*svs)
		if err := sub.EvaluateReferenceBasisDerivatives(scratch, order, numPoints, X); err != nil {
			errs = err
		}
		for p := 0; p < numPoints; p++ {
			for i := 0; i < sn; i++ {
				for r := 0; r < nd; r++ {
					src := ((p*sn+i)*nd + r) * svs
					dst := ((p*n+dofOffset+i)*nd+r)*vs + compOffset
					copy(values[dst:dst+svs], scratch[src:src+svs])
				}
			}
		}
		dofOffset += sn
		compOffset += svs
	}
	return errs
}

func (m *Mixed) TransformReferenceBasisDerivatives(values []float64, order, numPoints int,
	referenceValues, X, J, detJ, K []float64, cellOrientation int) error {
	var (
		tdim   = m.TopologicalDimension()
		gdim   = len(K) / (numPoints * tdim)
		ndRef  = numDerivatives(tdim, order)
		ndPhys = numDerivatives(gdim, order)
		n      = m.SpaceDimension()
		rvs    = m.ReferenceValueSize()
		vs     = m.ValueSize()
	)
	for i := range values[:numPoints*n*ndPhys*vs] {
		values[i] = 0
	}
	dofOffset, refOffset, physOffset := 0, 0, 0
	for _, sub := range m.subs {
		sn, srvs, svs := sub.SpaceDimension(), sub.ReferenceValueSize(), sub.ValueSize()
		refScratch := make([]float64, numPoints*sn*ndRef*srvs)
		physScratch := make([]float64, numPoints*sn*ndPhys*svs)
		for p := 0; p < numPoints; p++ {
			for i := 0; i < sn; i++ {
				for r := 0; r < ndRef; r++ {
					src := ((p*n+dofOffset+i)*ndRef+r)*rvs + refOffset
					dst := ((p*sn+i)*ndRef + r) * srvs
					copy(refScratch[dst:dst+srvs], referenceValues[src:src+srvs])
				}
			}
		}
		if err := sub.TransformReferenceBasisDerivatives(physScratch, order, numPoints,
			refScratch, X, J, detJ, K, cellOrientation); err != nil {
			return err
		}
		for p := 0; p < numPoints; p++ {
			for i := 0; i < sn; i++ {
				for r := 0; r < ndPhys; r++ {
					src := ((p*sn+i)*ndPhys + r) * svs
					dst := ((p*n+dofOffset+i)*ndPhys+r)*vs + physOffset
					copy(values[dst:dst+svs], physScratch[src:src+svs])
				}
			}
		}
		dofOffset += sn
		refOffset += srvs
		physOffset += svs
	}
	return nil
}

func (m *Mixed) MapDofs(values, vals, coordinateDofs []float64, cellOrientation int, cm form.CoordinateMapping) {
	offset := 0
	for _, sub := range m.subs {
		sn := sub.SpaceDimension()
		sub.MapDofs(values[offset:offset+sn], vals[offset:offset+sn],
			coordinateDofs, cellOrientation, cm)
		offset += sn
	}
}

func (m *Mixed) TabulateReferenceDofCoordinates(X []float64) {
	tdim := m.TopologicalDimension()
	offset := 0
	for _, sub := range m.subs {
		sub.TabulateReferenceDofCoordinates(X[offset:])
		offset += sub.SpaceDimension() * tdim
	}
}
