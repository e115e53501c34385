package form

// Shape enumerates the supported reference cell shapes.
type Shape uint8

const (
	Vertex Shape = iota
	Interval
	Triangle
	Quadrilateral
	Tetrahedron
	Hexahedron
)

func (s Shape) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Interval:
		return "interval"
	case Triangle:
		return "triangle"
	case Quadrilateral:
		return "quadrilateral"
	case Tetrahedron:
		return "tetrahedron"
	case Hexahedron:
		return "hexahedron"
	}
	return "unknown"
}

// Dimension returns the topological dimension of the reference cell.
func (s Shape) Dimension() int {
	switch s {
	case Vertex:
		return 0
	case Interval:
		return 1
	case Triangle, Quadrilateral:
		return 2
	case Tetrahedron, Hexahedron:
		return 3
	}
	return -1
}

// NumFacets returns the number of co-dimension-1 entities of the cell.
func (s Shape) NumFacets() int {
	switch s {
	case Interval:
		return 2
	case Triangle:
		return 3
	case Quadrilateral:
		return 4
	case Tetrahedron:
		return 4
	case Hexahedron:
		return 6
	}
	return 0
}
