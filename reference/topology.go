// Package reference holds the fixed topology of the canonical reference
// cells: vertex coordinates, entity-vertex incidence and entity closures.
// Entities of dimension d within a cell are numbered by the tables below;
// facets are the entities of dimension tdim-1.
package reference

import (
	"fmt"

	"github.com/notargets/FEKernel/form"
)

// Entity identifies one sub-entity of a cell by dimension and local index.
type Entity struct {
	Dim   int
	Index int
}

// vertexCoords holds reference vertex coordinates per shape, one row per
// vertex. The cells are the UFC unit cells: unit interval, unit triangle,
// unit square, unit tetrahedron, unit cube.
var vertexCoords = map[form.Shape][][]float64{
	form.Vertex:   {{}},
	form.Interval: {{0}, {1}},
	form.Triangle: {{0, 0}, {1, 0}, {0, 1}},
	form.Quadrilateral: {
		{0, 0}, {1, 0}, {0, 1}, {1, 1},
	},
	form.Tetrahedron: {
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	},
	form.Hexahedron: {
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	},
}

// edgeVertices lists the vertex pair of each edge. Simplex edge i is
// opposite-ordered following the UFC convention.
var edgeVertices = map[form.Shape][][]int{
	form.Interval:      {{0, 1}},
	form.Triangle:      {{1, 2}, {0, 2}, {0, 1}},
	form.Quadrilateral: {{0, 1}, {0, 2}, {1, 3}, {2, 3}},
	form.Tetrahedron:   {{2, 3}, {1, 3}, {1, 2}, {0, 3}, {0, 2}, {0, 1}},
	form.Hexahedron: {
		{0, 1}, {0, 2}, {0, 4}, {1, 3}, {1, 5}, {2, 3},
		{2, 6}, {3, 7}, {4, 5}, {4, 6}, {5, 7}, {6, 7},
	},
}

// faceVertices lists the vertex set of each 2D face of the 3D cells.
// Tetrahedron face i is opposite vertex i.
var faceVertices = map[form.Shape][][]int{
	form.Tetrahedron: {{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}},
	form.Hexahedron: {
		{0, 1, 2, 3}, {0, 1, 4, 5}, {0, 2, 4, 6},
		{1, 3, 5, 7}, {2, 3, 6, 7}, {4, 5, 6, 7},
	},
}

// NumEntities returns the number of entities of dimension d in the cell.
func NumEntities(shape form.Shape, d int) int {
	tdim := shape.Dimension()
	switch {
	case d < 0 || d > tdim:
		return 0
	case d == 0:
		return len(vertexCoords[shape])
	case d == tdim:
		return 1
	case d == 1:
		return len(edgeVertices[shape])
	case d == 2:
		return len(faceVertices[shape])
	}
	return 0
}

// EntityVertices returns the local vertex indices of entity (d, i).
func EntityVertices(shape form.Shape, d, i int) []int {
	tdim := shape.Dimension()
	switch {
	case d == 0:
		return []int{i}
	case d == tdim:
		all := make([]int, len(vertexCoords[shape]))
		for v := range all {
			all[v] = v
		}
		return all
	case d == 1:
		return edgeVertices[shape][i]
	case d == 2:
		return faceVertices[shape][i]
	}
	panic(fmt.Sprintf("no entities of dimension %d on %v", d, shape))
}

// FacetVertices returns the local vertex indices of the given facet.
func FacetVertices(shape form.Shape, facet int) []int {
	return EntityVertices(shape, shape.Dimension()-1, facet)
}

// VertexCoordinates returns the reference coordinates of all vertices, one
// row per vertex.
func VertexCoordinates(shape form.Shape) [][]float64 {
	return vertexCoords[shape]
}

// Midpoint returns the reference cell midpoint (vertex average).
func Midpoint(shape form.Shape) []float64 {
	verts := vertexCoords[shape]
	tdim := shape.Dimension()
	mid := make([]float64, tdim)
	for _, v := range verts {
		for j := 0; j < tdim; j++ {
			mid[j] += v[j]
		}
	}
	for j := range mid {
		mid[j] /= float64(len(verts))
	}
	return mid
}

// EntityClosure lists all entities in the topological closure of entity
// (d, i), the entity itself included, ordered by ascending dimension then
// local index. An entity (d', i') is in the closure exactly when its vertex
// set is contained in that of (d, i).
func EntityClosure(shape form.Shape, d, i int) []Entity {
	verts := EntityVertices(shape, d, i)
	inSet := make(map[int]bool, len(verts))
	for _, v := range verts {
		inSet[v] = true
	}
	var closure []Entity
	for dd := 0; dd <= d; dd++ {
		for ii := 0; ii < NumEntities(shape, dd); ii++ {
			contained := true
			for _, v := range EntityVertices(shape, dd, ii) {
				if !inSet[v] {
					contained = false
					break
				}
			}
			if contained {
				closure = append(closure, Entity{Dim: dd, Index: ii})
			}
		}
	}
	return closure
}
