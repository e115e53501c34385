// Package geometry implements the coordinate mapping between reference and
// physical cells, parameterized by a nodal Lagrange coordinate basis.
// Determinants and inverses fall back to the pseudo variants on manifold
// cells (gdim > tdim). All operations are pure functions over
// caller-supplied buffers and safe for concurrent use with per-worker
// instances.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/FEKernel/dofmap"
	"github.com/notargets/FEKernel/element"
	"github.com/notargets/FEKernel/form"
	"github.com/notargets/FEKernel/reference"
)

const (
	// newtonTol is the relative residual tolerance of the inverse mapping
	// iteration; newtonMaxIter bounds its latency on degenerate geometry.
	newtonTol         = 1.e-12
	newtonMaxIter     = 30
	newtonMaxHalvings = 10
)

// Mapping is a coordinate mapping with a degree-q Lagrange coordinate
// basis on one cell shape, embedded in gdim-dimensional space.
type Mapping struct {
	shape  form.Shape
	degree int
	gdim   int
	scalar *element.Lagrange
	sig    string
}

// NewMapping constructs a coordinate mapping for the given cell shape,
// coordinate basis degree and geometric dimension. gdim may exceed the
// cell's topological dimension for manifold cells.
func NewMapping(shape form.Shape, degree, gdim int) (*Mapping, error) {
	if gdim < shape.Dimension() {
		return nil, fmt.Errorf("geometric dimension %d below topological dimension %d",
			gdim, shape.Dimension())
	}
	scalar, err := element.NewLagrange(shape, degree)
	if err != nil {
		return nil, err
	}
	return &Mapping{
		shape:  shape,
		degree: degree,
		gdim:   gdim,
		scalar: scalar,
		sig:    fmt.Sprintf("CoordinateMapping('Lagrange', %v, %d, gdim=%d)", shape, degree, gdim),
	}, nil
}

func (cm *Mapping) Signature() string         { return cm.sig }
func (cm *Mapping) GeometricDimension() int   { return cm.gdim }
func (cm *Mapping) TopologicalDimension() int { return cm.shape.Dimension() }
func (cm *Mapping) CellShape() form.Shape     { return cm.shape }

func (cm *Mapping) CreateCoordinateElement() form.FiniteElement {
	el, _ := element.NewCoordinateElement(cm.shape, cm.degree, cm.gdim)
	return el
}

func (cm *Mapping) CreateCoordinateDofmap() form.DofMap {
	scalar, _ := dofmap.NewLagrange(cm.shape, cm.degree)
	subs := make([]form.DofMap, cm.gdim)
	for i := range subs {
		subs[i] = scalar.Create()
	}
	mixed, _ := dofmap.NewMixed(cm.shape, subs...)
	return mixed
}

func (cm *Mapping) Create() form.CoordinateMapping {
	clone, _ := NewMapping(cm.shape, cm.degree, cm.gdim)
	return clone
}

// NumCoordinateDofs returns the number of coordinate dof points per cell
// (rows of the coordinateDofs buffer).
func (cm *Mapping) NumCoordinateDofs() int { return cm.scalar.SpaceDimension() }

// ComputePhysicalCoordinates contracts the coordinate basis with the
// cell's coordinate dofs: x_i(X) = sum_d c[d][i] phi_d(X).
func (cm *Mapping) ComputePhysicalCoordinates(x []float64, numPoints int, X, coordinateDofs []float64) {
	var (
		nd   = cm.scalar.SpaceDimension()
		gdim = cm.gdim
		phi  = make([]float64, numPoints*nd)
	)
	// Extrapolation outside the cell is intentional here
	_ = cm.scalar.EvaluateReferenceBasis(phi, numPoints, X)
	for p := 0; p < numPoints; p++ {
		xp := x[p*gdim : (p+1)*gdim]
		for i := range xp {
			xp[i] = 0
		}
		for d := 0; d < nd; d++ {
			w := phi[p*nd+d]
			for i := 0; i < gdim; i++ {
				xp[i] += w * coordinateDofs[d*gdim+i]
			}
		}
	}
}

// ComputeJacobians contracts first-order basis derivatives with the
// coordinate dofs: J_ij = sum_d c[d][i] dphi_d/dX_j.
func (cm *Mapping) ComputeJacobians(J []float64, numPoints int, X, coordinateDofs []float64) {
	var (
		nd   = cm.scalar.SpaceDimension()
		tdim = cm.shape.Dimension()
		gdim = cm.gdim
		dphi = make([]float64, numPoints*nd*tdim)
	)
	_ = cm.scalar.EvaluateReferenceBasisDerivatives(dphi, 1, numPoints, X)
	for p := 0; p < numPoints; p++ {
		Jp := J[p*gdim*tdim : (p+1)*gdim*tdim]
		for i := range Jp {
			Jp[i] = 0
		}
		for d := 0; d < nd; d++ {
			for j := 0; j < tdim; j++ {
				w := dphi[(p*nd+d)*tdim+j]
				for i := 0; i < gdim; i++ {
					Jp[i*tdim+j] += w * coordinateDofs[d*gdim+i]
				}
			}
		}
	}
}

// ComputeJacobianDeterminants computes det(J) per point, or the pseudo
// determinant sqrt(det(J^T J)) on manifold cells, negated for flipped
// cells (cellOrientation == 1).
func (cm *Mapping) ComputeJacobianDeterminants(detJ []float64, numPoints int, J []float64, cellOrientation int) {
	var (
		tdim = cm.shape.Dimension()
		gdim = cm.gdim
	)
	for p := 0; p < numPoints; p++ {
		Jp := mat.NewDense(gdim, tdim, J[p*gdim*tdim:(p+1)*gdim*tdim])
		if gdim == tdim {
			detJ[p] = mat.Det(Jp)
			continue
		}
		var JtJ mat.Dense
		JtJ.Mul(Jp.T(), Jp)
		d := math.Sqrt(mat.Det(&JtJ))
		if cellOrientation == 1 {
			d = -d
		}
		detJ[p] = d
	}
}

// ComputeJacobianInverses computes K = J^-1 per point, or the Moore-Penrose
// pseudo inverse (J^T J)^-1 J^T on manifold cells.
func (cm *Mapping) ComputeJacobianInverses(K []float64, numPoints int, J, detJ []float64) {
	var (
		tdim = cm.shape.Dimension()
		gdim = cm.gdim
	)
	for p := 0; p < numPoints; p++ {
		var (
			Jp = mat.NewDense(gdim, tdim, J[p*gdim*tdim:(p+1)*gdim*tdim])
			Kp = mat.NewDense(tdim, gdim, K[p*tdim*gdim:(p+1)*tdim*gdim])
		)
		if gdim == tdim {
			// Degenerate cells leave K unusable; callers detect near-zero
			// detJ per the error taxonomy
			_ = Kp.Inverse(Jp)
			continue
		}
		var JtJ, JtJinv mat.Dense
		JtJ.Mul(Jp.T(), Jp)
		_ = JtJinv.Inverse(&JtJ)
		Kp.Mul(&JtJinv, Jp.T())
	}
}

// ComputeReferenceCoordinates inverts the coordinate map. Affine cells use
// a single linear solve; non-affine cells run a damped Newton iteration on
// the residual x(X) - x with the Jacobian as linearization. The best
// estimate is always written to X; a wrapped form.ErrNonConvergence is
// returned when any point exhausts the iteration budget.
func (cm *Mapping) ComputeReferenceCoordinates(X []float64, numPoints int, x, coordinateDofs []float64, cellOrientation int) error {
	var (
		tdim = cm.shape.Dimension()
		gdim = cm.gdim
	)
	if cm.affine() {
		// x(X) = x(v0) + J X with constant J, so X = K (x - x(v0))
		var (
			mid  = reference.Midpoint(cm.shape)
			J    = make([]float64, gdim*tdim)
			detJ = make([]float64, 1)
			K    = make([]float64, tdim*gdim)
			dx   = make([]float64, gdim)
		)
		cm.ComputeJacobians(J, 1, mid, coordinateDofs)
		cm.ComputeJacobianDeterminants(detJ, 1, J, cellOrientation)
		cm.ComputeJacobianInverses(K, 1, J, detJ)
		for p := 0; p < numPoints; p++ {
			for i := 0; i < gdim; i++ {
				dx[i] = x[p*gdim+i] - coordinateDofs[i]
			}
			for j := 0; j < tdim; j++ {
				s := 0.0
				for i := 0; i < gdim; i++ {
					s += K[j*gdim+i] * dx[i]
				}
				X[p*tdim+j] = s
			}
		}
		return nil
	}
	var firstErr error
	for p := 0; p < numPoints; p++ {
		if err := cm.newtonInvert(X[p*tdim:(p+1)*tdim], x[p*gdim:(p+1)*gdim],
			coordinateDofs, cellOrientation); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("point %d: %w", p, err)
		}
	}
	return firstErr
}

// affine reports whether the coordinate map is affine: a degree-1 basis on
// a simplex cell.
func (cm *Mapping) affine() bool {
	if cm.degree != 1 {
		return false
	}
	switch cm.shape {
	case form.Interval, form.Triangle, form.Tetrahedron:
		return true
	}
	return false
}

// newtonInvert solves x(X) = xt for one point, starting from the cell
// midpoint, with step halving when the residual does not decrease.
func (cm *Mapping) newtonInvert(Xout, xt, coordinateDofs []float64, cellOrientation int) error {
	var (
		tdim  = cm.shape.Dimension()
		gdim  = cm.gdim
		Xk    = make([]float64, tdim)
		Xtry  = make([]float64, tdim)
		xk    = make([]float64, gdim)
		r     = make([]float64, gdim)
		J     = make([]float64, gdim*tdim)
		detJ  = make([]float64, 1)
		K     = make([]float64, tdim*gdim)
		dX    = make([]float64, tdim)
		scale = 1 + norm2(xt)
	)
	copy(Xk, reference.Midpoint(cm.shape))
	res := cm.residual(xk, r, Xk, xt, coordinateDofs)
	for iter := 0; iter < newtonMaxIter; iter++ {
		if res <= newtonTol*scale {
			copy(Xout, Xk)
			return nil
		}
		cm.ComputeJacobians(J, 1, Xk, coordinateDofs)
		cm.ComputeJacobianDeterminants(detJ, 1, J, cellOrientation)
		cm.ComputeJacobianInverses(K, 1, J, detJ)
		for j := 0; j < tdim; j++ {
			s := 0.0
			for i := 0; i < gdim; i++ {
				s += K[j*gdim+i] * r[i]
			}
			dX[j] = -s
		}
		// Damped update: halve the step until the residual decreases
		lambda := 1.0
		improved := false
		for h := 0; h <= newtonMaxHalvings; h++ {
			for j := 0; j < tdim; j++ {
				Xtry[j] = Xk[j] + lambda*dX[j]
			}
			if tryRes := cm.residual(xk, r, Xtry, xt, coordinateDofs); tryRes < res {
				copy(Xk, Xtry)
				res = tryRes
				improved = true
				break
			}
			lambda /= 2
		}
		if !improved {
			break
		}
	}
	if res <= newtonTol*scale {
		copy(Xout, Xk)
		return nil
	}
	copy(Xout, Xk)
	return fmt.Errorf("residual %.3e after %d iterations: %w",
		res, newtonMaxIter, form.ErrNonConvergence)
}

// residual evaluates r = x(X) - xt and returns its Euclidean norm.
func (cm *Mapping) residual(xk, r, X, xt, coordinateDofs []float64) float64 {
	cm.ComputePhysicalCoordinates(xk, 1, X, coordinateDofs)
	for i := range r {
		r[i] = xk[i] - xt[i]
	}
	return norm2(r)
}

func norm2(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

// ComputeReferenceGeometry computes X, J, detJ and K from physical points
// by composing the primitives; geometry is evaluated at the best X
// estimate even when the inverse mapping reports non-convergence.
func (cm *Mapping) ComputeReferenceGeometry(X, J, detJ, K []float64, numPoints int,
	x, coordinateDofs []float64, cellOrientation int) error {
	err := cm.ComputeReferenceCoordinates(X, numPoints, x, coordinateDofs, cellOrientation)
	cm.ComputeJacobians(J, numPoints, X, coordinateDofs)
	cm.ComputeJacobianDeterminants(detJ, numPoints, J, cellOrientation)
	cm.ComputeJacobianInverses(K, numPoints, J, detJ)
	return err
}

// ComputeGeometry computes x, J, detJ and K from reference points by
// composing the primitives.
func (cm *Mapping) ComputeGeometry(x, J, detJ, K []float64, numPoints int,
	X, coordinateDofs []float64, cellOrientation int) {
	cm.ComputePhysicalCoordinates(x, numPoints, X, coordinateDofs)
	cm.ComputeJacobians(J, numPoints, X, coordinateDofs)
	cm.ComputeJacobianDeterminants(detJ, numPoints, J, cellOrientation)
	cm.ComputeJacobianInverses(K, numPoints, J, detJ)
}

// ComputeMidpointGeometry computes x and J at the cell midpoint.
func (cm *Mapping) ComputeMidpointGeometry(x, J []float64, coordinateDofs []float64) {
	mid := reference.Midpoint(cm.shape)
	cm.ComputePhysicalCoordinates(x, 1, mid, coordinateDofs)
	cm.ComputeJacobians(J, 1, mid, coordinateDofs)
}
