package element

// transformIdentityDerivatives applies the chain rule mapping reference
// basis derivatives to physical derivatives for identity-mapped value
// spaces:
//
//	d^n phi / dx_{i1}..dx_{in} =
//	    sum_{j1..jn} K[j1][i1] .. K[jn][in] d^n phi / dX_{j1}..dX_{jn}
//
// Layouts: referenceValues[numPoints][spaceDim][tdim^order][valueSize],
// values[numPoints][spaceDim][gdim^order][valueSize], K[numPoints][tdim][gdim].
func transformIdentityDerivatives(values, referenceValues, K []float64,
	order, numPoints, spaceDim, valueSize, tdim, gdim int) {

	ndRef := numDerivatives(tdim, order)
	ndPhys := numDerivatives(gdim, order)

	refDigits := make([]int, order)
	physDigits := make([]int, order)

	for p := 0; p < numPoints; p++ {
		kp := K[p*tdim*gdim : (p+1)*tdim*gdim]
		for dof := 0; dof < spaceDim; dof++ {
			refBase := ((p*spaceDim)+dof)*ndRef*valueSize
			physBase := ((p*spaceDim)+dof)*ndPhys*valueSize
			for rp := 0; rp < ndPhys; rp++ {
				decodeDerivIndex(rp, order, gdim, physDigits)
				out := values[physBase+rp*valueSize : physBase+(rp+1)*valueSize]
				for c := range out {
					out[c] = 0
				}
				for rr := 0; rr < ndRef; rr++ {
					decodeDerivIndex(rr, order, tdim, refDigits)
					w := 1.0
					for k := 0; k < order; k++ {
						w *= kp[refDigits[k]*gdim+physDigits[k]]
					}
					if w == 0 {
						continue
					}
					ref := referenceValues[refBase+rr*valueSize : refBase+(rr+1)*valueSize]
					for c := range out {
						out[c] += w * ref[c]
					}
				}
			}
		}
	}
}

// decodeDerivIndex expands the flat derivative index into its multi-index
// digits, most significant first, matching the lexicographic enumeration.
func decodeDerivIndex(index, order, dim int, digits []int) {
	for k := order - 1; k >= 0; k-- {
		digits[k] = index % dim
		index /= dim
	}
}
