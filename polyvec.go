package dilithium

// Vector and matrix forms of the polynomial operations. Vectors have length
// K or L; the matrix A is stored row-major as K rows of L NTT polynomials.

func vecNTT(v []ringElement) []nttElement {
	out := make([]nttElement, len(v))
	for i := range v {
		out[i] = ntt(v[i])
	}
	return out
}

func vecInvNTT(v []nttElement) []ringElement {
	out := make([]ringElement, len(v))
	for i := range v {
		out[i] = invNTT(v[i])
	}
	return out
}

func vecReduce[T ~[n]fieldElement](v []T) {
	for i := range v {
		polyReduce(&v[i])
	}
}

func vecCaddQ(v []ringElement) {
	for i := range v {
		polyCaddQ(&v[i])
	}
}

func vecAdd(a, b []ringElement) {
	for i := range a {
		a[i] = polyAdd(a[i], b[i])
	}
}

func vecSub(a, b []ringElement) {
	for i := range a {
		a[i] = polySub(a[i], b[i])
	}
}

// vecCheckNorm reports whether any polynomial of v fails checkNorm.
func vecCheckNorm(v []ringElement, bound int32) bool {
	for i := range v {
		if checkNorm(&v[i], bound) {
			return true
		}
	}
	return false
}

// vecScale returns c*v[i] for every i, back in the normal domain.
func vecScale(c nttElement, v []nttElement) []ringElement {
	out := make([]ringElement, len(v))
	for i := range v {
		out[i] = invNTT(nttMul(c, v[i]))
	}
	return out
}

// matMul returns A*v in the NTT domain, reduced so it can be fed to invNTT.
func matMul(a [][]nttElement, v []nttElement) []nttElement {
	out := make([]nttElement, len(a))
	for i, row := range a {
		var acc nttElement
		for j := range row {
			acc = polyAdd(acc, nttMul(row[j], v[j]))
		}
		polyReduce(&acc)
		out[i] = acc
	}
	return out
}
