package dilithium

// power2Round splits a in [0, q) into (a1, a0) with a = a1*2^d + a0 and
// -2^(d-1) < a0 <= 2^(d-1).
func power2Round(a fieldElement) (a1, a0 fieldElement) {
	a1 = (a + (1 << (d - 1)) - 1) >> d
	a0 = a - a1<<d
	return a1, a0
}

// decompose splits a in [0, q) into (a1, a0) with a = a1*2*gamma2 + a0 mod q
// and a0 centered. The q-1 corner case maps to a1 = 0.
func decompose(a fieldElement, gamma2 int32) (a1, a0 fieldElement) {
	a1 = (a + 127) >> 7
	if gamma2 == gamma2QMinus1Div32 {
		a1 = (a1*1025 + (1 << 21)) >> 22
		a1 &= 15
	} else {
		a1 = (a1*11275 + (1 << 23)) >> 24
		a1 ^= ((43 - a1) >> 31) & a1
	}

	a0 = a - a1*2*fieldElement(gamma2)
	a0 -= ((qMinus1Div2 - a0) >> 31) & q
	return a1, a0
}

// isNonZero returns 1 if x != 0 and 0 otherwise.
func isNonZero(x fieldElement) fieldElement {
	return fieldElement(uint32(x|-x) >> 31)
}

// makeHint returns 1 if the low part a0 in [0, q) carries into the high part
// a1, that is gamma2 < a0 <= q-gamma2 except a0 == q-gamma2 with a1 == 0.
func makeHint(a0, a1 fieldElement, gamma2 int32) fieldElement {
	g := fieldElement(gamma2)
	above := fieldElement(uint32(g-a0) >> 31)               // a0 > gamma2
	notTop := 1 - fieldElement(uint32((q-g)-a0)>>31)        // a0 <= q-gamma2
	edge := (1 - isNonZero((q-g)^a0)) & (1 - isNonZero(a1)) // a0 == q-gamma2 && a1 == 0
	return above & notTop & (1 ^ edge)
}

// useHint returns the high bits of a corrected by hint.
func useHint(a, hint fieldElement, gamma2 int32) fieldElement {
	a1, a0 := decompose(a, gamma2)

	// +1 if a0 > 0, -1 otherwise, zero when no hint is set.
	delta := (2*fieldElement(uint32(-a0)>>31) - 1) * hint
	a1 += delta

	if gamma2 == gamma2QMinus1Div32 {
		return a1 & 15
	}
	// m = 44 for gamma2 = (q-1)/88
	a1 += (a1 >> 31) & 44
	a1 -= ((43 - a1) >> 31) & 44
	return a1
}

// checkNorm reports whether any coefficient of a reduced polynomial has
// absolute value >= bound. The loop stops at the first offending
// coefficient, which only reveals that the candidate is rejected.
func checkNorm[T ~[n]fieldElement](a *T, bound int32) bool {
	if bound > (q-1)/8 {
		return true
	}
	for i := range *a {
		t := (*a)[i] >> 31
		t = (*a)[i] - (t & (2 * (*a)[i]))
		if t >= fieldElement(bound) {
			return true
		}
	}
	return false
}

// countOnes counts the number of non-zero coefficients in a vector.
func countOnes[T ~[n]fieldElement](v []T) int {
	count := 0
	for i := range v {
		for j := range v[i] {
			count += int(isNonZero(v[i][j]))
		}
	}
	return count
}
