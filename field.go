package dilithium

// fieldElement is a signed integer modulo q. Values are reduced lazily:
// callers bring them back into range with reduce32 or caddq at fixed
// checkpoints.
type fieldElement int32

// ringElement is a polynomial with n coefficients in Z_q.
type ringElement [n]fieldElement

// nttElement is the NTT representation of a polynomial.
type nttElement [n]fieldElement

// Montgomery form constants.
const (
	// qInv = q^(-1) mod 2^32
	qInv = 58728449
	// montR = 2^32 mod q in centered form (Montgomery R)
	montR = -4186625
	// invN = R^2 / n mod q (inverse NTT scaling, leaves results times R)
	invN = 41978
)

// reduce32 returns r = a mod q with -6283008 <= r <= 6283008.
func reduce32(a fieldElement) fieldElement {
	t := (a + (1 << 22)) >> 23
	return a - t*q
}

// montgomeryReduce returns a * R^(-1) mod q in (-q, q) for
// |a| < 2^31 * q.
func montgomeryReduce(a int64) fieldElement {
	t := int32(a) * qInv
	return fieldElement((a - int64(t)*q) >> 32)
}

// fieldMul returns a * b * R^(-1) mod q.
func fieldMul(a, b fieldElement) fieldElement {
	return montgomeryReduce(int64(a) * int64(b))
}

// caddq adds q if a is negative.
func caddq(a fieldElement) fieldElement {
	return a + ((a >> 31) & q)
}

// freeze returns the standard representative of a in [0, q).
func freeze(a fieldElement) fieldElement {
	return caddq(reduce32(a))
}

// polyAdd adds two polynomials coefficient-wise without reduction.
func polyAdd[T ~[n]fieldElement](a, b T) (c T) {
	for i := range c {
		c[i] = a[i] + b[i]
	}
	return c
}

// polySub subtracts two polynomials coefficient-wise without reduction.
func polySub[T ~[n]fieldElement](a, b T) (c T) {
	for i := range c {
		c[i] = a[i] - b[i]
	}
	return c
}

// polyReduce applies reduce32 to every coefficient.
func polyReduce[T ~[n]fieldElement](a *T) {
	for i := range *a {
		(*a)[i] = reduce32((*a)[i])
	}
}

// polyCaddQ applies caddq to every coefficient.
func polyCaddQ(a *ringElement) {
	for i := range a {
		a[i] = caddq(a[i])
	}
}

// polyShiftL multiplies every coefficient by 2^d. Coefficients must be
// below 2^10.
func polyShiftL(a *ringElement) {
	for i := range a {
		a[i] <<= d
	}
}
