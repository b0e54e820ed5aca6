package dilithium

import "golang.org/x/crypto/sha3"

// sampleUniform generates a uniformly random polynomial in NTT domain by
// rejection sampling 23-bit chunks of SHAKE128(rho || nonce) against q.
func sampleUniform(rho []byte, nonce uint16) nttElement {
	h := newXOF128(rho, nonce)

	var buf [shake128Rate]byte
	var a nttElement
	j := 0

	for {
		h.Read(buf[:])
		for i := 0; i < len(buf) && j < n; i += 3 {
			t := fieldElement(buf[i]) | fieldElement(buf[i+1])<<8 | (fieldElement(buf[i+2])&0x7f)<<16
			if t < q {
				a[j] = t
				j++
			}
		}
		if j >= n {
			return a
		}
	}
}

// expandMatrix derives the K x L matrix A from rho. Entry (i, j) uses the
// nonce i<<8 | j.
func expandMatrix(rho []byte, k, l int) [][]nttElement {
	a := make([][]nttElement, k)
	for i := range a {
		a[i] = make([]nttElement, l)
		for j := range a[i] {
			a[i][j] = sampleUniform(rho, uint16(i)<<8|uint16(j))
		}
	}
	return a
}

// sampleEta generates a polynomial with coefficients in [-eta, eta] by
// rejection sampling the nibbles of SHAKE128(seed || nonce).
func sampleEta(seed []byte, nonce uint16, eta int32) ringElement {
	h := newXOF128(seed, nonce)

	var buf [shake128Rate]byte
	var a ringElement
	j := 0

	for j < n {
		h.Read(buf[:])
		for i := 0; i < len(buf) && j < n; i++ {
			j = rejEta(&a, j, fieldElement(buf[i]&0x0f), eta)
			if j < n {
				j = rejEta(&a, j, fieldElement(buf[i]>>4), eta)
			}
		}
	}
	return a
}

// rejEta stores the coefficient encoded by nibble t at a[j] if t is in range
// and returns the next free index.
func rejEta(a *ringElement, j int, t fieldElement, eta int32) int {
	if eta == 2 {
		if t < 15 {
			t -= ((205 * t) >> 10) * 5 // t mod 5
			a[j] = 2 - t
			return j + 1
		}
		return j
	}
	if t < 9 {
		a[j] = 4 - t
		return j + 1
	}
	return j
}

// sampleMask generates a masking polynomial with coefficients in
// (-gamma1, gamma1] from SHAKE256(seed || nonce).
func sampleMask(seed []byte, nonce uint16, gamma1 int32) ringElement {
	h := newXOF256(seed, nonce)

	var buf [encodingSize20]byte
	var f ringElement
	if gamma1 == gamma1Pow17 {
		h.Read(buf[:encodingSize18])
	} else {
		h.Read(buf[:])
	}
	unpackZ(buf[:], &f, gamma1)
	return f
}

// sampleChallenge generates the challenge polynomial c with tau coefficients
// in {-1, 1} and the rest zero, using a Fisher-Yates shuffle driven by
// SHAKE256(seed).
func sampleChallenge(seed []byte, tau int) ringElement {
	h := sha3.NewShake256()
	h.Write(seed)

	var buf [shake256Rate]byte
	h.Read(buf[:])

	// First 8 bytes encode sign bits
	var signs uint64
	for i := 0; i < 8; i++ {
		signs |= uint64(buf[i]) << (8 * i)
	}
	offset := 8

	var c ringElement
	for i := n - tau; i < n; i++ {
		// Sample b uniformly from [0, i]
		var b int
		for {
			if offset >= len(buf) {
				h.Read(buf[:])
				offset = 0
			}
			b = int(buf[offset])
			offset++
			if b <= i {
				break
			}
		}

		c[i] = c[b]
		c[b] = 1 - 2*fieldElement(signs&1)
		signs >>= 1
	}
	return c
}
