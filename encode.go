package dilithium

import "encoding/binary"

// The packers below do not validate their input: coefficients outside the
// documented range produce garbage bytes, not errors. Callers enforce
// ranges with checkNorm and decompose before packing.

// packT1 packs a polynomial with 10-bit coefficients in [0, 2^10) into b.
func packT1(b []byte, f *ringElement) {
	for i := 0; i < n; i += 4 {
		x := uint64(f[i]) | uint64(f[i+1])<<10 | uint64(f[i+2])<<20 | uint64(f[i+3])<<30
		b[0] = byte(x)
		b[1] = byte(x >> 8)
		b[2] = byte(x >> 16)
		b[3] = byte(x >> 24)
		b[4] = byte(x >> 32)
		b = b[5:]
	}
}

// unpackT1 unpacks a polynomial with 10-bit coefficients.
func unpackT1(b []byte, f *ringElement) {
	for i := 0; i < n; i += 4 {
		x := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 | uint64(b[4])<<32
		f[i] = fieldElement(x & 0x3FF)
		f[i+1] = fieldElement((x >> 10) & 0x3FF)
		f[i+2] = fieldElement((x >> 20) & 0x3FF)
		f[i+3] = fieldElement((x >> 30) & 0x3FF)
		b = b[5:]
	}
}

// packT0 packs a polynomial with coefficients in (-2^12, 2^12] as
// 13-bit values 2^12 - a.
func packT0(b []byte, f *ringElement) {
	const center = 1 << (d - 1)
	for i := 0; i < n; i += 8 {
		var x1, x2 uint64
		x1 = uint64(center - f[i])
		x1 |= uint64(center-f[i+1]) << 13
		x1 |= uint64(center-f[i+2]) << 26
		x1 |= uint64(center-f[i+3]) << 39
		a := uint64(center - f[i+4])
		x1 |= a << 52
		x2 = a >> 12
		x2 |= uint64(center-f[i+5]) << 1
		x2 |= uint64(center-f[i+6]) << 14
		x2 |= uint64(center-f[i+7]) << 27

		binary.LittleEndian.PutUint64(b, x1)
		b[8] = byte(x2)
		b[9] = byte(x2 >> 8)
		b[10] = byte(x2 >> 16)
		b[11] = byte(x2 >> 24)
		b[12] = byte(x2 >> 32)
		b = b[13:]
	}
}

// unpackT0 unpacks a polynomial packed with packT0.
func unpackT0(b []byte, f *ringElement) {
	const center = 1 << (d - 1)
	const mask = (1 << 13) - 1
	for i := 0; i < n; i += 8 {
		x1 := binary.LittleEndian.Uint64(b)
		x2 := uint64(b[8]) | uint64(b[9])<<8 | uint64(b[10])<<16 | uint64(b[11])<<24 | uint64(b[12])<<32
		b = b[13:]

		f[i] = center - fieldElement(x1&mask)
		f[i+1] = center - fieldElement((x1>>13)&mask)
		f[i+2] = center - fieldElement((x1>>26)&mask)
		f[i+3] = center - fieldElement((x1>>39)&mask)
		f[i+4] = center - fieldElement(((x1>>52)|(x2<<12))&mask)
		f[i+5] = center - fieldElement((x2>>1)&mask)
		f[i+6] = center - fieldElement((x2>>14)&mask)
		f[i+7] = center - fieldElement((x2>>27)&mask)
	}
}

// packEta packs a polynomial with coefficients in [-eta, eta] as eta - a,
// using 3 bits for eta = 2 and 4 bits for eta = 4.
func packEta(b []byte, f *ringElement, eta int32) {
	e := fieldElement(eta)
	if eta == 2 {
		for i := 0; i < n; i += 8 {
			var x uint32
			for j := 0; j < 8; j++ {
				x |= uint32(e-f[i+j]) << (3 * j)
			}
			b[0] = byte(x)
			b[1] = byte(x >> 8)
			b[2] = byte(x >> 16)
			b = b[3:]
		}
		return
	}
	for i := 0; i < n; i += 2 {
		b[i/2] = byte(e-f[i]) | byte(e-f[i+1])<<4
	}
}

// unpackEta unpacks a polynomial packed with packEta.
func unpackEta(b []byte, f *ringElement, eta int32) {
	e := fieldElement(eta)
	if eta == 2 {
		for i := 0; i < n; i += 8 {
			x := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
			b = b[3:]
			for j := 0; j < 8; j++ {
				f[i+j] = e - fieldElement((x>>(3*j))&0x7)
			}
		}
		return
	}
	for i := 0; i < n; i += 2 {
		f[i] = e - fieldElement(b[i/2]&0x0F)
		f[i+1] = e - fieldElement(b[i/2]>>4)
	}
}

// packZ packs a polynomial with coefficients in (-gamma1, gamma1] as
// gamma1 - a, using 18 bits for gamma1 = 2^17 and 20 bits for 2^19.
func packZ(b []byte, f *ringElement, gamma1 int32) {
	g := fieldElement(gamma1)
	if gamma1 == gamma1Pow17 {
		for i := 0; i < n; i += 4 {
			var x1, x2 uint64
			x1 = uint64(g - f[i])
			x1 |= uint64(g-f[i+1]) << 18
			x1 |= uint64(g-f[i+2]) << 36
			x2 = uint64(g - f[i+3])
			x1 |= x2 << 54
			x2 >>= 10

			binary.LittleEndian.PutUint64(b, x1)
			b[8] = byte(x2)
			b = b[9:]
		}
		return
	}
	for i := 0; i < n; i += 2 {
		x := uint64(g-f[i]) | uint64(g-f[i+1])<<20
		b[0] = byte(x)
		b[1] = byte(x >> 8)
		b[2] = byte(x >> 16)
		b[3] = byte(x >> 24)
		b[4] = byte(x >> 32)
		b = b[5:]
	}
}

// unpackZ unpacks a polynomial packed with packZ.
func unpackZ(b []byte, f *ringElement, gamma1 int32) {
	g := fieldElement(gamma1)
	if gamma1 == gamma1Pow17 {
		const mask = (1 << 18) - 1
		for i := 0; i < n; i += 4 {
			x1 := binary.LittleEndian.Uint64(b)
			x2 := uint64(b[8])
			b = b[9:]
			f[i] = g - fieldElement(x1&mask)
			f[i+1] = g - fieldElement((x1>>18)&mask)
			f[i+2] = g - fieldElement((x1>>36)&mask)
			f[i+3] = g - fieldElement(((x1>>54)|(x2<<10))&mask)
		}
		return
	}
	const mask = (1 << 20) - 1
	for i := 0; i < n; i += 2 {
		x := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 | uint64(b[4])<<32
		b = b[5:]
		f[i] = g - fieldElement(x&mask)
		f[i+1] = g - fieldElement((x>>20)&mask)
	}
}

// packW1 packs the high bits w1: 6 bits per coefficient for
// gamma2 = (q-1)/88, 4 bits for gamma2 = (q-1)/32.
func packW1(b []byte, f *ringElement, gamma2 int32) {
	if gamma2 == gamma2QMinus1Div88 {
		for i := 0; i < n; i += 4 {
			x := uint32(f[i]) | uint32(f[i+1])<<6 | uint32(f[i+2])<<12 | uint32(f[i+3])<<18
			b[0] = byte(x)
			b[1] = byte(x >> 8)
			b[2] = byte(x >> 16)
			b = b[3:]
		}
		return
	}
	for i := 0; i < n; i += 2 {
		b[i/2] = byte(f[i]) | byte(f[i+1])<<4
	}
}

// packHint writes the sparse hint encoding into b, which must hold
// omega + len(hints) zeroed bytes. The caller ensures at most omega hints
// are set.
func packHint(b []byte, hints []ringElement, omega int) {
	idx := 0
	for i := range hints {
		for j := 0; j < n; j++ {
			if hints[i][j] != 0 {
				b[idx] = byte(j)
				idx++
			}
		}
		b[omega+i] = byte(idx)
	}
}

// unpackHint decodes the sparse hint encoding into hints, rejecting every
// non-canonical form: decreasing or oversized counts, indices that are not
// strictly increasing within a polynomial, and non-zero padding.
func unpackHint(b []byte, hints []ringElement, omega int) bool {
	idx := 0
	for i := range hints {
		limit := int(b[omega+i])
		if limit < idx || limit > omega {
			return false
		}
		first := idx
		for ; idx < limit; idx++ {
			pos := b[idx]
			if idx > first && b[idx-1] >= pos {
				return false
			}
			hints[i][pos] = 1
		}
	}
	for ; idx < omega; idx++ {
		if b[idx] != 0 {
			return false
		}
	}
	return true
}
