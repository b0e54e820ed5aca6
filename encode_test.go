package dilithium

import (
	"bytes"
	mathrand "math/rand/v2"
	"testing"
)

// unpackW1 reverses packW1. Production code only ever hashes w1, so the
// inverse lives here.
func unpackW1(b []byte, f *ringElement, gamma2 int32) {
	if gamma2 == gamma2QMinus1Div88 {
		for i := 0; i < n; i += 4 {
			x := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
			b = b[3:]
			for j := 0; j < 4; j++ {
				f[i+j] = fieldElement((x >> (6 * j)) & 0x3F)
			}
		}
		return
	}
	for i := 0; i < n; i += 2 {
		f[i] = fieldElement(b[i/2] & 0x0F)
		f[i+1] = fieldElement(b[i/2] >> 4)
	}
}

// uniformPoly returns coefficients in [lo, hi].
func uniformPoly(rng *mathrand.Rand, lo, hi int32) ringElement {
	var f ringElement
	for i := range f {
		f[i] = fieldElement(lo + rng.Int32N(hi-lo+1))
	}
	return f
}

func TestPackT1RoundTrip(t *testing.T) {
	rng := mathrand.New(mathrand.NewPCG(21, 22))
	for iter := 0; iter < 100; iter++ {
		f := uniformPoly(rng, 0, 1<<10-1)
		b := make([]byte, encodingSize10)
		packT1(b, &f)
		var g ringElement
		unpackT1(b, &g)
		if f != g {
			t.Fatalf("iteration %d: t1 round trip mismatch", iter)
		}
	}
}

func TestPackT0RoundTrip(t *testing.T) {
	rng := mathrand.New(mathrand.NewPCG(23, 24))
	for iter := 0; iter < 100; iter++ {
		f := uniformPoly(rng, -(1<<(d-1))+1, 1<<(d-1))
		b := make([]byte, encodingSize13)
		packT0(b, &f)
		var g ringElement
		unpackT0(b, &g)
		if f != g {
			t.Fatalf("iteration %d: t0 round trip mismatch", iter)
		}
	}
}

func TestPackEtaRoundTrip(t *testing.T) {
	rng := mathrand.New(mathrand.NewPCG(25, 26))
	for _, tc := range []struct {
		eta  int32
		size int
	}{
		{2, encodingSize3},
		{4, encodingSize4},
	} {
		for iter := 0; iter < 100; iter++ {
			f := uniformPoly(rng, -tc.eta, tc.eta)
			b := make([]byte, tc.size)
			packEta(b, &f, tc.eta)
			var g ringElement
			unpackEta(b, &g, tc.eta)
			if f != g {
				t.Fatalf("eta=%d iteration %d: round trip mismatch", tc.eta, iter)
			}
		}
	}
}

func TestPackZRoundTrip(t *testing.T) {
	rng := mathrand.New(mathrand.NewPCG(27, 28))
	for _, tc := range []struct {
		gamma1 int32
		size   int
	}{
		{gamma1Pow17, encodingSize18},
		{gamma1Pow19, encodingSize20},
	} {
		for iter := 0; iter < 100; iter++ {
			f := uniformPoly(rng, -tc.gamma1+1, tc.gamma1)
			f[0], f[1] = fieldElement(-tc.gamma1+1), fieldElement(tc.gamma1)
			b := make([]byte, tc.size)
			packZ(b, &f, tc.gamma1)
			var g ringElement
			unpackZ(b, &g, tc.gamma1)
			if f != g {
				t.Fatalf("gamma1=%d iteration %d: round trip mismatch", tc.gamma1, iter)
			}
		}
	}
}

func TestPackW1RoundTrip(t *testing.T) {
	rng := mathrand.New(mathrand.NewPCG(29, 30))
	for _, tc := range []struct {
		gamma2 int32
		max    int32
		size   int
	}{
		{gamma2QMinus1Div88, 43, encodingSize6},
		{gamma2QMinus1Div32, 15, encodingSize4},
	} {
		for iter := 0; iter < 100; iter++ {
			f := uniformPoly(rng, 0, tc.max)
			b := make([]byte, tc.size)
			packW1(b, &f, tc.gamma2)
			var g ringElement
			unpackW1(b, &g, tc.gamma2)
			if f != g {
				t.Fatalf("gamma2=%d iteration %d: round trip mismatch", tc.gamma2, iter)
			}
		}
	}
}

func TestPackHintRoundTrip(t *testing.T) {
	const k, omega = 4, 80
	hints := make([]ringElement, k)
	hints[0][3] = 1
	hints[0][200] = 1
	hints[2][0] = 1
	hints[3][255] = 1

	b := make([]byte, omega+k)
	packHint(b, hints, omega)
	want := []byte{3, 200, 0, 255}
	if !bytes.Equal(b[:4], want) {
		t.Errorf("indices = %v, want %v", b[:4], want)
	}
	if !bytes.Equal(b[omega:], []byte{2, 2, 3, 4}) {
		t.Errorf("counts = %v, want [2 2 3 4]", b[omega:])
	}

	got := make([]ringElement, k)
	if !unpackHint(b, got, omega) {
		t.Fatal("unpackHint rejected a canonical encoding")
	}
	for i := range hints {
		if got[i] != hints[i] {
			t.Errorf("polynomial %d differs after round trip", i)
		}
	}
}

func TestUnpackHintRejectsNonCanonical(t *testing.T) {
	const k, omega = 4, 80
	valid := func() []byte {
		b := make([]byte, omega+k)
		b[0], b[1], b[2] = 5, 9, 7
		b[omega+0] = 2
		b[omega+1] = 2
		b[omega+2] = 3
		b[omega+3] = 3
		return b
	}

	if !unpackHint(valid(), make([]ringElement, k), omega) {
		t.Fatal("baseline encoding rejected")
	}

	tests := []struct {
		name   string
		mutate func(b []byte)
	}{
		{"decreasing count", func(b []byte) { b[omega+1] = 1 }},
		{"count above omega", func(b []byte) { b[omega+3] = omega + 1 }},
		{"unsorted indices", func(b []byte) { b[0], b[1] = 9, 5 }},
		{"repeated index", func(b []byte) { b[1] = 5 }},
		{"non-zero padding", func(b []byte) { b[omega-1] = 1 }},
		{"padding right after hints", func(b []byte) { b[3] = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(b)
			if unpackHint(b, make([]ringElement, k), omega) {
				t.Error("non-canonical hint encoding accepted")
			}
		})
	}
}
