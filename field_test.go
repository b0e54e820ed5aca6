package dilithium

import (
	mathrand "math/rand/v2"
	"testing"
)

// mod returns the standard representative of a modulo q.
func mod(a int64) int64 {
	r := a % q
	if r < 0 {
		r += q
	}
	return r
}

func TestPolyReduce(t *testing.T) {
	rng := mathrand.New(mathrand.NewPCG(5, 6))
	var a ringElement
	var b nttElement
	for i := range a {
		a[i] = fieldElement(rng.Int32())
		b[i] = a[i]
	}
	want := a
	polyReduce(&a)
	polyReduce(&b)
	for i := range a {
		if a[i] != reduce32(want[i]) || b[i] != a[i] {
			t.Fatalf("coefficient %d: got %d and %d, want %d", i, a[i], b[i], reduce32(want[i]))
		}
	}
}

func TestReduce32(t *testing.T) {
	rng := mathrand.New(mathrand.NewPCG(1, 2))
	const limit = 1<<31 - 1<<22
	for i := 0; i < 100000; i++ {
		a := fieldElement(rng.Int64N(2*limit) - limit)
		r := reduce32(a)
		if r < -6283008 || r > 6283008 {
			t.Fatalf("reduce32(%d) = %d, out of range", a, r)
		}
		if mod(int64(r)) != mod(int64(a)) {
			t.Fatalf("reduce32(%d) = %d, not congruent", a, r)
		}
	}
}

func TestMontgomeryReduce(t *testing.T) {
	const r = 4193792 // 2^32 mod q
	rng := mathrand.New(mathrand.NewPCG(3, 4))
	bound := int64(q) << 31
	for i := 0; i < 100000; i++ {
		a := rng.Int64N(2*bound) - bound
		got := montgomeryReduce(a)
		if got <= -q || got >= q {
			t.Fatalf("montgomeryReduce(%d) = %d, out of range", a, got)
		}
		if mod(int64(got)*r) != mod(a) {
			t.Fatalf("montgomeryReduce(%d) = %d, not a*R^-1", a, got)
		}
	}
	if got := montgomeryReduce(int64(montR)); mod(int64(got)) != 1 {
		t.Errorf("montgomeryReduce(R) = %d, want 1", got)
	}
}

func TestFreeze(t *testing.T) {
	for _, a := range []fieldElement{0, 1, -1, q - 1, q, -q, q + 1, 6283008, -6283008, 1 << 30, -(1 << 30)} {
		got := freeze(a)
		if got < 0 || got >= q {
			t.Errorf("freeze(%d) = %d, out of [0, q)", a, got)
		}
		if int64(got) != mod(int64(a)) {
			t.Errorf("freeze(%d) = %d, want %d", a, got, mod(int64(a)))
		}
	}
}

func TestPower2Round(t *testing.T) {
	for a := fieldElement(0); a < q; a += 7 {
		a1, a0 := power2Round(a)
		if a1<<d+a0 != a {
			t.Fatalf("power2Round(%d) = (%d, %d), does not recombine", a, a1, a0)
		}
		if a0 <= -(1<<(d-1)) || a0 > 1<<(d-1) {
			t.Fatalf("power2Round(%d): a0 = %d out of range", a, a0)
		}
		if a1 < 0 || a1 >= 1<<10 {
			t.Fatalf("power2Round(%d): a1 = %d out of range", a, a1)
		}
	}
}

func TestDecompose(t *testing.T) {
	for _, tc := range []struct {
		gamma2 int32
		m      fieldElement
	}{
		{gamma2QMinus1Div88, 44},
		{gamma2QMinus1Div32, 16},
	} {
		g := fieldElement(tc.gamma2)
		for a := fieldElement(0); a < q; a++ {
			a1, a0 := decompose(a, tc.gamma2)
			if a1 < 0 || a1 >= tc.m {
				t.Fatalf("gamma2=%d: decompose(%d): a1 = %d out of range", g, a, a1)
			}
			if a0 < -g || a0 > g {
				t.Fatalf("gamma2=%d: decompose(%d): a0 = %d out of range", g, a, a0)
			}
			if mod(int64(a1)*2*int64(g)+int64(a0)) != int64(a) {
				t.Fatalf("gamma2=%d: decompose(%d) = (%d, %d), does not recombine", g, a, a1, a0)
			}
		}
	}
}

// TestHintRecoversHighBits checks that a hint computed from the corrected
// low part lets useHint recover the original high bits, the way signing and
// verification use them.
func TestHintRecoversHighBits(t *testing.T) {
	rng := mathrand.New(mathrand.NewPCG(5, 6))
	for _, p := range allParams {
		g := p.gamma2
		for i := 0; i < 200000; i++ {
			w := fieldElement(rng.Int32N(q))
			w1, w0 := decompose(w, g)
			// r0 plays w0 - c*s2, e plays c*t0.
			r0 := fieldElement(rng.Int32N(2*(g-p.beta)-1) - (g - p.beta - 1))
			e := fieldElement(rng.Int32N(2*g-1) - (g - 1))

			shifted := freeze(w + (r0 - w0) + e)
			h := makeHint(caddq(r0+e), w1, g)
			if got := useHint(shifted, h, g); got != w1 {
				t.Fatalf("%s: w=%d r0=%d e=%d: useHint = %d, want %d", p.name, w, r0, e, got, w1)
			}
		}
	}
}

func TestMakeHintBoundaries(t *testing.T) {
	for _, g := range []int32{gamma2QMinus1Div88, gamma2QMinus1Div32} {
		gf := fieldElement(g)
		tests := []struct {
			a0, a1 fieldElement
			want   fieldElement
		}{
			{0, 1, 0},
			{gf, 1, 0},
			{gf + 1, 1, 1},
			{q - gf - 1, 1, 1},
			{q - gf, 1, 1},
			{q - gf, 0, 0},
			{q - gf + 1, 1, 0},
			{q - 1, 3, 0},
		}
		for _, tt := range tests {
			if got := makeHint(tt.a0, tt.a1, g); got != tt.want {
				t.Errorf("gamma2=%d: makeHint(%d, %d) = %d, want %d", g, tt.a0, tt.a1, got, tt.want)
			}
		}
	}
}

func TestUseHintWraps(t *testing.T) {
	// The top high-bits value wraps to zero and zero wraps to the top.
	for _, tc := range []struct {
		gamma2 int32
		top    fieldElement
	}{
		{gamma2QMinus1Div88, 43},
		{gamma2QMinus1Div32, 15},
	} {
		g := fieldElement(tc.gamma2)
		top := tc.top*2*g + 1 // high bits = top, low bits > 0
		if got := useHint(top, 1, tc.gamma2); got != 0 {
			t.Errorf("gamma2=%d: useHint(top, 1) = %d, want 0", g, got)
		}
		if got := useHint(0, 1, tc.gamma2); got != tc.top {
			t.Errorf("gamma2=%d: useHint(0, 1) = %d, want %d", g, got, tc.top)
		}
		if got := useHint(top, 0, tc.gamma2); got != tc.top {
			t.Errorf("gamma2=%d: useHint(top, 0) = %d, want %d", g, got, tc.top)
		}
	}
}

func TestCheckNorm(t *testing.T) {
	var a ringElement
	if checkNorm(&a, 1) {
		t.Error("zero polynomial rejected with bound 1")
	}
	a[17] = -5
	if !checkNorm(&a, 5) {
		t.Error("|-5| accepted with bound 5")
	}
	if checkNorm(&a, 6) {
		t.Error("|-5| rejected with bound 6")
	}
	a[200] = 5
	if !checkNorm(&a, 5) {
		t.Error("|5| accepted with bound 5")
	}
	if !checkNorm(&ringElement{}, (q-1)/8+1) {
		t.Error("bound above (q-1)/8 accepted")
	}
}

func TestCountOnes(t *testing.T) {
	v := make([]ringElement, 3)
	v[0][0] = 1
	v[1][255] = 1
	v[2][7] = 1
	v[2][8] = 1
	if got := countOnes(v); got != 4 {
		t.Errorf("countOnes = %d, want 4", got)
	}
}
