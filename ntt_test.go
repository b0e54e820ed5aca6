package dilithium

import (
	mathrand "math/rand/v2"
	"testing"

	"github.com/tuneinsight/lattigo/v4/ring"
)

func randomPoly(rng *mathrand.Rand, bound int32) ringElement {
	var f ringElement
	for i := range f {
		f[i] = fieldElement(rng.Int32N(2*bound-1) - (bound - 1))
	}
	return f
}

func frozen[T ~[n]fieldElement](f T) (out [n]int64) {
	for i := range f {
		out[i] = int64(freeze(f[i]))
	}
	return out
}

func TestNTTRoundTrip(t *testing.T) {
	rng := mathrand.New(mathrand.NewPCG(11, 12))
	for iter := 0; iter < 1000; iter++ {
		f := randomPoly(rng, q)
		fHat := ntt(f)
		polyReduce(&fHat)
		g := invNTT(fHat)
		// invNTT leaves a factor R behind.
		for i := range g {
			g[i] = montgomeryReduce(int64(g[i]))
		}
		if frozen(g) != frozen(f) {
			t.Fatalf("iteration %d: invNTT(ntt(f)) != f", iter)
		}
	}
}

func TestNTTZero(t *testing.T) {
	var zero ringElement
	if got := ntt(zero); got != (nttElement{}) {
		t.Error("ntt(0) != 0")
	}
	if got := invNTT(nttElement{}); got != zero {
		t.Error("invNTT(0) != 0")
	}
}

// schoolbook multiplies in Z_q[X]/(X^n + 1).
func schoolbook(a, b ringElement) (c [n]int64) {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p := int64(a[i]) * int64(b[j]) % q
			if i+j < n {
				c[i+j] += p
			} else {
				c[i+j-n] -= p
			}
		}
	}
	for i := range c {
		c[i] = mod(c[i])
	}
	return c
}

func TestNTTMulMatchesSchoolbook(t *testing.T) {
	rng := mathrand.New(mathrand.NewPCG(13, 14))
	for iter := 0; iter < 20; iter++ {
		a := randomPoly(rng, q)
		b := randomPoly(rng, q)
		got := invNTT(nttMul(ntt(a), ntt(b)))
		if frozen(got) != schoolbook(a, b) {
			t.Fatalf("iteration %d: NTT product differs from schoolbook product", iter)
		}
	}
}

// TestNTTMulMatchesLattigo cross-checks the negacyclic product against an
// independent NTT implementation over the same ring.
func TestNTTMulMatchesLattigo(t *testing.T) {
	r, err := ring.NewRing(n, []uint64{q})
	if err != nil {
		t.Fatalf("ring.NewRing: %v", err)
	}

	rng := mathrand.New(mathrand.NewPCG(15, 16))
	for iter := 0; iter < 100; iter++ {
		a := randomPoly(rng, q)
		b := randomPoly(rng, q)

		pa, pb, pc := r.NewPoly(), r.NewPoly(), r.NewPoly()
		for i := 0; i < n; i++ {
			pa.Coeffs[0][i] = uint64(freeze(a[i]))
			pb.Coeffs[0][i] = uint64(freeze(b[i]))
		}
		r.NTT(pa, pa)
		r.NTT(pb, pb)
		r.MForm(pb, pb)
		r.MulCoeffsMontgomery(pa, pb, pc)
		r.InvNTT(pc, pc)

		got := frozen(invNTT(nttMul(ntt(a), ntt(b))))
		for i := 0; i < n; i++ {
			if uint64(got[i]) != pc.Coeffs[0][i] {
				t.Fatalf("iteration %d: coefficient %d = %d, lattigo has %d", iter, i, got[i], pc.Coeffs[0][i])
			}
		}
	}
}

func TestMatMulLinear(t *testing.T) {
	rng := mathrand.New(mathrand.NewPCG(17, 18))
	p := params2
	var rho [SeedSize]byte
	a := expandMatrix(rho[:], p.k, p.l)

	u := make([]ringElement, p.l)
	v := make([]ringElement, p.l)
	sum := make([]ringElement, p.l)
	for i := range u {
		u[i] = randomPoly(rng, 1<<17)
		v[i] = randomPoly(rng, 1<<17)
		sum[i] = polyAdd(u[i], v[i])
	}

	au := vecInvNTT(matMul(a, vecNTT(u)))
	av := vecInvNTT(matMul(a, vecNTT(v)))
	asum := vecInvNTT(matMul(a, vecNTT(sum)))
	for i := range asum {
		lhs := polyAdd(au[i], av[i])
		if frozen(lhs) != frozen(asum[i]) {
			t.Fatalf("row %d: A*u + A*v != A*(u+v)", i)
		}
	}
}
