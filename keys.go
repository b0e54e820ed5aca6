package dilithium

import (
	"bytes"
	"crypto"
	"crypto/subtle"
	"io"
	"sync"
)

// PublicKey is a Dilithium public key. It is immutable and safe for
// concurrent use.
type PublicKey struct {
	p     *params
	rho   [SeedSize]byte // Public seed
	t1    []ringElement  // High bits of t
	tr    [crhSize]byte  // H(pk)
	a     [][]nttElement // Matrix A in NTT form
	t1Hat []nttElement   // NTT(t1 * 2^d)
	enc   []byte
}

// PrivateKey is a Dilithium private key. It is immutable and safe for
// concurrent use.
type PrivateKey struct {
	p   *params
	rho [SeedSize]byte // Public seed
	key [SeedSize]byte // Private seed for signing
	tr  [crhSize]byte  // H(pk)
	s1  []ringElement  // Secret vector, L polynomials
	s2  []ringElement  // Secret vector, K polynomials
	t0  []ringElement  // Low bits of t
	a   [][]nttElement // Matrix A in NTT form

	s1Hat, s2Hat, t0Hat []nttElement

	pubOnce sync.Once
	pub     *PublicKey
}

// GenerateKey generates a new key pair for the given parameter set, drawing
// a 32-byte seed from rand.
func GenerateKey(set ParameterSet, rand io.Reader) (*PublicKey, *PrivateKey, error) {
	p, err := paramsFor(set)
	if err != nil {
		return nil, nil, err
	}
	var seed [SeedSize]byte
	if err := readRandom(rand, seed[:], "generate "+p.name); err != nil {
		return nil, nil, err
	}
	pk, sk := generate(p, &seed)
	return pk, sk, nil
}

// NewKeyFromSeed deterministically derives a key pair from a 32-byte seed.
func NewKeyFromSeed(set ParameterSet, seed []byte) (*PublicKey, *PrivateKey, error) {
	p, err := paramsFor(set)
	if err != nil {
		return nil, nil, err
	}
	if len(seed) != SeedSize {
		return nil, nil, ErrInvalidSeedSize
	}
	pk, sk := generate(p, (*[SeedSize]byte)(seed))
	return pk, sk, nil
}

// generate derives all key components from the seed.
func generate(p *params, seed *[SeedSize]byte) (*PublicKey, *PrivateKey) {
	// Expand seed: SHAKE256(seed) = rho || rho' || key
	var expanded [3 * SeedSize]byte
	shake256(expanded[:], seed[:])
	rhoPrime := expanded[SeedSize : 2*SeedSize]

	sk := &PrivateKey{p: p}
	copy(sk.rho[:], expanded[:SeedSize])
	copy(sk.key[:], expanded[2*SeedSize:])

	sk.a = expandMatrix(sk.rho[:], p.k, p.l)
	sk.s1 = make([]ringElement, p.l)
	for i := range sk.s1 {
		sk.s1[i] = sampleEta(rhoPrime, uint16(i), p.eta)
	}
	sk.s2 = make([]ringElement, p.k)
	for i := range sk.s2 {
		sk.s2[i] = sampleEta(rhoPrime, uint16(p.l+i), p.eta)
	}
	sk.s1Hat = vecNTT(sk.s1)

	t1, t0 := splitT(sk.a, sk.s1Hat, sk.s2)
	sk.t0 = t0

	pk := newPublicKey(p, &sk.rho, t1, sk.a)
	sk.tr = pk.tr
	sk.s2Hat = vecNTT(sk.s2)
	sk.t0Hat = vecNTT(sk.t0)
	sk.pubOnce.Do(func() { sk.pub = pk })
	return pk, sk
}

// splitT computes t = A*s1 + s2 and splits it with power2Round.
func splitT(a [][]nttElement, s1Hat []nttElement, s2 []ringElement) (t1, t0 []ringElement) {
	t := vecInvNTT(matMul(a, s1Hat))
	vecAdd(t, s2)
	vecReduce(t)
	vecCaddQ(t)

	t1 = make([]ringElement, len(t))
	t0 = make([]ringElement, len(t))
	for i := range t {
		for j := range t[i] {
			t1[i][j], t0[i][j] = power2Round(t[i][j])
		}
	}
	return t1, t0
}

// newPublicKey assembles a public key and its cached encoding, tr and
// NTT(t1 * 2^d). a may be nil, in which case it is expanded from rho.
func newPublicKey(p *params, rho *[SeedSize]byte, t1 []ringElement, a [][]nttElement) *PublicKey {
	pk := &PublicKey{p: p, rho: *rho, t1: t1, a: a}
	if pk.a == nil {
		pk.a = expandMatrix(pk.rho[:], p.k, p.l)
	}

	pk.enc = make([]byte, p.publicKeySize)
	copy(pk.enc, pk.rho[:])
	for i := range t1 {
		packT1(pk.enc[SeedSize+i*encodingSize10:], &t1[i])
	}
	shake256(pk.tr[:], pk.enc)

	pk.t1Hat = make([]nttElement, p.k)
	for i := range t1 {
		t := t1[i]
		polyShiftL(&t)
		pk.t1Hat[i] = ntt(t)
	}
	return pk
}

// NewPublicKey parses an encoded public key.
func NewPublicKey(set ParameterSet, b []byte) (*PublicKey, error) {
	p, err := paramsFor(set)
	if err != nil {
		return nil, err
	}
	if len(b) != p.publicKeySize {
		return nil, ErrInvalidPublicKey
	}

	var rho [SeedSize]byte
	copy(rho[:], b[:SeedSize])
	t1 := make([]ringElement, p.k)
	for i := range t1 {
		unpackT1(b[SeedSize+i*encodingSize10:], &t1[i])
	}
	return newPublicKey(p, &rho, t1, nil), nil
}

// NewPrivateKey parses an encoded private key. Secret coefficients outside
// [-eta, eta] are rejected.
func NewPrivateKey(set ParameterSet, b []byte) (*PrivateKey, error) {
	p, err := paramsFor(set)
	if err != nil {
		return nil, err
	}
	if len(b) != p.privateKeySize {
		return nil, ErrInvalidPrivateKey
	}

	sk := &PrivateKey{p: p}
	copy(sk.rho[:], b[:SeedSize])
	copy(sk.key[:], b[SeedSize:2*SeedSize])
	copy(sk.tr[:], b[2*SeedSize:2*SeedSize+crhSize])

	offset := 2*SeedSize + crhSize
	sk.s1 = make([]ringElement, p.l)
	for i := range sk.s1 {
		unpackEta(b[offset:], &sk.s1[i], p.eta)
		offset += p.polyEtaSize
	}
	sk.s2 = make([]ringElement, p.k)
	for i := range sk.s2 {
		unpackEta(b[offset:], &sk.s2[i], p.eta)
		offset += p.polyEtaSize
	}
	if vecCheckNorm(sk.s1, p.eta+1) || vecCheckNorm(sk.s2, p.eta+1) {
		return nil, ErrInvalidPrivateKey
	}
	sk.t0 = make([]ringElement, p.k)
	for i := range sk.t0 {
		unpackT0(b[offset:], &sk.t0[i])
		offset += encodingSize13
	}

	sk.a = expandMatrix(sk.rho[:], p.k, p.l)
	sk.s1Hat = vecNTT(sk.s1)
	sk.s2Hat = vecNTT(sk.s2)
	sk.t0Hat = vecNTT(sk.t0)
	return sk, nil
}

// ParameterSet returns the parameter set of the key.
func (pk *PublicKey) ParameterSet() ParameterSet {
	return pk.p.set
}

// Bytes returns the encoded public key: rho || packed t1.
func (pk *PublicKey) Bytes() []byte {
	return bytes.Clone(pk.enc)
}

// Equal reports whether pk and other are the same public key.
func (pk *PublicKey) Equal(other crypto.PublicKey) bool {
	o, ok := other.(*PublicKey)
	if !ok {
		return false
	}
	return pk.p == o.p && bytes.Equal(pk.enc, o.enc)
}

// ParameterSet returns the parameter set of the key.
func (sk *PrivateKey) ParameterSet() ParameterSet {
	return sk.p.set
}

// Bytes returns the encoded private key:
// rho || key || tr || packed s1 || packed s2 || packed t0.
func (sk *PrivateKey) Bytes() []byte {
	p := sk.p
	b := make([]byte, p.privateKeySize)
	copy(b[:SeedSize], sk.rho[:])
	copy(b[SeedSize:2*SeedSize], sk.key[:])
	copy(b[2*SeedSize:], sk.tr[:])

	offset := 2*SeedSize + crhSize
	for i := range sk.s1 {
		packEta(b[offset:], &sk.s1[i], p.eta)
		offset += p.polyEtaSize
	}
	for i := range sk.s2 {
		packEta(b[offset:], &sk.s2[i], p.eta)
		offset += p.polyEtaSize
	}
	for i := range sk.t0 {
		packT0(b[offset:], &sk.t0[i])
		offset += encodingSize13
	}
	return b
}

// Equal reports whether sk and other are the same private key. The
// comparison runs in constant time for keys of the same parameter set.
func (sk *PrivateKey) Equal(other crypto.PrivateKey) bool {
	o, ok := other.(*PrivateKey)
	if !ok || sk.p != o.p {
		return false
	}
	return subtle.ConstantTimeCompare(sk.Bytes(), o.Bytes()) == 1
}

// Public returns the public key corresponding to this private key.
// This implements the crypto.Signer interface.
func (sk *PrivateKey) Public() crypto.PublicKey {
	return sk.PublicKey()
}

// PublicKey returns the public key, recomputing t1 from s1 and s2 when the
// key was parsed from its encoding.
func (sk *PrivateKey) PublicKey() *PublicKey {
	sk.pubOnce.Do(func() {
		t1, _ := splitT(sk.a, sk.s1Hat, sk.s2)
		sk.pub = newPublicKey(sk.p, &sk.rho, t1, sk.a)
	})
	return sk.pub
}
