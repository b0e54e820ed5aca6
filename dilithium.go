// Package dilithium implements the CRYSTALS-Dilithium lattice signature
// scheme (round 3.0 constants, D = 13, 48-byte CRH outputs).
//
// Three parameter sets are supported, named after their private key sizes
// in the table below:
//   - Dilithium2 (2544-byte private keys): NIST security level 2
//   - Dilithium3 (4016-byte private keys): NIST security level 3
//   - Dilithium5 (4880-byte private keys): NIST security level 5
//
// Basic usage:
//
//	pk, sk, err := dilithium.GenerateKey(dilithium.Dilithium3, rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	sig, err := sk.Sign(rand.Reader, message, nil)
//	if err != nil {
//	    // handle error
//	}
//	valid := pk.Verify(message, sig)
//
// Signing is deterministic unless the package is built with the
// dilithium_randomized tag.
package dilithium

import (
	"crypto"
	"strconv"
	"strings"
)

// Global constants shared by every parameter set.
const (
	// n is the number of coefficients in polynomials.
	n = 256

	// q is the modulus: q = 2^23 - 2^13 + 1 = 8380417
	q = 8380417

	// d is the number of dropped bits from t.
	d = 13

	// SeedSize is the size of the random seed used for key generation.
	SeedSize = 32

	// crhSize is the output size of the collision resistant hash used for
	// tr, mu and the signing seed rho'.
	crhSize = 48

	// cTildeSize is the size of the challenge seed stored in signatures.
	cTildeSize = 32
)

// Derived constants.
const (
	qMinus1Div2 = (q - 1) / 2
)

// Rounding and range constants.
const (
	gamma2QMinus1Div88 = (q - 1) / 88 // Dilithium2
	gamma2QMinus1Div32 = (q - 1) / 32 // Dilithium3, Dilithium5

	gamma1Pow17 = 1 << 17 // Dilithium2
	gamma1Pow19 = 1 << 19 // Dilithium3, Dilithium5
)

// Encoding size constants (bytes per polynomial).
const (
	encodingSize3  = n * 3 / 8  // eta=2 packed
	encodingSize4  = n * 4 / 8  // eta=4 packed or 4-bit w1
	encodingSize6  = n * 6 / 8  // 6-bit w1
	encodingSize10 = n * 10 / 8 // t1 packed
	encodingSize13 = n * 13 / 8 // t0 packed
	encodingSize18 = n * 18 / 8 // z for gamma1=2^17
	encodingSize20 = n * 20 / 8 // z for gamma1=2^19
)

// ParameterSet selects one of the three Dilithium security levels.
type ParameterSet uint8

const (
	// Dilithium2 is K=4, L=4, eta=2 (DLTMS1N256Q8380417).
	Dilithium2 ParameterSet = 1
	// Dilithium3 is K=6, L=5, eta=4 (DLTMS2N256Q8380417).
	Dilithium3 ParameterSet = 2
	// Dilithium5 is K=8, L=7, eta=2 (DLTMS3N256Q8380417).
	Dilithium5 ParameterSet = 3
)

// String returns the canonical name of the parameter set.
func (s ParameterSet) String() string {
	if p := lookupParams(s); p != nil {
		return p.name
	}
	return "ParameterSet(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s names a supported parameter set.
func (s ParameterSet) Valid() bool {
	return lookupParams(s) != nil
}

// PublicKeySize returns the encoded public key size, or 0 for an unknown set.
func (s ParameterSet) PublicKeySize() int {
	if p := lookupParams(s); p != nil {
		return p.publicKeySize
	}
	return 0
}

// PrivateKeySize returns the encoded private key size, or 0 for an unknown set.
func (s ParameterSet) PrivateKeySize() int {
	if p := lookupParams(s); p != nil {
		return p.privateKeySize
	}
	return 0
}

// SignatureSize returns the signature size, or 0 for an unknown set.
func (s ParameterSet) SignatureSize() int {
	if p := lookupParams(s); p != nil {
		return p.signatureSize
	}
	return 0
}

// ParseParameterSet accepts "Dilithium2", "DLTMS1N256Q8380417" or the
// private key size ("2544") for each set. Matching is case-insensitive.
func ParseParameterSet(name string) (ParameterSet, error) {
	name = strings.TrimSpace(name)
	for _, p := range allParams {
		if strings.EqualFold(name, p.name) ||
			strings.EqualFold(name, p.legacyName) ||
			name == strconv.Itoa(p.privateKeySize) {
			return p.set, nil
		}
	}
	return 0, &CryptoError{Op: "parse parameter set " + strconv.Quote(name), Err: ErrInvalidParameterSet}
}

// SignerOpts implements crypto.SignerOpts for Dilithium signing operations.
// Dilithium signs messages directly, so HashFunc always returns 0.
type SignerOpts struct{}

// HashFunc returns 0 to indicate that Dilithium does not use pre-hashing.
func (*SignerOpts) HashFunc() crypto.Hash {
	return 0
}

// Compile-time interface assertions for crypto.Signer.
var _ crypto.Signer = (*PrivateKey)(nil)
