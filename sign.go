package dilithium

import (
	"crypto"
	"crypto/subtle"
	"io"
)

// Sign signs digest with the private key.
// This implements the crypto.Signer interface.
//
// For Dilithium, the digest is the message to be signed (not a hash), and
// opts must be nil or report a zero HashFunc. rand is only read when the
// package is built with the dilithium_randomized tag.
func (sk *PrivateKey) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	return sk.SignMessage(rand, digest, opts)
}

// SignMessage signs msg with the private key.
// This implements the crypto.MessageSigner interface.
func (sk *PrivateKey) SignMessage(rand io.Reader, msg []byte, opts crypto.SignerOpts) ([]byte, error) {
	if opts != nil && opts.HashFunc() != 0 {
		return nil, ErrPreHashed
	}
	sig, _, err := sk.sign(rand, msg, nil)
	return sig, err
}

// SignAttached returns signature || message in a fresh buffer.
func (sk *PrivateKey) SignAttached(rand io.Reader, msg []byte) ([]byte, error) {
	sig, _, err := sk.sign(rand, msg, nil)
	if err != nil {
		return nil, err
	}
	return append(sig, msg...), nil
}

// sign derives mu and rho' for msg and runs the rejection loop. next, if not
// nil, is called before every attempt (starting at 1) and aborts the loop by
// returning an error. The number of attempts made is returned alongside the
// signature.
func (sk *PrivateKey) sign(rand io.Reader, msg []byte, next func(attempt int) error) ([]byte, int, error) {
	if !randomizedSigning {
		return sk.signDeterministic(msg, next)
	}

	var mu, rhoPrime [crhSize]byte
	shake256(mu[:], sk.tr[:], msg)
	if err := readRandom(rand, rhoPrime[:], "sign "+sk.p.name); err != nil {
		return nil, 0, err
	}
	return sk.signLoop(&mu, &rhoPrime, next)
}

// signDeterministic signs with rho' = H(key || mu) regardless of the build
// tag.
func (sk *PrivateKey) signDeterministic(msg []byte, next func(attempt int) error) ([]byte, int, error) {
	// mu = H(tr || msg)
	var mu, rhoPrime [crhSize]byte
	shake256(mu[:], sk.tr[:], msg)
	shake256(rhoPrime[:], sk.key[:], mu[:])
	return sk.signLoop(&mu, &rhoPrime, next)
}

func (sk *PrivateKey) signLoop(mu, rhoPrime *[crhSize]byte, next func(attempt int) error) ([]byte, int, error) {
	p := sk.p

	y := make([]ringElement, p.l)
	w1 := make([]ringElement, p.k)
	w0 := make([]ringElement, p.k)
	h := make([]ringElement, p.k)
	w1Packed := make([]byte, p.k*p.polyW1Size)
	var cTilde [cTildeSize]byte

	attempt := 0
	for kappa := uint16(0); ; kappa++ {
		attempt++
		if next != nil {
			if err := next(attempt); err != nil {
				return nil, attempt - 1, err
			}
		}

		// Sample the masking vector with a fresh nonce per attempt.
		for i := range y {
			y[i] = sampleMask(rhoPrime[:], uint16(p.l)*kappa+uint16(i), p.gamma1)
		}

		// w = A*y, split into high and low bits
		w := vecInvNTT(matMul(sk.a, vecNTT(y)))
		vecCaddQ(w)
		for i := range w {
			for j := range w[i] {
				w1[i][j], w0[i][j] = decompose(w[i][j], p.gamma2)
			}
			packW1(w1Packed[i*p.polyW1Size:], &w1[i], p.gamma2)
		}

		// c~ = H(mu || w1)
		shake256(cTilde[:], mu[:], w1Packed)
		cHat := ntt(sampleChallenge(cTilde[:], p.tau))

		// z = y + c*s1
		z := vecScale(cHat, sk.s1Hat)
		vecAdd(z, y)
		vecReduce(z)
		if vecCheckNorm(z, p.gamma1-p.beta) {
			continue
		}

		// w0 - c*s2
		vecSub(w0, vecScale(cHat, sk.s2Hat))
		vecReduce(w0)
		if vecCheckNorm(w0, p.gamma2-p.beta) {
			continue
		}

		ct0 := vecScale(cHat, sk.t0Hat)
		vecReduce(ct0)
		if vecCheckNorm(ct0, p.gamma2) {
			continue
		}

		vecAdd(w0, ct0)
		vecCaddQ(w0)
		for i := range h {
			for j := range h[i] {
				h[i][j] = makeHint(w0[i][j], w1[i][j], p.gamma2)
			}
		}
		if countOnes(h) > p.omega {
			continue
		}

		return packSignature(p, cTilde[:], z, h), attempt, nil
	}
}

// packSignature encodes c~ || packed z || sparse hints.
func packSignature(p *params, cTilde []byte, z, h []ringElement) []byte {
	sig := make([]byte, p.signatureSize)
	copy(sig, cTilde)
	offset := cTildeSize
	for i := range z {
		packZ(sig[offset:], &z[i], p.gamma1)
		offset += p.polyZSize
	}
	packHint(sig[offset:], h, p.omega)
	return sig
}

// unpackSignature decodes a signature of exactly p.signatureSize bytes. It
// fails on any non-canonical hint encoding.
func unpackSignature(p *params, sig []byte) (cTilde []byte, z, h []ringElement, ok bool) {
	cTilde = sig[:cTildeSize]
	offset := cTildeSize
	z = make([]ringElement, p.l)
	for i := range z {
		unpackZ(sig[offset:], &z[i], p.gamma1)
		offset += p.polyZSize
	}
	h = make([]ringElement, p.k)
	if !unpackHint(sig[offset:], h, p.omega) {
		return nil, nil, nil, false
	}
	return cTilde, z, h, true
}

// Verify reports whether sig is a valid signature of message under pk.
// Every malformed signature yields false.
func (pk *PublicKey) Verify(message, sig []byte) bool {
	p := pk.p
	if len(sig) != p.signatureSize {
		return false
	}

	cTilde, z, h, ok := unpackSignature(p, sig)
	if !ok {
		return false
	}
	if vecCheckNorm(z, p.gamma1-p.beta) {
		return false
	}

	// mu = H(H(pk) || message)
	var mu [crhSize]byte
	shake256(mu[:], pk.tr[:], message)

	cHat := ntt(sampleChallenge(cTilde, p.tau))

	// w1' = UseHint(A*z - c*t1*2^d, h)
	az := matMul(pk.a, vecNTT(z))
	w1Packed := make([]byte, p.k*p.polyW1Size)
	for i := range az {
		acc := polySub(az[i], nttMul(cHat, pk.t1Hat[i]))
		polyReduce(&acc)
		w := invNTT(acc)
		polyCaddQ(&w)

		var w1 ringElement
		for j := range w {
			w1[j] = useHint(w[j], h[i][j], p.gamma2)
		}
		packW1(w1Packed[i*p.polyW1Size:], &w1, p.gamma2)
	}

	var check [cTildeSize]byte
	shake256(check[:], mu[:], w1Packed)
	return subtle.ConstantTimeCompare(cTilde, check[:]) == 1
}

// Open verifies signed = signature || message and returns the message.
func (pk *PublicKey) Open(signed []byte) ([]byte, bool) {
	if len(signed) < pk.p.signatureSize {
		return nil, false
	}
	sig, msg := signed[:pk.p.signatureSize], signed[pk.p.signatureSize:]
	if !pk.Verify(msg, sig) {
		return nil, false
	}
	return msg, true
}
