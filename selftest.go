package dilithium

import (
	"errors"
	"fmt"
)

// pairwiseTestMessage is signed by PairwiseConsistencyTest.
var pairwiseTestMessage = []byte("dilithium pairwise consistency test")

// PairwiseConsistencyTest checks that sk produces signatures that pk accepts
// and that pk rejects a corrupted one. It uses deterministic signing, so it
// never reads randomness.
func PairwiseConsistencyTest(pk *PublicKey, sk *PrivateKey) error {
	if pk == nil || sk == nil {
		return &CryptoError{Op: "pairwise test", Err: errors.Join(ErrPairwiseConsistency, errors.New("missing key"))}
	}
	if pk.p != sk.p {
		return &CryptoError{Op: "pairwise test", Err: errors.Join(ErrPairwiseConsistency, ErrKeyMismatch)}
	}

	sig, _, err := sk.signDeterministic(pairwiseTestMessage, nil)
	if err != nil {
		return &CryptoError{Op: "pairwise test", Err: errors.Join(ErrPairwiseConsistency, err)}
	}
	if !pk.Verify(pairwiseTestMessage, sig) {
		return &CryptoError{Op: "pairwise test " + pk.p.name, Err: fmt.Errorf("%w: signature rejected", ErrPairwiseConsistency)}
	}

	sig[0] ^= 0x01
	if pk.Verify(pairwiseTestMessage, sig) {
		return &CryptoError{Op: "pairwise test " + pk.p.name, Err: fmt.Errorf("%w: corrupted signature accepted", ErrPairwiseConsistency)}
	}
	return nil
}
