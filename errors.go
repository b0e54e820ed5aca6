package dilithium

import (
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for key handling.
var (
	// ErrInvalidParameterSet indicates an unknown parameter set.
	ErrInvalidParameterSet = errors.New("dilithium: invalid parameter set")

	// ErrInvalidSeedSize indicates a key generation seed of the wrong length.
	ErrInvalidSeedSize = errors.New("dilithium: invalid seed length")

	// ErrInvalidPublicKey indicates a malformed encoded public key.
	ErrInvalidPublicKey = errors.New("dilithium: invalid public key")

	// ErrInvalidPrivateKey indicates a malformed encoded private key.
	ErrInvalidPrivateKey = errors.New("dilithium: invalid private key")

	// ErrKeyMismatch indicates a key belonging to another parameter set.
	ErrKeyMismatch = errors.New("dilithium: key does not match parameter set")
)

// Sentinel errors for signing.
var (
	// ErrPreHashed indicates a crypto.SignerOpts requesting a hash function.
	ErrPreHashed = errors.New("dilithium: cannot sign pre-hashed messages")

	// ErrNotInitialized indicates a Signer used before Initialize or Generate.
	ErrNotInitialized = errors.New("dilithium: signer is not initialized")

	// ErrNotSigner indicates a Signer initialized with a public key only.
	ErrNotSigner = errors.New("dilithium: signer holds no private key")

	// ErrTooManyAttempts indicates the rejection loop hit its attempt cap.
	ErrTooManyAttempts = errors.New("dilithium: rejection sampling attempt limit exceeded")

	// ErrRandomSource indicates a failing randomness source.
	ErrRandomSource = errors.New("dilithium: random source failure")

	// ErrPairwiseConsistency indicates a generated key pair failed its self test.
	ErrPairwiseConsistency = errors.New("dilithium: pairwise consistency test failed")
)

// CryptoError wraps an error with the operation that failed.
type CryptoError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// readRandom fills b from rand. Short reads and reader failures are fatal.
func readRandom(rand io.Reader, b []byte, op string) error {
	if rand == nil {
		return &CryptoError{Op: op, Err: ErrRandomSource}
	}
	if _, err := io.ReadFull(rand, b); err != nil {
		return &CryptoError{Op: op, Err: errors.Join(ErrRandomSource, err)}
	}
	return nil
}
