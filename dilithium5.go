package dilithium

import "io"

// Dilithium5 sizes in bytes (K=8, L=7, eta=2).
const (
	PublicKeySize5  = 2592
	PrivateKeySize5 = 4880
	SignatureSize5  = 4595
)

// GenerateKey5 generates a new Dilithium5 key pair.
func GenerateKey5(rand io.Reader) (*PublicKey, *PrivateKey, error) {
	return GenerateKey(Dilithium5, rand)
}

// NewKeyFromSeed5 derives a Dilithium5 key pair from a 32-byte seed.
func NewKeyFromSeed5(seed []byte) (*PublicKey, *PrivateKey, error) {
	return NewKeyFromSeed(Dilithium5, seed)
}

// NewPublicKey5 parses an encoded Dilithium5 public key.
func NewPublicKey5(b []byte) (*PublicKey, error) {
	return NewPublicKey(Dilithium5, b)
}

// NewPrivateKey5 parses an encoded Dilithium5 private key.
func NewPrivateKey5(b []byte) (*PrivateKey, error) {
	return NewPrivateKey(Dilithium5, b)
}
