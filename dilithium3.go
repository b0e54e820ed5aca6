package dilithium

import "io"

// Dilithium3 sizes in bytes (K=6, L=5, eta=4).
const (
	PublicKeySize3  = 1952
	PrivateKeySize3 = 4016
	SignatureSize3  = 3293
)

// GenerateKey3 generates a new Dilithium3 key pair.
func GenerateKey3(rand io.Reader) (*PublicKey, *PrivateKey, error) {
	return GenerateKey(Dilithium3, rand)
}

// NewKeyFromSeed3 derives a Dilithium3 key pair from a 32-byte seed.
func NewKeyFromSeed3(seed []byte) (*PublicKey, *PrivateKey, error) {
	return NewKeyFromSeed(Dilithium3, seed)
}

// NewPublicKey3 parses an encoded Dilithium3 public key.
func NewPublicKey3(b []byte) (*PublicKey, error) {
	return NewPublicKey(Dilithium3, b)
}

// NewPrivateKey3 parses an encoded Dilithium3 private key.
func NewPrivateKey3(b []byte) (*PrivateKey, error) {
	return NewPrivateKey(Dilithium3, b)
}
