package dilithium

import "io"

// Dilithium2 sizes in bytes (K=4, L=4, eta=2).
const (
	PublicKeySize2  = 1312
	PrivateKeySize2 = 2544
	SignatureSize2  = 2420
)

// GenerateKey2 generates a new Dilithium2 key pair.
func GenerateKey2(rand io.Reader) (*PublicKey, *PrivateKey, error) {
	return GenerateKey(Dilithium2, rand)
}

// NewKeyFromSeed2 derives a Dilithium2 key pair from a 32-byte seed.
func NewKeyFromSeed2(seed []byte) (*PublicKey, *PrivateKey, error) {
	return NewKeyFromSeed(Dilithium2, seed)
}

// NewPublicKey2 parses an encoded Dilithium2 public key.
func NewPublicKey2(b []byte) (*PublicKey, error) {
	return NewPublicKey(Dilithium2, b)
}

// NewPrivateKey2 parses an encoded Dilithium2 private key.
func NewPrivateKey2(b []byte) (*PrivateKey, error) {
	return NewPrivateKey(Dilithium2, b)
}
