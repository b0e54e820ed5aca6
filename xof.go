package dilithium

import "golang.org/x/crypto/sha3"

// Sponge rates in bytes.
const (
	shake128Rate = 168
	shake256Rate = 136
)

// newXOF128 returns SHAKE128 with seed and a little-endian 16-bit nonce
// absorbed.
func newXOF128(seed []byte, nonce uint16) sha3.ShakeHash {
	h := sha3.NewShake128()
	h.Write(seed)
	h.Write([]byte{byte(nonce), byte(nonce >> 8)})
	return h
}

// newXOF256 is newXOF128 over SHAKE256.
func newXOF256(seed []byte, nonce uint16) sha3.ShakeHash {
	h := sha3.NewShake256()
	h.Write(seed)
	h.Write([]byte{byte(nonce), byte(nonce >> 8)})
	return h
}

// shake256 absorbs parts in order and fills out with SHAKE256 output.
func shake256(out []byte, parts ...[]byte) {
	h := sha3.NewShake256()
	for _, p := range parts {
		h.Write(p)
	}
	h.Read(out)
}
