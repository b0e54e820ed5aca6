// Package prng provides the randomness sources used for key generation and
// randomized signing: the operating system CSPRNG and a seeded ChaCha20
// keystream for reproducible runs.
package prng

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/sha3"
)

// ErrExhausted is returned once a ChaCha reader has produced its maximum
// keystream length.
var ErrExhausted = errors.New("prng: keystream exhausted")

// maxStream is the ChaCha20 keystream limit for a fixed key and nonce.
const maxStream = (1 << 32) * 64

type systemReader struct{}

func (systemReader) Read(b []byte) (int, error) {
	n, err := io.ReadFull(rand.Reader, b)
	if err != nil {
		return n, fmt.Errorf("prng: system random: %w", err)
	}
	return n, nil
}

// Reader returns a reader over the operating system CSPRNG. Reads either
// fill the buffer or fail.
func Reader() io.Reader {
	return systemReader{}
}

// ChaCha is a deterministic reader producing the ChaCha20 keystream of a
// seed. It must never be used where unpredictability is required from an
// attacker who knows the seed. It is safe for concurrent use.
type ChaCha struct {
	mu     sync.Mutex
	c      *chacha20.Cipher
	served uint64
}

// NewChaCha returns a ChaCha reader. A 32-byte seed is used as the key
// directly; any other length is first hashed to 32 bytes with SHAKE256.
func NewChaCha(seed []byte) (*ChaCha, error) {
	key := seed
	if len(key) != chacha20.KeySize {
		key = make([]byte, chacha20.KeySize)
		sha3.ShakeSum256(key, seed)
	}
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce[:])
	if err != nil {
		return nil, fmt.Errorf("prng: %w", err)
	}
	return &ChaCha{c: c}, nil
}

// Read fills b with the next keystream bytes.
func (r *ChaCha) Read(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.served+uint64(len(b)) > maxStream {
		return 0, ErrExhausted
	}
	clear(b)
	r.c.XORKeyStream(b, b)
	r.served += uint64(len(b))
	return len(b), nil
}
