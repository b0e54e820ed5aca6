package dilithium

import (
	"github.com/cloudflare/circl/sign"

	"github.com/KarpelesLab/dilithium/prng"
)

// scheme adapts one parameter set to the circl sign.Scheme interface.
type scheme struct {
	p *params
}

var (
	_ sign.Scheme     = scheme{}
	_ sign.PublicKey  = (*PublicKey)(nil)
	_ sign.PrivateKey = (*PrivateKey)(nil)
)

// Scheme returns a sign.Scheme for set, or nil if set is unknown. Contexts
// are not supported; Sign panics when given one.
func Scheme(set ParameterSet) sign.Scheme {
	p := lookupParams(set)
	if p == nil {
		return nil
	}
	return scheme{p}
}

func (s scheme) Name() string          { return s.p.name }
func (s scheme) PublicKeySize() int    { return s.p.publicKeySize }
func (s scheme) PrivateKeySize() int   { return s.p.privateKeySize }
func (s scheme) SignatureSize() int    { return s.p.signatureSize }
func (s scheme) SeedSize() int         { return SeedSize }
func (s scheme) SupportsContext() bool { return false }

func (s scheme) GenerateKey() (sign.PublicKey, sign.PrivateKey, error) {
	pk, sk, err := GenerateKey(s.p.set, prng.Reader())
	if err != nil {
		return nil, nil, err
	}
	return pk, sk, nil
}

func (s scheme) Sign(sk sign.PrivateKey, message []byte, opts *sign.SignatureOpts) []byte {
	priv, ok := sk.(*PrivateKey)
	if !ok || priv.p != s.p {
		panic(sign.ErrTypeMismatch)
	}
	if opts != nil && opts.Context != "" {
		panic(sign.ErrContextNotSupported)
	}
	sig, _, err := priv.sign(prng.Reader(), message, nil)
	if err != nil {
		panic(err)
	}
	return sig
}

func (s scheme) Verify(pk sign.PublicKey, message, signature []byte, opts *sign.SignatureOpts) bool {
	pub, ok := pk.(*PublicKey)
	if !ok || pub.p != s.p {
		panic(sign.ErrTypeMismatch)
	}
	if opts != nil && opts.Context != "" {
		return false
	}
	return pub.Verify(message, signature)
}

func (s scheme) DeriveKey(seed []byte) (sign.PublicKey, sign.PrivateKey) {
	if len(seed) != SeedSize {
		panic(sign.ErrSeedSize)
	}
	pk, sk := generate(s.p, (*[SeedSize]byte)(seed))
	return pk, sk
}

func (s scheme) UnmarshalBinaryPublicKey(b []byte) (sign.PublicKey, error) {
	if len(b) != s.p.publicKeySize {
		return nil, sign.ErrPubKeySize
	}
	pk, err := NewPublicKey(s.p.set, b)
	if err != nil {
		return nil, err
	}
	return pk, nil
}

func (s scheme) UnmarshalBinaryPrivateKey(b []byte) (sign.PrivateKey, error) {
	if len(b) != s.p.privateKeySize {
		return nil, sign.ErrPrivKeySize
	}
	sk, err := NewPrivateKey(s.p.set, b)
	if err != nil {
		return nil, err
	}
	return sk, nil
}

// Scheme returns the sign.Scheme of the key's parameter set.
func (pk *PublicKey) Scheme() sign.Scheme { return scheme{pk.p} }

// MarshalBinary returns the encoded public key.
func (pk *PublicKey) MarshalBinary() ([]byte, error) { return pk.Bytes(), nil }

// Scheme returns the sign.Scheme of the key's parameter set.
func (sk *PrivateKey) Scheme() sign.Scheme { return scheme{sk.p} }

// MarshalBinary returns the encoded private key.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) { return sk.Bytes(), nil }

