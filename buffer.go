package dilithium

import "io"

// Generate returns a fresh key pair in its encoded form.
func Generate(set ParameterSet, rand io.Reader) (publicKey, privateKey []byte, err error) {
	pk, sk, err := GenerateKey(set, rand)
	if err != nil {
		return nil, nil, err
	}
	return pk.Bytes(), sk.Bytes(), nil
}

// Sign signs msg with an encoded private key and returns a detached
// signature.
func Sign(set ParameterSet, privateKey, msg []byte, rand io.Reader) ([]byte, error) {
	sk, err := NewPrivateKey(set, privateKey)
	if err != nil {
		return nil, err
	}
	sig, _, err := sk.sign(rand, msg, nil)
	return sig, err
}

// Verify reports whether sig is a valid signature of msg under an encoded
// public key. Malformed keys and signatures are reported as invalid.
func Verify(set ParameterSet, publicKey, msg, sig []byte) bool {
	pk, err := NewPublicKey(set, publicKey)
	if err != nil {
		return false
	}
	return pk.Verify(msg, sig)
}
