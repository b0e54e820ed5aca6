//go:build !dilithium_randomized

package dilithium

// randomizedSigning selects how rho' is derived when signing. Without the
// dilithium_randomized build tag it is H(key || mu), so equal messages
// produce equal signatures.
const randomizedSigning = false
