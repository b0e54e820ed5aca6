//go:build dilithium_randomized

package dilithium

// randomizedSigning makes Sign draw rho' from the caller's random source.
const randomizedSigning = true
