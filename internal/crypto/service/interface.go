// Package service implements the build-time cryptographic services: key
// material provisioning, the positioned AES-CTR stream cipher used by the
// encrypted table, and the key scattering layout.
package service

// KeyProvider supplies the per-build 32-byte secret key.
type KeyProvider interface {
	// NewKey returns a fresh random key. Every call produces independent key
	// material; this is the default path and the one that guarantees per-build
	// key uniqueness.
	NewKey() ([]byte, error)

	// KeyFromSeed deterministically expands the given seed into a key via a
	// one-way derivation. Two builds with the same seed produce the same key,
	// which exists to support reproducible and cacheable builds. Callers must
	// opt into this explicitly since it weakens per-build key uniqueness.
	KeyFromSeed(seed []byte) ([]byte, error)
}

// StreamCipher applies a synchronous stream cipher keyed once per build, with
// the keystream position derived from a table offset. Applying it twice at the
// same offset round-trips, so the same implementation serves encryption and
// the build-side halves of the round-trip tests.
type StreamCipher interface {
	// Apply encrypts (or decrypts) data with the keystream positioned at the
	// given logical table offset. The input is not modified.
	Apply(offset uint32, data []byte) ([]byte, error)
}

// KeySplitter scatters a secret key into ordered word fragments for
// independent embedding in holder artifacts.
type KeySplitter interface {
	// Split divides the key's words into fragmentCount contiguous fragments,
	// as evenly as possible, earlier fragments taking any extra word.
	// Concatenating the fragments in order reproduces the key exactly.
	Split(key []byte, fragmentCount int) ([][]uint32, error)
}
