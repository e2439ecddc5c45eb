// Package domain holds the key material types and constants shared by the
// build-time encryption pipeline.
package domain

const (
	// KeySize is the exact byte length of a build secret key (AES-256).
	// The key exists only for the duration of one build: it is created before
	// any string registration and survives only as the scattered fragment set
	// embedded in the generated artifacts.
	KeySize = 32

	// KeyWords is the number of 4-byte words a secret key decomposes into.
	// Key fragments are built from whole words, never partial ones.
	KeyWords = 8

	// WordSize is the byte width of a single key word, stored big-endian.
	WordSize = 4

	// DefaultFragmentCount is the number of holder artifacts the key is
	// scattered across. One fragment per word by default.
	DefaultFragmentCount = 8
)
