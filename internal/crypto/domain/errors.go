package domain

import "errors"

var (
	// ErrInvalidKeySize indicates a key that is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidFragmentCount indicates a fragment count outside 1..KeyWords.
	ErrInvalidFragmentCount = errors.New("invalid fragment count")

	// ErrEmptySeed indicates a deterministic key was requested without seed material.
	ErrEmptySeed = errors.New("empty seed")
)
