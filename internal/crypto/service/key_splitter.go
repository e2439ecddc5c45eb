package service

import (
	"encoding/binary"
	"fmt"

	cryptoDomain "github.com/allisson/stringveil/internal/crypto/domain"
)

type keySplitter struct{}

// NewKeySplitter creates the key scatterer that lays a build key out as word
// fragments for the holder artifacts.
func NewKeySplitter() KeySplitter {
	return &keySplitter{}
}

// Split divides the key's 8 big-endian words into fragmentCount contiguous
// slices: base = 8/fragmentCount words each, with the first 8%fragmentCount
// fragments receiving one extra word. Fragment order is significant, the
// runtime reassembles the key by concatenating fragments in index order.
func (s *keySplitter) Split(key []byte, fragmentCount int) ([][]uint32, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: key must be exactly %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize, cryptoDomain.KeySize, len(key))
	}
	if fragmentCount < 1 || fragmentCount > cryptoDomain.KeyWords {
		return nil, fmt.Errorf("%w: must be between 1 and %d, got %d",
			cryptoDomain.ErrInvalidFragmentCount, cryptoDomain.KeyWords, fragmentCount)
	}

	words := make([]uint32, cryptoDomain.KeyWords)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(key[i*cryptoDomain.WordSize:])
	}

	base := cryptoDomain.KeyWords / fragmentCount
	extra := cryptoDomain.KeyWords % fragmentCount

	fragments := make([][]uint32, fragmentCount)
	pos := 0
	for i := range fragments {
		size := base
		if i < extra {
			size++
		}
		fragment := make([]uint32, size)
		copy(fragment, words[pos:pos+size])
		fragments[i] = fragment
		pos += size
	}

	return fragments, nil
}
