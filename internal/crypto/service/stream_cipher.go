package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	cryptoDomain "github.com/allisson/stringveil/internal/crypto/domain"
)

// CTRStream implements StreamCipher with AES-256-CTR, no padding. The 16-byte
// IV carries the logical table offset in its first four bytes (big-endian),
// the rest zero. Within one build offsets never repeat, so the keystream is
// never reused under the build key.
//
// The IV construction must stay bit-identical to the runtime side in the veil
// package; any divergence corrupts every emitted string. The table builder's
// round-trip tests decrypt through veil.Lookup to pin this.
type CTRStream struct {
	block cipher.Block
}

// NewCTRStream creates a stream cipher for the given 32-byte build key. A key
// of any other length is rejected; a cipher initialization failure is fatal to
// the build, there is no per-string recovery.
func NewCTRStream(key []byte) (*CTRStream, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: key must be exactly %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize, cryptoDomain.KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	return &CTRStream{block: block}, nil
}

// Apply runs the keystream positioned at offset over data and returns the
// result. CTR is symmetric, so the same call encrypts and decrypts.
func (c *CTRStream) Apply(offset uint32, data []byte) ([]byte, error) {
	iv := NonceFromOffset(offset)
	out := make([]byte, len(data))
	cipher.NewCTR(c.block, iv[:]).XORKeyStream(out, data)
	return out, nil
}

// NonceFromOffset derives the 16-byte CTR IV from a logical table offset:
// bytes 0-3 big-endian offset, bytes 4-15 zero. Pure function of the offset.
func NonceFromOffset(offset uint32) [aes.BlockSize]byte {
	var iv [aes.BlockSize]byte
	iv[0] = byte(offset >> 24)
	iv[1] = byte(offset >> 16)
	iv[2] = byte(offset >> 8)
	iv[3] = byte(offset)
	return iv
}
