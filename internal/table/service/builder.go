// Package service implements the append-only encrypted string table built up
// during one obfuscation pass.
package service

import (
	"fmt"
	"math"

	cryptoService "github.com/allisson/stringveil/internal/crypto/service"
	tableDomain "github.com/allisson/stringveil/internal/table/domain"
	"github.com/allisson/stringveil/veil"
)

// Builder accumulates the ciphertext for every registered string in a single
// logical buffer and hands out the token for each. It is stateful and
// single-threaded: callers serialize registrations (one build, one pass over
// all literals), and the chunk accessors are only meaningful once every
// string has been registered.
//
// Registrations are never deduplicated. Registering the same plaintext twice
// appends fresh ciphertext at a new offset and returns a new token, trading
// table size for defeating ciphertext-frequency correlation across duplicate
// literals.
type Builder struct {
	cipher cryptoService.StreamCipher
	buf    []byte
}

// NewBuilder creates a table builder that encrypts registrations with the
// given stream cipher.
func NewBuilder(cipher cryptoService.StreamCipher) *Builder {
	return &Builder{cipher: cipher}
}

// Register encrypts the plaintext at the current end of the logical buffer
// and returns the token that addresses it. The keystream position is the
// string's offset, so every registration gets a unique nonce under the build
// key without storing one.
//
// A registration that would push the buffer or the string length past the
// 32-bit token bound fails with ErrTableFull; the build must abort rather
// than desynchronize later tokens.
func (b *Builder) Register(plaintext string) (tableDomain.Token, error) {
	data := []byte(plaintext)
	offset := uint64(len(b.buf))

	if uint64(len(data)) > math.MaxUint32 || offset+uint64(len(data)) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: offset %d, length %d", tableDomain.ErrTableFull, offset, len(data))
	}

	ciphertext, err := b.cipher.Apply(uint32(offset), data)
	if err != nil {
		return 0, fmt.Errorf("failed to encrypt string at offset %d: %w", offset, err)
	}

	b.buf = append(b.buf, ciphertext...)
	return tableDomain.NewToken(uint32(offset), uint32(len(data))), nil
}

// Size returns the logical buffer length in bytes.
func (b *Builder) Size() int {
	return len(b.buf)
}

// ChunkCount returns the number of fixed-size segments needed to store the
// buffer. An empty buffer still reports one chunk so the emitted storage
// field is never a zero-length array and the generated artifact keeps the
// same shape whether or not any strings were registered.
func (b *Builder) ChunkCount() int {
	if len(b.buf) == 0 {
		return 1
	}
	return (len(b.buf) + veil.MaxChunkLength - 1) / veil.MaxChunkLength
}

// ChunkBytes returns the i-th segment of the buffer, at most
// veil.MaxChunkLength bytes, or an empty slice when i is beyond the buffer's
// extent. Chunk boundaries are purely an emission concern, byte i of the
// logical buffer always lands in chunk i/MaxChunkLength.
func (b *Builder) ChunkBytes(i int) []byte {
	start := i * veil.MaxChunkLength
	if i < 0 || start >= len(b.buf) {
		return []byte{}
	}
	end := min(start+veil.MaxChunkLength, len(b.buf))
	return b.buf[start:end]
}
