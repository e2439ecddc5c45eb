// Package veil is the runtime half of the stringveil build tool. Generated
// artifacts call Lookup to decrypt a protected string literal on demand from
// the chunked ciphertext table and the scattered key fragments that the build
// embedded in the application.
//
// The decryption logic here must stay bit-for-bit compatible with the
// build-time encryption in internal/crypto and internal/table: the same
// AES-256-CTR cipher, the same offset-derived 16-byte IV, and the same
// big-endian word layout for key fragments. Cross-side compatibility is pinned
// by the round-trip tests in those packages.
//
// Security note: scattering the key across separately generated artifacts
// raises the cost of extracting it from a binary, it does not make extraction
// impossible. This is an obfuscation control, not cryptographically enforced
// separation.
package veil

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"sync/atomic"
	"unicode/utf8"
)

// MaxChunkLength is the maximum byte length of a single ciphertext table
// chunk. The build-time table builder and the generated artifacts both segment
// the logical buffer at this boundary; byte i of the logical buffer lives in
// chunk i/MaxChunkLength at offset i%MaxChunkLength.
const MaxChunkLength = 0x1fff

// keySize is the AES-256 key length reassembled from the scattered fragments.
const keySize = 32

var (
	// ErrChunkOutOfRange indicates a token that points outside the table.
	ErrChunkOutOfRange = errors.New("token references bytes beyond the table")

	// ErrMalformedUTF8 indicates the decrypted bytes are not valid UTF-8,
	// which means the key, the table, or the token has been corrupted.
	ErrMalformedUTF8 = errors.New("decrypted bytes are not valid UTF-8")
)

// errHook receives the underlying error whenever Lookup swallows a failure.
var errHook atomic.Pointer[func(error)]

// SetErrorHook installs a diagnostics hook invoked with the underlying error
// whenever Lookup fails. Lookup still returns an empty string on failure; the
// hook only exists to make silent corruption observable during development.
// Passing nil removes the hook. Safe for concurrent use with Lookup.
func SetErrorHook(hook func(error)) {
	if hook == nil {
		errHook.Store(nil)
		return
	}
	errHook.Store(&hook)
}

// Lookup decrypts a single string from the encrypted table.
//
// The token packs the string's position in the logical table buffer in its
// upper 32 bits and the ciphertext byte length in its lower 32 bits. The table
// is the chunked ciphertext buffer and fragments are the scattered key word
// arrays, both published by the generated artifacts.
//
// Lookup reconstructs the key fresh on every call, never caching it: the
// fragments are immutable and reassembly is a handful of shifts. It is pure
// apart from that transient reconstruction and safe for concurrent use.
//
// Any failure (out-of-range token, cipher failure, malformed UTF-8) resolves
// to an empty string rather than an error. Release builds favor availability
// over surfacing corruption; use SetErrorHook to observe failures.
func Lookup(token uint64, table [][]byte, fragments [][]uint32) string {
	key := reconstructKey(fragments)

	offset := uint32(token >> 32)
	length := uint32(token)

	encrypted, err := extractBytes(table, offset, length)
	if err != nil {
		return fail(err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return fail(err)
	}

	iv := makeIV(offset)
	plain := make([]byte, len(encrypted))
	cipher.NewCTR(block, iv[:]).XORKeyStream(plain, encrypted)

	if !utf8.Valid(plain) {
		return fail(ErrMalformedUTF8)
	}
	return string(plain)
}

// reconstructKey concatenates the fragment words in order, big-endian bytes
// within each word, into the 32-byte AES key. Words beyond the key length are
// ignored; missing words leave zero bytes. Both bounds are defensive, the
// generator always emits fragments that cover the key exactly.
func reconstructKey(fragments [][]uint32) []byte {
	key := make([]byte, keySize)
	pos := 0
	for _, fragment := range fragments {
		for _, word := range fragment {
			if pos >= keySize {
				return key
			}
			key[pos] = byte(word >> 24)
			key[pos+1] = byte(word >> 16)
			key[pos+2] = byte(word >> 8)
			key[pos+3] = byte(word)
			pos += 4
		}
	}
	return key
}

// extractBytes copies length bytes starting at the logical offset out of the
// chunked table, crossing chunk boundaries transparently.
func extractBytes(table [][]byte, offset, length uint32) ([]byte, error) {
	result := make([]byte, length)
	globalPos := int(offset)
	outputPos := 0
	remaining := int(length)

	for remaining > 0 {
		chunkIndex := globalPos / MaxChunkLength
		chunkOffset := globalPos % MaxChunkLength
		if chunkIndex >= len(table) || chunkOffset >= len(table[chunkIndex]) {
			return nil, ErrChunkOutOfRange
		}
		copied := copy(result[outputPos:], table[chunkIndex][chunkOffset:])
		globalPos += copied
		outputPos += copied
		remaining -= copied
	}
	return result, nil
}

// makeIV derives the 16-byte AES-CTR IV from the string's table offset:
// bytes 0-3 hold the offset big-endian, the rest stay zero. Offsets are
// strictly increasing within one build, so an IV never repeats under one key.
// This derivation must match the build-time encryption exactly.
func makeIV(offset uint32) [aes.BlockSize]byte {
	var iv [aes.BlockSize]byte
	iv[0] = byte(offset >> 24)
	iv[1] = byte(offset >> 16)
	iv[2] = byte(offset >> 8)
	iv[3] = byte(offset)
	return iv
}

// fail reports err to the hook, if any, and returns the empty-string result.
func fail(err error) string {
	if hook := errHook.Load(); hook != nil {
		(*hook)(err)
	}
	return ""
}
