// Package domain defines the token handle that replaces a string literal in
// compiled output.
package domain

// Token is the opaque 64-bit handle a registered string is replaced with. The
// upper 32 bits hold the string's byte offset in the logical ciphertext
// buffer, the lower 32 bits the ciphertext length (equal to the plaintext's
// UTF-8 byte length, the stream cipher preserves length). Offsets are strictly
// increasing across registrations within one build.
type Token uint64

// NewToken packs an offset and ciphertext length into a Token.
func NewToken(offset, length uint32) Token {
	return Token(uint64(offset)<<32 | uint64(length))
}

// Offset returns the string's byte offset in the logical ciphertext buffer.
func (t Token) Offset() uint32 {
	return uint32(t >> 32)
}

// Length returns the ciphertext byte length.
func (t Token) Length() uint32 {
	return uint32(t)
}
