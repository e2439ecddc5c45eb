package veil

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encryptAt mirrors the build-time encryption: AES-256-CTR with the
// offset-derived IV, appended at the given logical offset.
func encryptAt(t *testing.T, key []byte, offset uint32, plaintext []byte) []byte {
	t.Helper()
	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	iv := makeIV(offset)
	out := make([]byte, len(plaintext))
	cipher.NewCTR(block, iv[:]).XORKeyStream(out, plaintext)
	return out
}

// chunk splits a logical buffer at MaxChunkLength boundaries, always returning
// at least one chunk so the table shape matches the generated artifacts.
func chunk(buf []byte) [][]byte {
	if len(buf) == 0 {
		return [][]byte{{}}
	}
	var chunks [][]byte
	for len(buf) > 0 {
		n := min(len(buf), MaxChunkLength)
		chunks = append(chunks, buf[:n])
		buf = buf[n:]
	}
	return chunks
}

// splitWords lays the 32-byte key out as big-endian words across n fragments,
// first 8%n fragments one word larger.
func splitWords(key []byte, n int) [][]uint32 {
	words := make([]uint32, 8)
	for i := range words {
		words[i] = uint32(key[i*4])<<24 | uint32(key[i*4+1])<<16 | uint32(key[i*4+2])<<8 | uint32(key[i*4+3])
	}
	base := 8 / n
	extra := 8 % n
	fragments := make([][]uint32, n)
	pos := 0
	for i := range fragments {
		size := base
		if i < extra {
			size++
		}
		fragments[i] = words[pos : pos+size]
		pos += size
	}
	return fragments
}

func makeToken(offset, length uint32) uint64 {
	return uint64(offset)<<32 | uint64(length)
}

func TestLookup(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	fragments := splitWords(key, 8)

	t.Run("round trip single string", func(t *testing.T) {
		plaintext := "hello, world"
		table := chunk(encryptAt(t, key, 0, []byte(plaintext)))

		got := Lookup(makeToken(0, uint32(len(plaintext))), table, fragments)
		assert.Equal(t, plaintext, got)
	})

	t.Run("zero key fixed scenario", func(t *testing.T) {
		zeroKey := make([]byte, 32)
		plaintext := "sk-live-abc123xyz"
		table := chunk(encryptAt(t, zeroKey, 0, []byte(plaintext)))
		got := Lookup(makeToken(0, uint32(len(plaintext))), table, splitWords(zeroKey, 8))
		assert.Equal(t, plaintext, got)
	})

	t.Run("string crossing a chunk boundary", func(t *testing.T) {
		prefix := make([]byte, MaxChunkLength-5)
		_, err := rand.Read(prefix)
		require.NoError(t, err)
		plaintext := "spans-two-chunks"
		offset := uint32(len(prefix))

		buf := append(append([]byte{}, prefix...), encryptAt(t, key, offset, []byte(plaintext))...)
		table := chunk(buf)
		require.Len(t, table, 2)

		got := Lookup(makeToken(offset, uint32(len(plaintext))), table, fragments)
		assert.Equal(t, plaintext, got)
	})

	t.Run("multibyte UTF-8 round trip", func(t *testing.T) {
		plaintext := "chave secreta — ключ — 鍵"
		table := chunk(encryptAt(t, key, 0, []byte(plaintext)))

		got := Lookup(makeToken(0, uint32(len(plaintext))), table, fragments)
		assert.Equal(t, plaintext, got)
	})

	t.Run("zero length token", func(t *testing.T) {
		table := chunk(nil)
		assert.Equal(t, "", Lookup(makeToken(0, 0), table, fragments))
	})

	t.Run("fragments split more coarsely than generated", func(t *testing.T) {
		plaintext := "fragment-count-independent"
		table := chunk(encryptAt(t, key, 0, []byte(plaintext)))

		for n := 1; n <= 8; n++ {
			got := Lookup(makeToken(0, uint32(len(plaintext))), table, splitWords(key, n))
			assert.Equal(t, plaintext, got, "fragment count %d", n)
		}
	})
}

func TestLookupFailSilent(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	fragments := splitWords(key, 8)
	plaintext := "sensitive-value"
	table := chunk(encryptAt(t, key, 0, []byte(plaintext)))
	token := makeToken(0, uint32(len(plaintext)))

	t.Run("token beyond table extent", func(t *testing.T) {
		assert.Equal(t, "", Lookup(makeToken(1<<20, 4), table, fragments))
	})

	t.Run("length running past table end", func(t *testing.T) {
		assert.Equal(t, "", Lookup(makeToken(0, uint32(len(plaintext))+100), table, fragments))
	})

	t.Run("empty table", func(t *testing.T) {
		assert.Equal(t, "", Lookup(token, [][]byte{{}}, fragments))
		assert.Equal(t, "", Lookup(token, nil, fragments))
	})

	t.Run("wrong key never round trips", func(t *testing.T) {
		wrongKey := make([]byte, 32)
		_, err := rand.Read(wrongKey)
		require.NoError(t, err)

		got := Lookup(token, table, splitWords(wrongKey, 8))
		assert.NotEqual(t, plaintext, got)
	})

	t.Run("no fragments decrypts with zero key", func(t *testing.T) {
		got := Lookup(token, table, nil)
		assert.NotEqual(t, plaintext, got)
	})

	t.Run("error hook observes failures", func(t *testing.T) {
		var seen error
		SetErrorHook(func(err error) { seen = err })
		defer SetErrorHook(nil)

		assert.Equal(t, "", Lookup(makeToken(1<<20, 4), table, fragments))
		assert.ErrorIs(t, seen, ErrChunkOutOfRange)
	})
}

func TestLookupTamperSensitivity(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	fragments := splitWords(key, 8)
	plaintext := "tamper-evident-literal"
	table := chunk(encryptAt(t, key, 0, []byte(plaintext)))
	token := makeToken(0, uint32(len(plaintext)))

	t.Run("flipped ciphertext bit", func(t *testing.T) {
		tampered := [][]byte{append([]byte{}, table[0]...)}
		tampered[0][3] ^= 0x01

		got := Lookup(token, tampered, fragments)
		assert.NotEqual(t, plaintext, got)
	})

	t.Run("flipped fragment bit", func(t *testing.T) {
		tampered := make([][]uint32, len(fragments))
		for i, fragment := range fragments {
			tampered[i] = append([]uint32{}, fragment...)
		}
		tampered[2][0] ^= 1 << 7

		got := Lookup(token, table, tampered)
		assert.NotEqual(t, plaintext, got)
	})

	t.Run("flipped token bit", func(t *testing.T) {
		got := Lookup(token^(1<<33), table, fragments)
		assert.NotEqual(t, plaintext, got)
	})
}

func TestReconstructKey(t *testing.T) {
	t.Run("round trips every fragment count", func(t *testing.T) {
		key := make([]byte, 32)
		_, err := rand.Read(key)
		require.NoError(t, err)

		for n := 1; n <= 8; n++ {
			assert.Equal(t, key, reconstructKey(splitWords(key, n)), "fragment count %d", n)
		}
	})

	t.Run("excess words are ignored", func(t *testing.T) {
		key := make([]byte, 32)
		_, err := rand.Read(key)
		require.NoError(t, err)

		fragments := splitWords(key, 8)
		fragments = append(fragments, []uint32{0xdeadbeef})
		assert.Equal(t, key, reconstructKey(fragments))
	})

	t.Run("missing words leave zero bytes", func(t *testing.T) {
		got := reconstructKey([][]uint32{{0x01020304}})
		want := make([]byte, 32)
		copy(want, []byte{0x01, 0x02, 0x03, 0x04})
		assert.Equal(t, want, got)
	})
}

func TestMakeIV(t *testing.T) {
	t.Run("offset occupies the first four bytes big-endian", func(t *testing.T) {
		iv := makeIV(0x01020304)
		assert.Equal(t, [16]byte{0x01, 0x02, 0x03, 0x04}, iv)
	})

	t.Run("pure function of the offset", func(t *testing.T) {
		assert.Equal(t, makeIV(42), makeIV(42))
		assert.NotEqual(t, makeIV(42), makeIV(43))
	})
}
