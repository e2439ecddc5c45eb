package domain

// TokenEntry maps one manifest string, by index, to its emitted token. The
// plaintext is deliberately not echoed back: the rewriter already has it and
// the token map may outlive the build tree.
type TokenEntry struct {
	// Index is the string's position in the manifest.
	Index int `json:"index"`
	// Token is the packed 64-bit handle: offset<<32 | length.
	Token uint64 `json:"token"`
	// Offset is the string's byte offset in the logical table buffer.
	Offset uint32 `json:"offset"`
	// Length is the ciphertext byte length.
	Length uint32 `json:"length"`
}

// BuildResult describes one completed obfuscation build.
type BuildResult struct {
	// BuildID uniquely identifies this build (UUIDv7).
	BuildID string `json:"build_id"`
	// Package is the output package of the generated artifacts.
	Package string `json:"package"`
	// Suffix is the sanitized identity suffix used in emitted names, empty
	// when omitted.
	Suffix string `json:"suffix"`
	// Lookup is the exported name of the emitted lookup entry point the
	// rewriter must call with each token.
	Lookup string `json:"lookup"`
	// Artifacts are the paths of every emitted source file: holders in
	// fragment order, then the primary artifact.
	Artifacts []string `json:"artifacts"`
	// Entries map manifest strings to tokens, in manifest order.
	Entries []TokenEntry `json:"entries"`

	// TokenMapPath is where the serialized token map was written. Not part
	// of the map itself.
	TokenMapPath string `json:"-"`
}
