// Package service emits the generated Go artifacts: one holder file per key
// fragment and one primary file exposing the chunked ciphertext table, the
// reassembled fragment table, and the lookup entry point.
package service

import "context"

// TableSource is the read side of the encrypted table builder the generator
// consumes. The builder must be fully populated before the generator runs.
type TableSource interface {
	// ChunkCount reports the number of fixed-size segments, at least 1 even
	// for an empty table.
	ChunkCount() int
	// ChunkBytes returns the i-th segment, empty beyond the table's extent.
	ChunkBytes(i int) []byte
}

// Params carries everything the generator needs for one emission pass.
type Params struct {
	// PackageName is the Go package the artifacts are emitted into.
	PackageName string
	// Identity distinguishes multiple build units sharing one output
	// package. It is sanitized to letters, digits and underscores with a
	// single leading marker; an identity that sanitizes to nothing is
	// omitted entirely.
	Identity string
	// OutputDir is the directory the artifact files are written to.
	OutputDir string
	// Table is the completed encrypted table.
	Table TableSource
	// Fragments are the scattered key word fragments, in reassembly order.
	Fragments [][]uint32
}

// Result describes the emitted artifacts.
type Result struct {
	// Suffix is the sanitized identity suffix baked into every emitted
	// identifier, empty when the identity was omitted.
	Suffix string
	// LookupName is the exported name of the emitted lookup entry point.
	LookupName string
	// PrimaryPath is the path of the emitted primary artifact.
	PrimaryPath string
	// HolderPaths are the paths of the emitted holder artifacts, in
	// fragment order.
	HolderPaths []string
}

// ArtifactGenerator writes the generated source artifacts for one build.
type ArtifactGenerator interface {
	Generate(ctx context.Context, params Params) (*Result, error)
}
