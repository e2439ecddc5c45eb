// Package usecase orchestrates one obfuscation build: key provisioning,
// string registration into the encrypted table, key scattering, and artifact
// generation.
package usecase

import (
	"context"

	obfuscateDomain "github.com/allisson/stringveil/internal/obfuscate/domain"
)

// Input carries the parameters for one obfuscation build.
type Input struct {
	// ManifestPath is the JSONC literal manifest to process.
	ManifestPath string
	// OutputDir is where the generated artifacts and token map are written.
	OutputDir string
	// FragmentCount is the number of holder artifacts the key is scattered
	// across, 1 to 8.
	FragmentCount int
	// Seed, when non-nil, derives the build key deterministically for
	// reproducible builds instead of drawing fresh random key material.
	Seed []byte
}

// UseCase runs obfuscation builds.
type UseCase interface {
	// Obfuscate executes one complete build. Any failure is fatal to the
	// build: a dropped or corrupted table entry would desynchronize every
	// token emitted after it.
	Obfuscate(ctx context.Context, input Input) (*obfuscateDomain.BuildResult, error)
}
