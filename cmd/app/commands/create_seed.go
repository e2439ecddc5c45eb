package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/allisson/stringveil/internal/crypto/domain"
)

// RunCreateSeed generates a cryptographically secure random seed for
// reproducible builds and prints the environment line to copy. The seed never
// appears in generated artifacts; the build key is derived from it one-way.
//
// Only use a pinned seed when build reproducibility is required: every build
// sharing the seed shares its key, weakening per-build key uniqueness.
func RunCreateSeed() error {
	seed := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(seed); err != nil {
		return fmt.Errorf("failed to generate seed: %w", err)
	}
	defer cryptoDomain.Zero(seed)

	fmt.Println("# Reproducible build seed")
	fmt.Println("# Copy this environment variable to your .env file or CI secrets")
	fmt.Println("# Builds sharing a seed share a build key; rotate it like a credential")
	fmt.Println()
	fmt.Printf("VEIL_SEED=\"%s\"\n", base64.StdEncoding.EncodeToString(seed))

	return nil
}
