// Package commands implements the CLI command actions.
package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	apperrors "github.com/allisson/stringveil/internal/errors"
	obfuscateUsecase "github.com/allisson/stringveil/internal/obfuscate/usecase"
)

// RunGenerate executes one obfuscation build: it reads the literal manifest,
// encrypts every string into the table, scatters the build key, and writes
// the generated artifacts plus the token map into the output directory.
//
// seedB64, when non-empty, derives the build key deterministically from the
// base64-decoded seed; this is the explicit opt-in for reproducible builds.
func RunGenerate(
	ctx context.Context,
	useCase obfuscateUsecase.UseCase,
	logger *slog.Logger,
	manifestPath string,
	outputDir string,
	seedB64 string,
	fragmentCount int,
) error {
	if manifestPath == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "--manifest is required")
	}

	var seed []byte
	if seedB64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(seedB64)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("seed is not valid base64: %v", err))
		}
		seed = decoded
	}

	result, err := useCase.Obfuscate(ctx, obfuscateUsecase.Input{
		ManifestPath:  manifestPath,
		OutputDir:     outputDir,
		FragmentCount: fragmentCount,
		Seed:          seed,
	})
	if err != nil {
		logger.Error("obfuscation build failed", slog.Any("error", err))
		return err
	}

	fmt.Printf("Build %s complete\n", result.BuildID)
	fmt.Printf("Package:   %s\n", result.Package)
	fmt.Printf("Lookup:    %s\n", result.Lookup)
	fmt.Printf("Strings:   %d\n", len(result.Entries))
	fmt.Println("Artifacts:")
	for _, path := range result.Artifacts {
		fmt.Printf("  %s\n", path)
	}
	fmt.Printf("Token map: %s\n", result.TokenMapPath)

	return nil
}
