package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/jsonc"

	codegenService "github.com/allisson/stringveil/internal/codegen/service"
	cryptoDomain "github.com/allisson/stringveil/internal/crypto/domain"
	cryptoService "github.com/allisson/stringveil/internal/crypto/service"
	apperrors "github.com/allisson/stringveil/internal/errors"
	obfuscateDomain "github.com/allisson/stringveil/internal/obfuscate/domain"
	tableService "github.com/allisson/stringveil/internal/table/service"
)

// obfuscateUseCase implements the UseCase interface for obfuscation builds.
type obfuscateUseCase struct {
	keyProvider cryptoService.KeyProvider
	keySplitter cryptoService.KeySplitter
	generator   codegenService.ArtifactGenerator
	logger      *slog.Logger
}

// NewObfuscateUseCase creates the build orchestrator.
func NewObfuscateUseCase(
	keyProvider cryptoService.KeyProvider,
	keySplitter cryptoService.KeySplitter,
	generator codegenService.ArtifactGenerator,
	logger *slog.Logger,
) UseCase {
	return &obfuscateUseCase{
		keyProvider: keyProvider,
		keySplitter: keySplitter,
		generator:   generator,
		logger:      logger,
	}
}

// Obfuscate runs one complete build:
//
//  1. Load and validate the literal manifest.
//  2. Provision the per-build secret key (random, or seed-derived when the
//     caller opted into reproducible builds).
//  3. Register every manifest string into the encrypted table, collecting
//     tokens in manifest order.
//  4. Scatter the key into fragments and emit the holder and primary
//     artifacts.
//  5. Write the token map for the literal rewriter.
//
// The key is zeroed before returning; its only surviving representation is
// the scattered fragment set inside the generated artifacts.
func (u *obfuscateUseCase) Obfuscate(
	ctx context.Context,
	input Input,
) (*obfuscateDomain.BuildResult, error) {
	manifest, err := u.loadManifest(input.ManifestPath)
	if err != nil {
		return nil, err
	}

	key, err := u.provideKey(input.Seed)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	stream, err := cryptoService.NewCTRStream(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize build cipher: %w", err)
	}

	builder := tableService.NewBuilder(stream)
	entries := make([]obfuscateDomain.TokenEntry, 0, len(manifest.Strings))
	for i, s := range manifest.Strings {
		token, err := builder.Register(s)
		if err != nil {
			return nil, fmt.Errorf("failed to register string %d: %w", i, err)
		}
		entries = append(entries, obfuscateDomain.TokenEntry{
			Index:  i,
			Token:  uint64(token),
			Offset: token.Offset(),
			Length: token.Length(),
		})
	}

	fragments, err := u.keySplitter.Split(key, input.FragmentCount)
	if err != nil {
		return nil, fmt.Errorf("failed to scatter build key: %w", err)
	}

	generated, err := u.generator.Generate(ctx, codegenService.Params{
		PackageName: manifest.Package,
		Identity:    manifest.Identity,
		OutputDir:   input.OutputDir,
		Table:       builder,
		Fragments:   fragments,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate artifacts: %w", err)
	}

	result := &obfuscateDomain.BuildResult{
		BuildID:   uuid.Must(uuid.NewV7()).String(),
		Package:   manifest.Package,
		Suffix:    generated.Suffix,
		Lookup:    generated.LookupName,
		Artifacts: append(append([]string{}, generated.HolderPaths...), generated.PrimaryPath),
		Entries:   entries,
	}

	if err := u.writeTokenMap(input.OutputDir, result); err != nil {
		return nil, err
	}

	u.logger.Info("obfuscation build complete",
		slog.String("build_id", result.BuildID),
		slog.String("package", result.Package),
		slog.Int("strings", len(entries)),
		slog.Int("table_bytes", builder.Size()),
		slog.Int("chunks", builder.ChunkCount()),
		slog.Int("fragments", len(fragments)),
		slog.String("lookup", result.Lookup),
	)

	return result, nil
}

// loadManifest reads and validates the JSONC literal manifest.
func (u *obfuscateUseCase) loadManifest(path string) (*obfuscateDomain.Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifest %s: %w", path, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest obfuscateDomain.Manifest
	if err := json.Unmarshal(jsonc.ToJSON(raw), &manifest); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("malformed manifest: %v", err))
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// provideKey draws the per-build key: seed-derived when a seed was supplied,
// fresh random otherwise.
func (u *obfuscateUseCase) provideKey(seed []byte) ([]byte, error) {
	if len(seed) > 0 {
		u.logger.Warn("deriving build key from seed, per-build key uniqueness is weakened")
		key, err := u.keyProvider.KeyFromSeed(seed)
		if err != nil {
			return nil, fmt.Errorf("failed to derive build key: %w", err)
		}
		return key, nil
	}

	key, err := u.keyProvider.NewKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate build key: %w", err)
	}
	return key, nil
}

// writeTokenMap serializes the build result for the literal rewriter.
func (u *obfuscateUseCase) writeTokenMap(outputDir string, result *obfuscateDomain.BuildResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize token map: %w", err)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("veil_tokens%s.json", strings.ToLower(result.Suffix)))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write token map: %w", err)
	}

	result.TokenMapPath = path
	return nil
}
