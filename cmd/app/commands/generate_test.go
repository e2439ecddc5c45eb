package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codegenService "github.com/allisson/stringveil/internal/codegen/service"
	cryptoService "github.com/allisson/stringveil/internal/crypto/service"
	apperrors "github.com/allisson/stringveil/internal/errors"
	obfuscateUsecase "github.com/allisson/stringveil/internal/obfuscate/usecase"
)

func newTestDeps() (obfuscateUsecase.UseCase, *slog.Logger) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	useCase := obfuscateUsecase.NewObfuscateUseCase(
		cryptoService.NewKeyProvider(),
		cryptoService.NewKeySplitter(),
		codegenService.NewArtifactGenerator(),
		logger,
	)
	return useCase, logger
}

func TestRunGenerate(t *testing.T) {
	ctx := context.Background()
	useCase, logger := newTestDeps()

	manifest := filepath.Join(t.TempDir(), "veil.jsonc")
	require.NoError(t, os.WriteFile(manifest, []byte(`{
		"package": "app",
		"identity": "cli",
		"strings": ["token-a", "token-b"],
	}`), 0o644))

	t.Run("success", func(t *testing.T) {
		outDir := t.TempDir()

		err := RunGenerate(ctx, useCase, logger, manifest, outDir, "", 8)
		require.NoError(t, err)

		entries, err := os.ReadDir(outDir)
		require.NoError(t, err)
		assert.Len(t, entries, 10) // 8 holders + primary + token map
	})

	t.Run("seeded run accepts base64", func(t *testing.T) {
		err := RunGenerate(ctx, useCase, logger, manifest, t.TempDir(), "cGlubmVkLXNlZWQ=", 8)
		require.NoError(t, err)
	})

	t.Run("missing manifest flag", func(t *testing.T) {
		err := RunGenerate(ctx, useCase, logger, "", t.TempDir(), "", 8)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("invalid base64 seed", func(t *testing.T) {
		err := RunGenerate(ctx, useCase, logger, manifest, t.TempDir(), "not-base64!!", 8)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("nonexistent manifest", func(t *testing.T) {
		err := RunGenerate(ctx, useCase, logger, filepath.Join(t.TempDir(), "nope.jsonc"), t.TempDir(), "", 8)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
