// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/stringveil/cmd/app/commands"
	"github.com/allisson/stringveil/internal/app"
	"github.com/allisson/stringveil/internal/config"
)

func main() {
	cmd := &cli.Command{
		Name:    "stringveil",
		Usage:   "Protect string literals with an encrypted table and generated lookup artifacts",
		Version: "1.0.0",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Run one obfuscation build from a literal manifest",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "manifest",
						Aliases:  []string{"m"},
						Required: true,
						Usage:    "Path to the JSONC literal manifest",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "",
						Usage:   "Output directory for generated artifacts (default: VEIL_OUTPUT_DIR)",
					},
					&cli.StringFlag{
						Name:  "seed",
						Value: "",
						Usage: "Base64 seed for a deterministic build key (default: VEIL_SEED)",
					},
					&cli.IntFlag{
						Name:    "fragments",
						Aliases: []string{"f"},
						Value:   0,
						Usage:   "Number of key fragments, 1-8 (default: VEIL_FRAGMENT_COUNT)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)

					outputDir := cmd.String("output")
					if outputDir == "" {
						outputDir = cfg.OutputDir
					}
					seed := cmd.String("seed")
					if seed == "" {
						seed = cfg.Seed
					}
					fragments := int(cmd.Int("fragments"))
					if fragments == 0 {
						fragments = cfg.FragmentCount
					}

					return commands.RunGenerate(
						ctx,
						container.ObfuscateUseCase(),
						container.Logger(),
						cmd.String("manifest"),
						outputDir,
						seed,
						fragments,
					)
				},
			},
			{
				Name:  "create-seed",
				Usage: "Generate a seed for reproducible builds",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateSeed()
				},
			},
			{
				Name:  "decode-token",
				Usage: "Split a token into its offset and length halves",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "token",
						Aliases:  []string{"t"},
						Required: true,
						Usage:    "Token value, decimal or 0x-prefixed hex",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunDecodeToken(cmd.String("token"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
