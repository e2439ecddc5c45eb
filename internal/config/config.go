// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// FragmentCount is the number of holder artifacts the build key is
	// scattered across (1 to 8).
	FragmentCount int

	// OutputDir is the default directory generated artifacts are written to.
	OutputDir string

	// Seed is an optional base64-encoded seed for deterministic build keys.
	// Leave empty for a fresh random key per build; setting it is an
	// explicit opt-in that weakens per-build key uniqueness in exchange for
	// reproducible, cacheable builds.
	Seed string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Key scattering
		FragmentCount: env.GetInt("VEIL_FRAGMENT_COUNT", 8),

		// Artifact output
		OutputDir: env.GetString("VEIL_OUTPUT_DIR", "."),

		// Reproducible builds
		Seed: env.GetString("VEIL_SEED", ""),
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
