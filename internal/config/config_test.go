package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Load()
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 8, cfg.FragmentCount)
		assert.Equal(t, ".", cfg.OutputDir)
		assert.Equal(t, "", cfg.Seed)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("VEIL_FRAGMENT_COUNT", "4")
		t.Setenv("VEIL_OUTPUT_DIR", "/tmp/out")
		t.Setenv("VEIL_SEED", "c2VlZA==")

		cfg := Load()
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 4, cfg.FragmentCount)
		assert.Equal(t, "/tmp/out", cfg.OutputDir)
		assert.Equal(t, "c2VlZA==", cfg.Seed)
	})
}
