// Package app provides dependency injection container for assembling application components.
package app

import (
	"log/slog"
	"os"
	"sync"

	codegenService "github.com/allisson/stringveil/internal/codegen/service"
	"github.com/allisson/stringveil/internal/config"
	cryptoService "github.com/allisson/stringveil/internal/crypto/service"
	obfuscateUsecase "github.com/allisson/stringveil/internal/obfuscate/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger

	// Services
	keyProvider cryptoService.KeyProvider
	keySplitter cryptoService.KeySplitter
	generator   codegenService.ArtifactGenerator

	// Use Cases
	obfuscateUseCase obfuscateUsecase.UseCase

	// Initialization guards
	loggerInit      sync.Once
	keyProviderInit sync.Once
	keySplitterInit sync.Once
	generatorInit   sync.Once
	obfuscateInit   sync.Once
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{config: cfg}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// KeyProvider returns the build key provider.
func (c *Container) KeyProvider() cryptoService.KeyProvider {
	c.keyProviderInit.Do(func() {
		c.keyProvider = cryptoService.NewKeyProvider()
	})
	return c.keyProvider
}

// KeySplitter returns the key scatterer.
func (c *Container) KeySplitter() cryptoService.KeySplitter {
	c.keySplitterInit.Do(func() {
		c.keySplitter = cryptoService.NewKeySplitter()
	})
	return c.keySplitter
}

// ArtifactGenerator returns the artifact generator.
func (c *Container) ArtifactGenerator() codegenService.ArtifactGenerator {
	c.generatorInit.Do(func() {
		c.generator = codegenService.NewArtifactGenerator()
	})
	return c.generator
}

// ObfuscateUseCase returns the obfuscation build orchestrator.
func (c *Container) ObfuscateUseCase() obfuscateUsecase.UseCase {
	c.obfuscateInit.Do(func() {
		c.obfuscateUseCase = obfuscateUsecase.NewObfuscateUseCase(
			c.KeyProvider(),
			c.KeySplitter(),
			c.ArtifactGenerator(),
			c.Logger(),
		)
	})
	return c.obfuscateUseCase
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}
