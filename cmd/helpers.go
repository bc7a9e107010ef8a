package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/research-reader/internal/backend"
	"github.com/ziadkadry99/research-reader/internal/config"
	"github.com/ziadkadry99/research-reader/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `reader init` to create a config file", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

// newBackend creates the backend client with the shared category cache.
func newBackend(cfg *config.Config, logger *zap.Logger) *backend.CategoryCache {
	client := backend.NewClient(cfg.BackendURL,
		backend.WithTimeout(cfg.RequestTimeout()),
		backend.WithLogger(logger.Named("backend")),
	)
	return backend.NewCategoryCache(client, cfg.CategoryCacheTTL())
}
