package main

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/ai"
	"github.com/ppa-angola/portal-pedagogico/pkg/audit"
	"github.com/ppa-angola/portal-pedagogico/pkg/config"
	"github.com/ppa-angola/portal-pedagogico/pkg/crypt"
	"github.com/ppa-angola/portal-pedagogico/pkg/db"
	"github.com/ppa-angola/portal-pedagogico/pkg/library"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
)

// loadConfig reads and validates the configuration.
func loadConfig() (*config.PPAConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if !cfg.AuditEnabled {
		audit.SetEnabled(false)
	}
	return cfg, nil
}

func newLogger(cfg *config.PPAConfig) (*logger.Logger, error) {
	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// openDatabase connects to the configured database. Sensitive settings are
// sealed with the data key when one is configured.
func openDatabase(cfg *config.PPAConfig) (*gorm.DB, error) {
	key, err := cfg.DataKey()
	if err != nil {
		return nil, err
	}

	dbCfg := db.Config{URL: cfg.DatabaseURL, Debug: cfg.LogLevel == "debug"}
	if key != nil {
		cipher, err := crypt.NewSymmetric(key)
		if err != nil {
			return nil, fmt.Errorf("unable to initiate cipher: %w", err)
		}
		dbCfg.Cipher = cipher
	}
	return db.Connect(dbCfg)
}

// connect loads the configuration and opens the database, for commands
// that only need storage.
func connect() (*gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openDatabase(cfg)
}

// openLibrary returns the configured document library backend.
func openLibrary(ctx context.Context, cfg *config.PPAConfig) (library.Storage, error) {
	if cfg.LibraryBackend == "gcs" {
		gcs, err := library.NewGCS(ctx, cfg.LibraryBucket, "biblioteca")
		if err != nil {
			return nil, err
		}
		return gcs, nil
	}
	local, err := library.NewLocal(cfg.LibraryPath())
	if err != nil {
		return nil, err
	}
	return local, nil
}

// newGenerator returns the Gemini client, or a generator that refuses every
// call when no API key is configured.
func newGenerator(ctx context.Context, cfg *config.PPAConfig, log *logger.Logger) ai.Generator {
	gen, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Warn("AI generation disabled", "error", err)
		return ai.Unconfigured{}
	}
	return gen
}
