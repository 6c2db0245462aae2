// Package cli holds the shared process initialization: logging, env file,
// configuration and store construction.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"financas/internal/config"
	applog "financas/internal/log"
	"financas/internal/storage"
	"financas/internal/store"
	"financas/internal/store/memory"
)

// SetupLogger initializes structured logging and installs it as the default.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.Config{Component: applog.ComponentApp})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Missing files are
// fine; production sets real environment variables.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting the
// process on failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// NewStore builds the transaction store selected by DATA_BACKEND. Both
// backends are session-scoped: the sqlite one runs against :memory: by
// default and persists nothing across restarts.
func NewStore(logger *applog.Logger, cfg *config.Config) store.Store {
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath, cfg.Categories)
		if err != nil {
			logger.Error("Failed to initialize SQLite store",
				applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Initialized SQLite store", applog.FieldBackend, cfg.DataBackend)
		return repo
	default:
		logger.Info("Initialized memory store", applog.FieldBackend, cfg.DataBackend)
		return memory.New(cfg.Categories)
	}
}
