package commands

import (
	"fmt"

	"github.com/hotline-go/hotline/internal/cli/credentials"
	"github.com/hotline-go/hotline/internal/logger"
	"github.com/hotline-go/hotline/pkg/config"
)

// InitLogger initializes the structured logger from configuration.
func InitLogger(cfg *config.Config) error {
	loggerCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if err := logger.Init(loggerCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// newCredentialsStore opens the bookmark store shared by every command
// that resolves connection options.
func newCredentialsStore() (*credentials.Store, error) {
	return credentials.NewStore()
}
