// Package providers contains dependency injection providers for the Plateful server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/platefulapp/plateful-server/internal/config"
	"github.com/platefulapp/plateful-server/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.Load()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Environment: cfg.Server.Environment,
		Level:       logger.ParseLevel(cfg.Log.Level),
	})

	log.Info("Starting Plateful Server",
		"environment", cfg.Server.Environment,
		"log_level", cfg.Log.Level,
		"data_path", cfg.Data.Path,
	)

	return log, nil
}
