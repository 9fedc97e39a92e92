// Package providers contains dependency injection providers for the Scripture Sanctuary server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/scripturesanctuary/sanctuary-server/internal/config"
	"github.com/scripturesanctuary/sanctuary-server/internal/logger"
	"github.com/scripturesanctuary/sanctuary-server/internal/metrics"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Scripture Sanctuary",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.App.DataPath,
		"scripture_url", cfg.Scripture.BaseURL,
	)

	return log, nil
}

// ProvideMetrics provides the Prometheus collectors.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	return metrics.New(), nil
}
