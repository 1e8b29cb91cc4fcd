// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"memberdash/internal/app/system/timeouts"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// memberdash uses it to apply the configured operation deadlines.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{Fetch: appCfg.FetchTimeout})
	logger.Info("operation deadlines configured",
		zap.Duration("fetch", timeouts.Fetch()),
		zap.Duration("write", timeouts.Write()))
	return nil
}
