// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops background jobs and disconnects the live MongoDB client, if
// one was established. The context carries WAFFLE's shutdown timeout.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Tasks != nil {
		if err := deps.Tasks.Stop(ctx); err != nil {
			logger.Warn("background jobs did not stop in time", zap.Error(err))
		}
	}

	if deps.Database == nil || deps.Database.Client() == nil {
		return nil
	}

	logger.Info("disconnecting MongoDB client")
	if err := deps.Database.Close(ctx); err != nil {
		logger.Error("MongoDB disconnect failed", zap.Error(err))
		return err
	}
	return nil
}
