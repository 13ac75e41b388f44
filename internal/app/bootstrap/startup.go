// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/teamflags/internal/app/system/dbhandle"
	"github.com/dalemusser/teamflags/internal/app/system/routeguard"
	"github.com/dalemusser/teamflags/internal/app/system/tasks"
	"github.com/dalemusser/teamflags/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after ConnectDB and EnsureSchema. It applies request
// deadlines and reports the mode the app is running in. The admin manager is
// left untouched so its initialization stays on first use.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Read:  appCfg.DBReadTimeout,
		Write: appCfg.DBWriteTimeout,
	})

	// EnsureSchema gave up waiting while the attempt was in flight.
	switch deps.Database.State() {
	case dbhandle.StateUninitialized, dbhandle.StateInitializing:
		deps.Tasks.Register(tasks.IndexJob(deps.Database, logger))
	}
	deps.Tasks.Start()

	logger.Info("backing services",
		zap.String("env", coreCfg.Env),
		zap.String("database", deps.Database.DatabaseName()),
		zap.String("database_state", deps.Database.State().String()),
		zap.Bool("identity_provider_configured",
			routeguard.ProviderConfigured(appCfg.FirebasePublicAPIKey, appCfg.FirebasePublicProjectID)),
	)
	return nil
}
