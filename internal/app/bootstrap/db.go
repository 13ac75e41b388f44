// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/teamflags/internal/app/system/adminauth"
	"github.com/dalemusser/teamflags/internal/app/system/dbhandle"
	"github.com/dalemusser/teamflags/internal/app/system/indexes"
	"github.com/dalemusser/teamflags/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the two managers. It never fails on missing or
// unreachable services: the database manager starts its single connection
// attempt in the background and the admin manager waits for first use.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	db := dbhandle.New(dbConfig(coreCfg, appCfg), logger.Named("db"))
	db.Warm()

	admin := adminauth.New(adminauth.Config{
		ProjectID:   appCfg.FirebaseAdminProjectID,
		ClientEmail: appCfg.FirebaseAdminClientEmail,
		PrivateKey:  appCfg.FirebaseAdminPrivateKey,
	}, logger.Named("admin"),
		adminauth.WithKeyNames(
			envKey("firebase_admin_project_id"),
			envKey("firebase_admin_client_email"),
			envKey("firebase_admin_private_key"),
		))

	return DBDeps{Database: db, Admin: admin, Tasks: tasks.New(logger.Named("tasks"))}, nil
}

// EnsureSchema creates indexes when the database is reachable. The wait is
// bounded by ctx; a degraded database skips index creation instead of
// aborting startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := dbhandle.MongoDatabase(deps.Database.Database(ctx))
	if db == nil {
		logger.Warn("skipping index setup; database not available",
			zap.String("state", deps.Database.State().String()))
		return nil
	}

	logger.Info("ensuring database indexes")
	if err := indexes.EnsureAll(ctx, db, logger); err != nil {
		logger.Error("failed to ensure indexes", zap.Error(err))
		return err
	}
	return nil
}
