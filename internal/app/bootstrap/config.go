// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/teamflags/internal/app/system/dbhandle"
	"github.com/dalemusser/teamflags/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "TEAMFLAGS"

// appConfigKeys are loaded through WAFFLE's config system:
//   - Config files: mongodb_uri, firebase_admin_project_id, etc.
//   - Environment variables: TEAMFLAGS_MONGODB_URI, etc.
//   - Command-line flags: --mongodb_uri, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongodb_uri", Default: "", Desc: "MongoDB connection URI (empty runs without persistence)"},
	{Name: "mongodb_db", Default: dbhandle.DefaultDatabase, Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},
	{Name: "mongo_connect_timeout", Default: "10s", Desc: "Bound for the MongoDB connection attempt"},
	{Name: "db_read_timeout", Default: "5s", Desc: "Deadline for request-scoped queries"},
	{Name: "db_write_timeout", Default: "10s", Desc: "Deadline for request-scoped writes"},

	{Name: "firebase_admin_project_id", Default: "", Desc: "Firebase Admin project id"},
	{Name: "firebase_admin_client_email", Default: "", Desc: "Firebase Admin service account email"},
	{Name: "firebase_admin_private_key", Default: "", Desc: "Firebase Admin private key (\\n-encoded)"},

	{Name: "firebase_public_api_key", Default: "", Desc: "Firebase web API key used by the client"},
	{Name: "firebase_public_project_id", Default: "", Desc: "Firebase project id used by the client"},

	{Name: "api_cors_origins", Default: "", Desc: "Comma-separated origins allowed to call /api (empty allows any)"},
}

// envKey returns the environment variable name for an app key.
func envKey(name string) string {
	return EnvVarPrefix + "_" + strings.ToUpper(name)
}

// LoadConfig loads WAFFLE core config and app-specific config. The result is
// the configuration snapshot; nothing downstream re-reads the environment.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:            appValues.String("mongodb_uri"),
		MongoDatabase:       appValues.String("mongodb_db"),
		MongoMaxPoolSize:    uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize:    uint64(appValues.Int("mongo_min_pool_size")),
		MongoConnectTimeout: appValues.Duration("mongo_connect_timeout", dbhandle.DefaultConnectTimeout),
		DBReadTimeout:       appValues.Duration("db_read_timeout", timeouts.DefaultRead),
		DBWriteTimeout:      appValues.Duration("db_write_timeout", timeouts.DefaultWrite),

		FirebaseAdminProjectID:   appValues.String("firebase_admin_project_id"),
		FirebaseAdminClientEmail: appValues.String("firebase_admin_client_email"),
		FirebaseAdminPrivateKey:  appValues.String("firebase_admin_private_key"),

		FirebasePublicAPIKey:    appValues.String("firebase_public_api_key"),
		FirebasePublicProjectID: appValues.String("firebase_public_project_id"),

		APICORSOrigins: appValues.String("api_cors_origins"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig checks the MongoDB URI only when one is set. Missing
// backing-service settings are not errors.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.MongoURI == "" {
		return nil
	}
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoConnectTimeout < 0 {
		return fmt.Errorf("mongo_connect_timeout must not be negative, got %s", appCfg.MongoConnectTimeout)
	}
	return nil
}

// dbConfig builds the persistence snapshot. Development mode shares the
// connection attempt through the process-wide slot.
func dbConfig(coreCfg *config.CoreConfig, appCfg AppConfig) dbhandle.Config {
	timeout := appCfg.MongoConnectTimeout
	if timeout <= 0 && coreCfg != nil && coreCfg.DBConnectTimeout > 0 {
		timeout = coreCfg.DBConnectTimeout
	}
	return dbhandle.Config{
		URI:            appCfg.MongoURI,
		Database:       appCfg.MongoDatabase,
		Dev:            coreCfg != nil && coreCfg.Env == "dev",
		ConnectTimeout: timeout,
		MaxPoolSize:    appCfg.MongoMaxPoolSize,
		MinPoolSize:    appCfg.MongoMinPoolSize,
	}
}
