// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// Values come from environment variables (TEAMFLAGS_*), configuration files,
// or command-line flags. Every backing-service key is optional: an empty
// value is a valid state that puts the matching manager into its
// unconfigured mode instead of failing startup.
type AppConfig struct {
	// MongoDB
	MongoURI            string        // connection string; empty runs without persistence
	MongoDatabase       string        // database name override (default: team-flags-edu)
	MongoMaxPoolSize    uint64        // maximum connections in pool
	MongoMinPoolSize    uint64        // minimum connections to keep warm
	MongoConnectTimeout time.Duration // bound for the single connection attempt
	DBReadTimeout       time.Duration // deadline for request-scoped queries
	DBWriteTimeout      time.Duration // deadline for request-scoped writes

	// Identity-provider admin credentials
	FirebaseAdminProjectID   string
	FirebaseAdminClientEmail string
	FirebaseAdminPrivateKey  string // single-line, "\n"-encoded PEM

	// Identity-provider public values; both set means protected routes
	// require a signed-in user.
	FirebasePublicAPIKey    string
	FirebasePublicProjectID string

	// API CORS allow-list (comma separated); empty allows any origin.
	APICORSOrigins string
}
