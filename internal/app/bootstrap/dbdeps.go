// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/teamflags/internal/app/system/adminauth"
	"github.com/dalemusser/teamflags/internal/app/system/dbhandle"
	"github.com/dalemusser/teamflags/internal/app/system/tasks"
)

// DBDeps holds the backing-service managers for this WAFFLE app.
//
// It is created in ConnectDB and passed to EnsureSchema, Startup,
// BuildHandler, and Shutdown. Both managers are always non-nil; whether a
// service is usable is decided by the manager, not by a nil check.
type DBDeps struct {
	// Database hands out the live MongoDB handle or the stand-in.
	Database *dbhandle.Manager

	// Admin hands out the identity provider's admin app and auth handle.
	Admin *adminauth.Manager

	// Tasks runs background jobs started in Startup.
	Tasks *tasks.Runner
}
