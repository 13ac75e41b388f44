// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/dalemusser/teamflags/internal/app/system/dbhandle"
	"github.com/dalemusser/teamflags/internal/app/system/indexes"
	"go.uber.org/zap"
)

// DatabaseSource is the part of *dbhandle.Manager the index job reads.
type DatabaseSource interface {
	State() dbhandle.State
	Database(ctx context.Context) dbhandle.Database
}

// IndexJob ensures indexes once the connection attempt settles. It covers the
// case where startup moved on while the attempt was still in flight. Degraded
// and failed databases end the job since neither state changes later.
func IndexJob(src DatabaseSource, logger *zap.Logger) Job {
	return Job{
		Name:     "ensure-indexes",
		Interval: 15 * time.Second,
		Run: func(ctx context.Context) error {
			switch src.State() {
			case dbhandle.StateDegraded, dbhandle.StateFailed:
				return ErrDone
			case dbhandle.StateReady:
			default:
				return nil
			}

			db := dbhandle.MongoDatabase(src.Database(ctx))
			if db == nil {
				return nil
			}
			if err := indexes.EnsureAll(ctx, db, logger); err != nil {
				return err
			}
			logger.Info("database indexes ensured")
			return ErrDone
		},
	}
}
