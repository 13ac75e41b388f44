package dbhandle

import (
	"context"
	"fmt"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// DefaultURI is the connection target used when no connection string is set.
	DefaultURI = "mongodb://localhost:27017/team-flags-edu"
	// DefaultDatabase is the database name used when no override is set.
	DefaultDatabase = "team-flags-edu"
	// DefaultConnectTimeout bounds the single connection attempt.
	DefaultConnectTimeout = 10 * time.Second
)

// Config is the snapshot of persistence settings taken at startup.
type Config struct {
	URI            string        // connection string; empty means persistence is not configured
	Database       string        // database name override
	Dev            bool          // share the connection attempt through the process-wide slot
	ConnectTimeout time.Duration // bound for the connection attempt
	MaxPoolSize    uint64
	MinPoolSize    uint64
}

// Configured reports whether a connection string was supplied.
func (c Config) Configured() bool {
	return c.URI != ""
}

// ResolvedURI returns the connection string, or DefaultURI when unset.
func (c Config) ResolvedURI() string {
	if c.URI == "" {
		return DefaultURI
	}
	return c.URI
}

// DatabaseName returns the database override, or DefaultDatabase when unset.
func (c Config) DatabaseName() string {
	if c.Database == "" {
		return DefaultDatabase
	}
	return c.Database
}

func (c Config) connectTimeout() time.Duration {
	if c.ConnectTimeout <= 0 {
		return DefaultConnectTimeout
	}
	return c.ConnectTimeout
}

// Connector opens and verifies a client for cfg.
type Connector func(ctx context.Context, cfg Config) (*mongo.Client, error)

// DefaultConnector connects through the waffle pool helper and pings the
// primary so an unreachable server surfaces as an error here rather than on
// first query.
func DefaultConnector(ctx context.Context, cfg Config) (*mongo.Client, error) {
	poolCfg := wafflemongo.DefaultPoolConfig()
	if cfg.MaxPoolSize > 0 {
		poolCfg.MaxPoolSize = cfg.MaxPoolSize
	}
	if cfg.MinPoolSize > 0 {
		poolCfg.MinPoolSize = cfg.MinPoolSize
	}

	client, err := wafflemongo.ConnectWithPool(ctx, cfg.ResolvedURI(), cfg.DatabaseName(), poolCfg)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping primary: %w", err)
	}
	return client, nil
}
