// Package timeouts provides centralized deadlines for request-scoped
// database work.
package timeouts

import (
	"context"
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing  = 2 * time.Second
	DefaultRead  = 5 * time.Second
	DefaultWrite = 10 * time.Second
)

var mu sync.RWMutex

var (
	ping  = DefaultPing
	read  = DefaultRead
	write = DefaultWrite
)

// Ping returns the timeout for health probes.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Read returns the timeout for queries.
func Read() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return read
}

// Write returns the timeout for inserts, updates and deletes.
func Write() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return write
}

// Config holds timeout overrides. Zero fields keep the current value.
type Config struct {
	Ping  time.Duration
	Read  time.Duration
	Write time.Duration
}

// Configure sets custom timeout values.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Read > 0 {
		read = cfg.Read
	}
	if cfg.Write > 0 {
		write = cfg.Write
	}
}

// Reset restores all timeouts to defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	read = DefaultRead
	write = DefaultWrite
}

// WithPing derives a context bounded by the ping timeout.
func WithPing(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Ping())
}

// WithRead derives a context bounded by the read timeout.
func WithRead(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Read())
}

// WithWrite derives a context bounded by the write timeout.
func WithWrite(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Write())
}
