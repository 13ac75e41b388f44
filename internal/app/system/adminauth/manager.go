// Package adminauth owns the identity provider's administrative handles.
//
// Unlike dbhandle, failures here are never absorbed: every accessor returns
// an AdminNotConfiguredError naming the keys to set when initialization did
// not produce an app.
package adminauth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
)

// Config is the snapshot of admin settings taken at startup.
type Config struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string // may contain literal "\n" sequences
}

// Manager lazily builds one admin app and one auth handle per process.
type Manager struct {
	cfg     Config
	logger  *zap.Logger
	newApp  AppFactory
	newAuth AuthFactory
	keys    []string

	initOnce sync.Once
	initDone atomic.Bool
	app      *firebase.App
	initErr  error

	authMu sync.Mutex
	auth   AuthClient
}

// Option customizes a Manager.
type Option func(*Manager)

// WithAppFactory replaces DefaultAppFactory.
func WithAppFactory(f AppFactory) Option {
	return func(m *Manager) { m.newApp = f }
}

// WithAuthFactory replaces DefaultAuthFactory.
func WithAuthFactory(f AuthFactory) Option {
	return func(m *Manager) { m.newAuth = f }
}

// WithKeyNames sets the key names reported in AdminNotConfiguredError.
func WithKeyNames(projectID, clientEmail, privateKey string) Option {
	return func(m *Manager) { m.keys = []string{projectID, clientEmail, privateKey} }
}

// New returns a Manager. Nothing is validated or built until first use.
func New(cfg Config, logger *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		cfg:     cfg,
		logger:  logger,
		newApp:  DefaultAppFactory,
		newAuth: DefaultAuthFactory,
		keys:    []string{KeyProjectID, KeyClientEmail, KeyPrivateKey},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// init runs once. Missing settings are logged, not returned; the accessors
// report them.
func (m *Manager) init(ctx context.Context) {
	if m.cfg.ProjectID == "" {
		m.logger.Warn("Firebase Admin credentials not configured",
			zap.String("set", m.keys[0]))
		return
	}

	key := DecodePrivateKey(m.cfg.PrivateKey)
	if strings.TrimSpace(key) == "" {
		m.logger.Warn("Firebase Admin private key not found",
			zap.String("set", m.keys[2]))
		return
	}

	app, err := m.newApp(ctx, Credentials{
		ProjectID:   m.cfg.ProjectID,
		ClientEmail: m.cfg.ClientEmail,
		PrivateKey:  key,
	})
	if err != nil {
		m.logger.Error("failed to initialize Firebase Admin", zap.Error(err))
		m.initErr = err
		return
	}

	m.app = app
	m.logger.Info("Firebase Admin SDK initialized",
		zap.String("project_id", m.cfg.ProjectID))
}

func (m *Manager) ensureInit(ctx context.Context) {
	m.initOnce.Do(func() {
		m.init(context.WithoutCancel(ctx))
		m.initDone.Store(true)
	})
}

func (m *Manager) notConfigured(handle string, cause error) error {
	return &AdminNotConfiguredError{
		Handle: handle,
		Keys:   append([]string(nil), m.keys...),
		Cause:  cause,
	}
}

// App returns the admin application context.
func (m *Manager) App(ctx context.Context) (*firebase.App, error) {
	m.ensureInit(ctx)
	if m.app == nil {
		return nil, m.notConfigured("App", m.initErr)
	}
	return m.app, nil
}

// Auth returns the identity-verification handle, building it on first use.
// A failed build is not cached; the next call tries again.
func (m *Manager) Auth(ctx context.Context) (AuthClient, error) {
	m.ensureInit(ctx)
	if m.app == nil {
		return nil, m.notConfigured("Auth", m.initErr)
	}

	m.authMu.Lock()
	defer m.authMu.Unlock()
	if m.auth == nil {
		client, err := m.newAuth(ctx, m.app)
		if err != nil {
			m.logger.Error("failed to create Firebase Admin auth client", zap.Error(err))
			return nil, m.notConfigured("Auth", fmt.Errorf("create admin auth client: %w", err))
		}
		m.auth = client
	}
	return m.auth, nil
}

// Configured reports whether initialization produced an app. It triggers
// initialization if no accessor has run yet.
func (m *Manager) Configured() bool {
	m.ensureInit(context.Background())
	return m.app != nil
}

// Admin status values reported by Status.
const (
	StatusUnconfigured = "unconfigured"
	StatusPending      = "pending"
	StatusUnavailable  = "unavailable"
	StatusOK           = "ok"
)

// Status reports the admin state without running initialization. Missing
// settings read as StatusUnconfigured; present settings read as
// StatusPending until the first accessor call.
func (m *Manager) Status() string {
	if m.cfg.ProjectID == "" || strings.TrimSpace(DecodePrivateKey(m.cfg.PrivateKey)) == "" {
		return StatusUnconfigured
	}
	if !m.initDone.Load() {
		return StatusPending
	}
	if m.app == nil {
		return StatusUnavailable
	}
	return StatusOK
}

// InitError returns the app construction error, if any.
func (m *Manager) InitError() error {
	m.ensureInit(context.Background())
	return m.initErr
}
