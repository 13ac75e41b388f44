package adminauth

import (
	"errors"
	"strings"
)

// Configuration keys the admin manager needs. Bootstrap may substitute the
// prefixed environment names via WithKeyNames.
const (
	KeyProjectID   = "FIREBASE_ADMIN_PROJECT_ID"
	KeyClientEmail = "FIREBASE_ADMIN_CLIENT_EMAIL"
	KeyPrivateKey  = "FIREBASE_ADMIN_PRIVATE_KEY"
)

// ErrNotConfigured matches every AdminNotConfiguredError via errors.Is.
var ErrNotConfigured = errors.New("identity admin not configured")

// AdminNotConfiguredError is returned by every accessor when initialization
// did not produce an app or the auth handle could not be built.
type AdminNotConfiguredError struct {
	Handle string   // "App" or "Auth"
	Keys   []string // configuration keys that must be set
	Cause  error    // construction error, if the keys were present
}

func (e *AdminNotConfiguredError) Error() string {
	var b strings.Builder
	b.WriteString("Firebase Admin ")
	b.WriteString(e.Handle)
	b.WriteString(" is not initialized.\nEnsure the following environment variables are set:")
	for _, k := range e.Keys {
		b.WriteString("\n  - ")
		b.WriteString(k)
	}
	if e.Cause != nil {
		b.WriteString("\ncause: ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *AdminNotConfiguredError) Is(target error) bool {
	return target == ErrNotConfigured
}

func (e *AdminNotConfiguredError) Unwrap() error {
	return e.Cause
}
