// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	flagsfeature "github.com/dalemusser/teamflags/internal/app/features/flags"
	healthfeature "github.com/dalemusser/teamflags/internal/app/features/health"
	sessionfeature "github.com/dalemusser/teamflags/internal/app/features/session"
	"github.com/dalemusser/teamflags/internal/app/system/apicors"
	"github.com/dalemusser/teamflags/internal/app/system/routeguard"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler.
//
// Routes:
//   - /health, /ready, /readyz, /livez: probes
//   - /api/session: ID token verification and revocation (fail closed)
//   - /api/flags: team flags, served from the stand-in when the database is
//     unavailable
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	healthHandler := healthfeature.NewHandler(deps.Database, deps.Admin, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	providerConfigured := routeguard.ProviderConfigured(appCfg.FirebasePublicAPIKey, appCfg.FirebasePublicProjectID)
	guard := routeguard.Middleware(deps.Admin.AdminAuth(), providerConfigured, logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(apicors.Middleware(apicors.ParseOrigins(appCfg.APICORSOrigins)))
		r.Mount("/session", sessionfeature.Routes(sessionfeature.NewHandler(deps.Admin, logger), guard))
		r.Mount("/flags", flagsfeature.Routes(flagsfeature.NewHandler(deps.Database, logger), guard))
	})

	return r, nil
}
