// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	drivesfeature "github.com/slopepool/slopepool/internal/app/features/drives"
	healthfeature "github.com/slopepool/slopepool/internal/app/features/health"
	loginfeature "github.com/slopepool/slopepool/internal/app/features/login"
	profilesfeature "github.com/slopepool/slopepool/internal/app/features/profiles"
	registerfeature "github.com/slopepool/slopepool/internal/app/features/register"
	"github.com/slopepool/slopepool/internal/app/system/auth"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. Slopepool creates the bearer
// token manager and mounts the API feature routers: health, account
// registration, auth, rider profiles, and drives.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	authMgr, err := auth.NewManager(appCfg.JWTSecret, appCfg.JWTExpiry, logger)
	if err != nil {
		logger.Error("auth manager init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Account registration: POST /users returns a token.
	registerHandler := registerfeature.NewHandler(deps.MongoDatabase, authMgr, logger)
	r.Mount("/users", registerfeature.Routes(registerHandler))

	// Authentication: POST /auth (login), GET /auth (current user).
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, authMgr, logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler, authMgr))

	// Rider profiles.
	profilesHandler := profilesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/profiles", profilesfeature.Routes(profilesHandler, authMgr))

	// Drives: lifecycle, membership, comments.
	drivesHandler := drivesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/drives", drivesfeature.Routes(drivesHandler, authMgr))

	return r, nil
}
