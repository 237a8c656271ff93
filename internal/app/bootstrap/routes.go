// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	assignmentsfeature "github.com/convohub/convohub/internal/app/features/assignments"
	healthfeature "github.com/convohub/convohub/internal/app/features/health"
	"github.com/convohub/convohub/internal/app/system/requestid"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// ConvoHub mounts the health endpoint and the assignments API.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Tag every request with an id so engine log lines can be correlated
	// with the run that produced them.
	r.Use(requestid.Middleware)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.ConvoHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Assignment runs and admin reads
	assignHandler := assignmentsfeature.NewHandler(
		deps.ConvoHubMongoClient,
		deps.ConvoHubMongoDatabase,
		logger,
		assignmentsfeature.Defaults{
			RoomSize:        appCfg.DefaultRoomSize,
			MinRoomSize:     appCfg.DefaultMinRoomSize,
			MaxRoomSize:     appCfg.DefaultMaxRoomSize,
			SolverTimeLimit: appCfg.SolverTimeLimit,
		})
	r.Mount("/assignments", assignmentsfeature.Routes(assignHandler))

	return r, nil
}
