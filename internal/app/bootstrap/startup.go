// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/convohub/convohub/internal/app/store/settingsstore"
	"github.com/convohub/convohub/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// repairRunner hosts the periodic duplicate-active settings repair. Started
// here, stopped in Shutdown.
var repairRunner *tasks.Runner

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	store := settingsstore.New(deps.ConvoHubMongoDatabase)
	repairRunner = tasks.NewRunner(logger,
		tasks.SettingsRepairJob(store, logger, appCfg.SettingsRepairInterval))
	repairRunner.Start()
	return nil
}
