// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/convohub/convohub/internal/app/store/settingsstore"
	"go.uber.org/zap"
)

// SettingsRepairJob creates a job that archives duplicate active settings
// versions. Two runs for the same scope racing to commit can leave a scope
// with two active versions; the repair keeps the newest and archives the
// rest, so readers always see at most one active version per scope.
func SettingsRepairJob(store *settingsstore.Store, logger *zap.Logger, interval time.Duration) Job {
	return Job{
		Name:     "duplicate-active-settings-repair",
		Interval: interval,
		Run: func(ctx context.Context) error {
			count, err := store.RepairDuplicateActive(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("archived duplicate active settings versions",
					zap.Int64("count", count))
			}
			return nil
		},
	}
}
