package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/strompris-go/config"
	"github.com/angas/strompris-go/store"
)

func NewMaintenanceTask(logger *slog.Logger, s *store.Store, cnfg *config.AppConfig) func() {
	return func() {
		logger.Debug("running maintenance task...")

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		if err := s.PurgeLog(ctx, cnfg.Logging.GetDbMaxEntries()); err != nil {
			logger.Error("log maintenance error", slog.Any("error", err))
		}

		if err := s.PurgeCachedResponses(ctx, cnfg.Store.GetCacheRetentionDays()); err != nil {
			logger.Error("http_cache maintenance error", slog.Any("error", err))
		}

		if err := s.Backup(ctx); err != nil {
			logger.Error("backup error", slog.Any("error", err))
		}

		if err := s.PurgeBackups(ctx, cnfg.Store.GetBackupRetentionDays()); err != nil {
			logger.Error("backup maintenance error", slog.Any("error", err))
		}

		logger.Info("maintenance task done")
	}
}
