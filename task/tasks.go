package task

import (
	"context"
	"log/slog"

	"github.com/angas/strompris-go/config"
	"github.com/angas/strompris-go/mqttfeed"
	"github.com/angas/strompris-go/store"
	"github.com/angas/strompris-go/strompris"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	PrefetchTask    func()
	MaintenanceTask func()
}

func NewTasks(
	client *strompris.Client,
	s *store.Store,
	feed *mqttfeed.Feed,
	cnfg *config.AppConfig,
) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		PrefetchTask:    NewPrefetchTask(logger.With(slog.String("task", "prefetch")), client, s, feed, cnfg.Prices),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), s, cnfg),
	}
}

func (t *Tasks) Run() {
	_, err := t.cron.AddFunc(t.cnfg.Prices.GetPrefetchRunAt(), t.PrefetchTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("30 2 * * *", t.MaintenanceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
