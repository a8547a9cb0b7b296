package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/strompris-go/config"
	"github.com/angas/strompris-go/dates"
	"github.com/angas/strompris-go/mqttfeed"
	"github.com/angas/strompris-go/store"
	"github.com/angas/strompris-go/strompris"
	"github.com/angas/strompris-go/types"
)

// NewPrefetchTask warms the transparent cache with the recent price
// window for all regions, so interactive chart requests are served
// without upstream round trips. When an MQTT feed is given, today's
// prices are published after each run.
func NewPrefetchTask(
	logger *slog.Logger,
	client *strompris.Client,
	s *store.Store,
	feed *mqttfeed.Feed,
	cnfg config.AppConfigPrices) func() {

	if needImmediatePrefetch(s, cnfg) {
		logger.Info("need an immediate prefetch of today's prices")
		runPrefetchTask(logger, client, feed, cnfg)
	} else {
		logger.Debug("no need for immediate prefetch")
	}

	return func() { runPrefetchTask(logger, client, feed, cnfg) }
}

func runPrefetchTask(logger *slog.Logger, client *strompris.Client, feed *mqttfeed.Feed, cnfg config.AppConfigPrices) {
	logger.Debug("running prefetch task...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	today := dates.Today()
	table, err := client.FetchPrices(ctx, today, cnfg.GetPrefetchDays(), nil)
	if err != nil {
		logger.Error("prefetch task error, fetching prices", slog.Any("error", err))
		return
	}

	if feed != nil {
		todayTable := make(types.PriceTable, 0, len(table))
		for _, rec := range table {
			if dates.FromTime(rec.TimeStart) == today {
				todayTable = append(todayTable, rec)
			}
		}
		for _, region := range types.AllRegions() {
			if err := feed.PublishDayPrices(region, todayTable); err != nil {
				logger.Error("prefetch task error, publishing prices",
					slog.String("region", string(region)), slog.Any("error", err))
			}
		}
	}

	logger.Info("prefetch task done", slog.Int("noOfRows", len(table)))
}

func needImmediatePrefetch(s *store.Store, cnfg config.AppConfigPrices) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := strompris.DayURL(cnfg.GetBaseUrl(), dates.Today(), types.RegionOslo)
	_, ok, err := s.GetCachedResponse(ctx, url)
	return err != nil || !ok
}
