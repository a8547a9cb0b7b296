package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/angas/strompris-go/config"
	"github.com/angas/strompris-go/dates"
	"github.com/angas/strompris-go/httpcache"
	"github.com/angas/strompris-go/store"
	"github.com/angas/strompris-go/strompris"
	"github.com/angas/strompris-go/types"
	"github.com/lmittmann/tint"
)

func main() {
	w := os.Stdout
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelWarn,
			TimeFormat: time.RFC3339Nano,
		}),
	))

	configPath := flag.String("config", "", "path to config file")
	endStr := flag.String("end", "", "end date (YYYY-MM-DD), defaults to today")
	days := flag.Int("days", 7, "number of days up to and including the end date")
	regionsStr := flag.String("regions", "", "comma separated region codes, defaults to all")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	end := dates.Today()
	if *endStr != "" {
		end, err = dates.Parse(*endStr)
		if err != nil {
			panic(err)
		}
	}

	var regions []types.Region
	if *regionsStr != "" {
		for _, code := range strings.Split(*regionsStr, ",") {
			regions = append(regions, types.Region(strings.TrimSpace(code)))
		}
	}

	ctx := context.Background()
	s, err := store.New(ctx, cnfg.Store.Path)
	if err != nil {
		panic(err)
	}
	defer s.Close()

	client := strompris.New(cnfg.Prices.GetBaseUrl(), httpcache.New(s, http.DefaultTransport))

	table, err := client.FetchPrices(ctx, end, *days, regions)
	if err != nil {
		panic(err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME START\tREGION\tNAME\tNOK/kWh")
	for _, rec := range table {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.4f\n",
			rec.TimeStart.Format("2006-01-02 15:04"),
			rec.Region,
			rec.RegionName,
			rec.Price)
	}
	tw.Flush()
}
