package www

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/angas/strompris-go/chart"
	"github.com/angas/strompris-go/dates"
	"github.com/angas/strompris-go/strompris"
	"github.com/angas/strompris-go/types"
)

// NewPlotPricesHandler serves the layered raw/daily-average chart for a
// date range and region set as Vega-Lite JSON.
func NewPlotPricesHandler(logger *slog.Logger, client *strompris.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		end, err := dateOrDefault(r.URL, "end", dates.Today())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		days := intOrDefault(r.URL, "days", 7)
		regions := regionsFromQuery(r.URL)

		table, err := client.FetchPrices(r.Context(), end, days, regions)
		if err != nil {
			writeFetchError(logger, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(chart.PricesWithDailyAverage(table)); err != nil {
			logger.Error("handling plot_prices request", slog.Any("error", err))
			http.Error(w, "unable to encode chart", http.StatusInternalServerError)
		}
	}
}

// NewPlotActivityHandler serves a single-day activity cost chart for
// one region, one activity and one duration as Vega-Lite JSON.
func NewPlotActivityHandler(logger *slog.Logger, client *strompris.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		region := types.Region(stringOrDefault(r.URL, "region", string(types.RegionOslo)))
		activity := stringOrDefault(r.URL, "activity", "shower")
		minutes := floatOrDefault(r.URL, "minutes", 10)

		table, err := client.FetchDayPrices(r.Context(), dates.Today(), region)
		if err != nil {
			writeFetchError(logger, w, err)
			return
		}

		spec, err := chart.ActivityCosts(table, activity, minutes)
		if err != nil {
			var unknownActivity *chart.UnknownActivityError
			var invalidDuration *chart.InvalidDurationError
			if errors.As(err, &unknownActivity) || errors.As(err, &invalidDuration) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			logger.Error("handling plot_activity request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(spec); err != nil {
			logger.Error("handling plot_activity request", slog.Any("error", err))
			http.Error(w, "unable to encode chart", http.StatusInternalServerError)
		}
	}
}

// writeFetchError maps the client's error taxonomy onto HTTP statuses:
// caller input errors get 400, upstream trouble gets 502.
func writeFetchError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var invalidDate *strompris.InvalidDateError
	var unknownRegion *strompris.UnknownRegionError
	var unavailable *strompris.UpstreamUnavailableError

	switch {
	case errors.As(err, &invalidDate) || errors.As(err, &unknownRegion):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &unavailable):
		logger.Warn("upstream unavailable", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		logger.Error("price fetch failed", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
