package www

import (
	"log/slog"
	"net/http"

	"github.com/angas/strompris-go/dates"
	"github.com/angas/strompris-go/types"
)

type regionOption struct {
	Code types.Region
	Name string
}

func regionOptions() []regionOption {
	var options []regionOption
	for _, r := range types.AllRegions() {
		options = append(options, regionOption{Code: r, Name: r.Name()})
	}
	return options
}

func NewIndexHandler(logger *slog.Logger, tm *TemplateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html")

		data := struct {
			Regions []regionOption
			Today   string
		}{
			Regions: regionOptions(),
			Today:   dates.Today().String(),
		}

		if err := tm.ExecuteToWriter("strompris.html", data, &w); err != nil {
			logger.Error("handling index request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func NewActivityHandler(logger *slog.Logger, tm *TemplateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html")

		data := struct {
			Regions    []regionOption
			Activities []types.Activity
			Today      string
		}{
			Regions:    regionOptions(),
			Activities: types.AllActivities(),
			Today:      dates.Today().String(),
		}

		if err := tm.ExecuteToWriter("activity.html", data, &w); err != nil {
			logger.Error("handling activity request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
