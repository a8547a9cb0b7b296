package www

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/angas/strompris-go/types"
)

// NewRegionsHandler exposes the static region-code to name table for UI
// population.
func NewRegionsHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		regions := make(map[types.Region]string)
		for _, region := range types.AllRegions() {
			regions[region] = region.Name()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(regions); err != nil {
			logger.Error("handling regions request", slog.Any("error", err))
			http.Error(w, "unable to encode regions", http.StatusInternalServerError)
		}
	}
}

func NewActivitiesHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.AllActivities()); err != nil {
			logger.Error("handling activities request", slog.Any("error", err))
			http.Error(w, "unable to encode activities", http.StatusInternalServerError)
		}
	}
}
