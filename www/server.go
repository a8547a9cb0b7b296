package www

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/angas/strompris-go/config"
	"github.com/angas/strompris-go/store"
	"github.com/angas/strompris-go/strompris"
)

type Server struct {
	logger  *slog.Logger
	config  config.AppConfigApi
	client  *strompris.Client
	store   *store.Store
	hub     *Hub
	tm      *TemplateManager
	version string
}

//go:embed static
var embeddedStaticDir embed.FS

func StartServer(client *strompris.Client, s *store.Store, cnfg config.AppConfigApi, version string) *Server {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, cnfg.WwwDir)
	if err != nil {
		logger.Error("template manager initialization error", slog.Any("error", err))
	}

	srv := &Server{
		logger:  logger,
		config:  cnfg,
		client:  client,
		store:   s,
		hub:     NewHub(logger),
		tm:      tm,
		version: version,
	}

	go srv.hub.Run()

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			srv.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	http.Handle("/static/", http.StripPrefix("/static/", staticFilesHandler(cnfg.WwwDir)))

	http.Handle("/", logReqMW(NewIndexHandler(
		logger.With(slog.String("handler", "index")),
		srv.tm)))

	http.Handle("/activity", logReqMW(NewActivityHandler(
		logger.With(slog.String("handler", "activity")),
		srv.tm)))

	http.Handle("/plot_prices.json", logReqMW(NewPlotPricesHandler(
		logger.With(slog.String("handler", "plot_prices")),
		srv.client)))

	http.Handle("/plot_activity.json", logReqMW(NewPlotActivityHandler(
		logger.With(slog.String("handler", "plot_activity")),
		srv.client)))

	http.Handle("/api/regions", logReqMW(NewRegionsHandler(
		logger.With(slog.String("handler", "regions")))))

	http.Handle("/api/activities", logReqMW(NewActivitiesHandler(
		logger.With(slog.String("handler", "activities")))))

	http.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		srv.store,
		srv.tm)))

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(srv.hub, w, r, name)
		if err != nil {
			srv.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		srv.hub.Register <- client
		go client.WritePump()
	})

	return srv
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.Port)
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	// Keeping state to avoid spamming logs
	tickerErrorState := false

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			err := srv.Shutdown(shutdownCtx)
			if err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return

		case <-ticker.C:
			data, err := s.currentPrices(ctx)
			if err != nil {
				if !tickerErrorState {
					tickerErrorState = true
					s.logger.Warn("failed to get current prices", slog.Any("error", err))
				}
				continue
			}
			tickerErrorState = false

			buf, err := s.tm.Execute("current_prices.html", data)
			if err != nil {
				s.logger.Error("template execution failed", slog.Any("error", err))
				continue
			}

			s.hub.Broadcast <- buf.Bytes()
		}
	}
}

func staticFilesHandler(extDir *string) http.Handler {
	if extDir != nil && *extDir != "" {
		staticDir := path.Join(*extDir, "static")
		if _, err := os.Stat(staticDir); err == nil {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		log.Panic(err)
	}
	return http.FileServer(http.FS(fsys))
}
