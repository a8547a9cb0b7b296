package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/angas/strompris-go/config"
	"github.com/angas/strompris-go/httpcache"
	"github.com/angas/strompris-go/logging"
	"github.com/angas/strompris-go/mqttfeed"
	"github.com/angas/strompris-go/store"
	"github.com/angas/strompris-go/strompris"
	"github.com/angas/strompris-go/task"
	"github.com/angas/strompris-go/www"
	"github.com/lmittmann/tint"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("strompris is starting...", slog.String("version", Version))

	s, err := store.New(ctx, cnfg.Store.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to open store: %v", err))
	}
	defer s.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewStoreHandler(s, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log store operations into the store itself
	s.SetLogger(logger.With("module", "store"))

	client := strompris.New(cnfg.Prices.GetBaseUrl(), httpcache.New(s, http.DefaultTransport))

	var feed *mqttfeed.Feed
	if cnfg.Mqtt.Enabled() {
		feed = mqttfeed.New(
			cnfg.Mqtt.Host,
			cnfg.Mqtt.Port,
			cnfg.Mqtt.Username,
			cnfg.Mqtt.Password,
			cnfg.Mqtt.GetTopicPrefix())
		if isDevMode() {
			logger.Info("dev mode, skipping mqtt connection")
			feed = nil
		} else {
			if err := feed.Connect(); err != nil {
				panic(fmt.Sprintf("mqtt connection error: %v", err))
			}
			defer feed.Disconnect()
		}
	}

	tasks := task.NewTasks(client, s, feed, cnfg)
	if isDevMode() {
		logger.Info("dev mode, skipping task scheduling")
	} else {
		tasks.Run()
		defer tasks.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("main context done")
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server := www.StartServer(client, s, cnfg.Api, Version)
	server.Run(ctx)
}

func isDevMode() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "development")
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}
	if syncer, ok := logger.Handler().(interface{ Sync() error }); ok {
		if syncErr := syncer.Sync(); syncErr != nil {
			logger.Error("failed to flush logger", slog.Any("error", syncErr))
		}
	}

	time.Sleep(2 * time.Second)
	os.Exit(1)
}
