package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"webwatch/internal/common"
	"webwatch/internal/config"
	"webwatch/internal/datastore"
	"webwatch/internal/fetcher"
	"webwatch/internal/logger"
	"webwatch/internal/monitor"
	"webwatch/internal/notifier"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configPathAlias := flag.String("c", "", "Alias for -config")
	flag.Parse()

	if *configPath == "" && *configPathAlias != "" {
		*configPath = *configPathAlias
	}

	gCfg, err := config.LoadGlobalConfig(*configPath)
	if err != nil {
		log.Fatalf("[FATAL] Could not load configuration: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}
	zLogger.Info().Msg("Logger initialized successfully.")

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}
	zLogger.Info().Msg("Configuration validated successfully.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := datastore.NewSnapshotStore(gCfg.StorageConfig.DatabasePath, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize snapshot store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			zLogger.Warn().Err(err).Msg("Error closing snapshot store")
		}
	}()

	if err := store.Seed(ctx, gCfg.MonitorConfig.WatchURLs); err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to seed watch URLs")
	}

	clientCfg := common.DefaultHTTPClientConfig()
	clientCfg.Timeout = gCfg.MonitorConfig.HTTPTimeout()
	httpClient := common.NewHTTPClient(clientCfg, zLogger)

	pageFetcher := fetcher.NewFetcher(httpClient, zLogger, &gCfg.MonitorConfig)
	emailNotifier := notifier.NewEmailNotifier(&gCfg.EmailConfig, zLogger)
	service := monitor.NewService(&gCfg.MonitorConfig, store, pageFetcher, emailNotifier, zLogger)
	scheduler := monitor.NewScheduler(&gCfg.MonitorConfig, service, zLogger)

	if err := scheduler.Run(ctx); err != nil {
		zLogger.Fatal().Err(err).Msg("Monitoring loop terminated")
	}

	zLogger.Info().Msg("Shutdown complete.")
	fmt.Println("\nMonitoring stopped.")
}
