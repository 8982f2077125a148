package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tornado-product/fusion-media-provider/api"
	"github.com/tornado-product/fusion-media-provider/internal/app"
	"github.com/tornado-product/fusion-media-provider/internal/infrastructure"
	"github.com/tornado-product/fusion-media-provider/pkg/logger"
)

var configPath = flag.String("config", "", "Path to config file")

func main() {
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting fusion-media-provider server",
		zap.String("version", "1.0.0"),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port))

	providers, err := infrastructure.ConfiguredProviders(config.Providers)
	if err != nil {
		log.Fatal("Failed to initialize providers", zap.Error(err))
	}
	if len(providers) == 0 {
		log.Warn("No providers configured, search requests will fail")
	}

	aggregator := app.NewAggregator(log)
	for _, provider := range providers {
		aggregator.Register(provider)
		log.Info("Provider registered", zap.String("provider", provider.Name()))
	}

	downloader := app.NewDownloader(aggregator, config.Download, log)

	router := api.SetupRouter(aggregator, downloader, log)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
