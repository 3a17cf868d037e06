package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Houeta/transit-insights/internal/analysis"
	"github.com/Houeta/transit-insights/internal/config"
	"github.com/Houeta/transit-insights/internal/listings"
	"github.com/Houeta/transit-insights/internal/metrics"
	"github.com/Houeta/transit-insights/internal/report"
	"github.com/Houeta/transit-insights/internal/service"
	"github.com/Houeta/transit-insights/internal/stations"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows the paginated station fetch to be interrupted cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for application metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Load the listing dataset. A missing schema or an empty dataset is fatal:
	// there is nothing meaningful to aggregate without listings.
	store, err := listings.FromCSV(cfg.DatasetPath, logger)
	if err != nil {
		log.Fatalf("Failed to load listing dataset: %v", err)
	}
	appMetrics.ListingRowsSkipped.Add(float64(store.Skipped()))

	// Create the station source using the factory pattern based on configuration.
	// This allows runtime selection between providers (Google Places, Overpass).
	source, err := stations.NewSource(stations.SourceConfig{
		Type:      stations.SourceType(cfg.SourceType),
		APIKey:    cfg.APIKey,
		PageDelay: cfg.PageDelay,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create station source: %v", err)
	}

	logger.InfoContext(ctx, "Station source initialized", "type", cfg.SourceType)

	// Init the analysis service with the aggregation core and report boundary.
	analysisService := service.NewAnalysisService(
		logger,
		source,
		cfg.SourceType, // Source name for metrics
		analysis.New(store),
		appMetrics,
		report.NewWriter(os.Stdout),
		cfg.Center,
		cfg.RadiusMeters,
		cfg.Bands,
	)

	// Start the monitoring server in a goroutine so metrics are scrapeable
	// during long paginated fetches.
	go startMonitoringServer(ctx, logger, reg, cfg.Port)

	logger.InfoContext(ctx, "Application started.")

	if err = analysisService.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "Analysis run failed", "error", err)
		stop()
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Analysis completed.")
}

// startMonitoringServer starts an HTTP server that provides health check and
// metrics endpoints. It listens on the specified port and logs the server's
// status and any errors encountered.
func startMonitoringServer(ctx context.Context, log *slog.Logger, reg *prometheus.Registry, port int) {
	http.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
		if _, err := writer.Write([]byte("OK")); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      http.DefaultServeMux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
