package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/transit-insights/internal/metrics"
	"github.com/Houeta/transit-insights/internal/models"
	"github.com/Houeta/transit-insights/internal/report"
	"github.com/Houeta/transit-insights/internal/stations"
)

// Aggregator computes the per-band statistics for one station.
type Aggregator interface {
	Aggregate(station models.Station, bands []float64) map[float64]models.BandStats
}

// AnalysisService drives one analysis run: it fetches the stations around the
// configured center, aggregates the listings per distance band for each one,
// and renders the report.
type AnalysisService struct {
	log        *slog.Logger       // Logger for logging service activities
	source     stations.Source    // Station source boundary
	sourceName string             // Name of the source for metrics labeling
	aggregator Aggregator         // Proximity aggregation core
	metrics    *metrics.Metrics   // Metrics for tracking service performance
	reporter   *report.Writer     // Report output boundary
	center     models.Coordinates // Center of the station search
	radius     uint               // Station search radius in meters
	bands      []float64          // Distance bands evaluated per station
}

// NewAnalysisService creates a new instance of AnalysisService. It takes a
// logger, the station source with its name for metrics, the aggregator, the
// metrics, the report writer, and the search parameters, and returns a pointer
// to the newly created AnalysisService.
func NewAnalysisService(
	log *slog.Logger,
	source stations.Source,
	sourceName string,
	aggregator Aggregator,
	metrics *metrics.Metrics,
	reporter *report.Writer,
	center models.Coordinates,
	radius uint,
	bands []float64,
) *AnalysisService {
	return &AnalysisService{
		log:        log,
		source:     source,
		sourceName: sourceName,
		aggregator: aggregator,
		metrics:    metrics,
		reporter:   reporter,
		center:     center,
		radius:     radius,
		bands:      bands,
	}
}

// Run performs a single analysis pass. A station-source failure propagates;
// once stations are in hand the aggregation itself cannot fail, so the only
// remaining errors are report-writing ones.
func (as *AnalysisService) Run(ctx context.Context) error {
	as.log.InfoContext(ctx, "Fetching stations",
		"source", as.sourceName,
		"lat", as.center.Latitude,
		"lng", as.center.Longitude,
		"radius", as.radius,
	)

	start := time.Now()
	found, err := as.source.Nearby(ctx, as.center, as.radius)
	as.metrics.FetchSeconds.WithLabelValues(as.sourceName).Observe(time.Since(start).Seconds())
	if err != nil {
		as.metrics.SourceErrors.Inc()
		return fmt.Errorf("failed to fetch stations: %w", err)
	}

	if len(found) == 0 {
		as.log.InfoContext(ctx, "No stations found within the search radius.")
		return nil
	}

	as.log.InfoContext(ctx, "Analyzing stations", "count", len(found), "bands", as.bands)

	for _, station := range found {
		if ctx.Err() != nil {
			return fmt.Errorf("analysis interrupted: %w", ctx.Err())
		}

		stats := as.aggregator.Aggregate(station, as.bands)
		if err = as.reporter.WriteStation(station, as.bands, stats); err != nil {
			as.metrics.StationsProcessed.WithLabelValues("failure").Inc()
			return fmt.Errorf("failed to report station %q: %w", station.PlaceID, err)
		}

		as.metrics.StationsProcessed.WithLabelValues("success").Inc()
		as.log.DebugContext(ctx, "Station analyzed", "station", station.Name, "place_id", station.PlaceID)
	}

	as.log.InfoContext(ctx, "Analysis run finished", "stations", len(found))

	return nil
}
