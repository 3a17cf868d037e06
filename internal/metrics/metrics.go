package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	StationsProcessed  *prometheus.CounterVec
	SourceErrors       prometheus.Counter
	FetchSeconds       *prometheus.HistogramVec
	ListingRowsSkipped prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		StationsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "transit_stations_processed_total",
			Help: "Total number of stations run through the proximity aggregation.",
		}, []string{"status"}),
		SourceErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "transit_station_source_errors_total",
			Help: "Total number of errors received from the station source API.",
		}),
		FetchSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transit_station_fetch_duration_seconds",
			Help:    "Duration of full paginated station fetches from the source.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		ListingRowsSkipped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "transit_listing_rows_skipped_total",
			Help: "Total number of listing dataset rows dropped during loading.",
		}),
	}
}
