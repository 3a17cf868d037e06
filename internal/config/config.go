package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Houeta/transit-insights/internal/models"
	"github.com/joho/godotenv"
)

// MaxSearchRadiusMeters is the largest station search radius the mapping
// provider accepts.
const MaxSearchRadiusMeters = 50000

// Config holds the configuration settings for the transit-insights run.
// It includes the environment, the monitoring server port, the station source
// selection, the listing dataset path, and the search parameters.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server.
// - SourceType: The type of station source to use (google, overpass).
// - APIKey: The API key for accessing external services (required for Google).
// - DatasetPath: Path to the CSV extract with property listings.
// - Center: The center coordinate of the station search.
// - RadiusMeters: The station search radius in meters, capped by the provider.
// - Bands: The distance bands (meters) evaluated around each station.
// - PageDelay: The pause between paginated station source requests.
type Config struct {
	Env          string             // Env is the current environment: local, development, production.
	Port         int                // Port is the monitoring server port.
	SourceType   string             // SourceType specifies which station source to use.
	APIKey       string             // The API key for accessing external services.
	DatasetPath  string             // Path to the listing dataset CSV.
	Center       models.Coordinates // Center of the station search.
	RadiusMeters uint               // Station search radius in meters.
	Bands        []float64          // Distance bands in meters.
	PageDelay    time.Duration      // Pause between paginated source requests.
}

// MustLoad loads the configuration from the environment (and a .env file when
// present) and returns a Config struct. Invalid values panic: the process has
// no useful way to continue without a usable configuration.
func MustLoad() *Config {
	_ = godotenv.Load()

	healthPort, err := strconv.Atoi(setDefaultEnv("INSIGHTS_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	centerLat, err := strconv.ParseFloat(setDefaultEnv("INSIGHTS_CENTER_LAT", "41.652251"), 64)
	if err != nil {
		panic("failed to parse center latitude from configuration")
	}

	centerLng, err := strconv.ParseFloat(setDefaultEnv("INSIGHTS_CENTER_LNG", "-4.724532"), 64)
	if err != nil {
		panic("failed to parse center longitude from configuration")
	}

	radius, err := strconv.ParseUint(setDefaultEnv("INSIGHTS_RADIUS", "10000"), 10, 32)
	if err != nil {
		panic("failed to parse search radius from configuration")
	}
	if radius > MaxSearchRadiusMeters {
		panic(fmt.Sprintf("search radius exceeds the provider maximum of %d meters", MaxSearchRadiusMeters))
	}

	bands, err := parseBands(setDefaultEnv("INSIGHTS_BANDS", "500,1000,2000"))
	if err != nil {
		panic("failed to parse distance bands from configuration")
	}

	pageDelay, err := time.ParseDuration(setDefaultEnv("INSIGHTS_PAGE_DELAY", "2s"))
	if err != nil {
		panic("failed to parse page delay from configuration")
	}

	return &Config{
		Env:          setDefaultEnv("INSIGHTS_ENV", "production"),
		Port:         healthPort,
		SourceType:   setDefaultEnv("INSIGHTS_SOURCE_TYPE", "google"),
		APIKey:       os.Getenv("INSIGHTS_API_KEY"),
		DatasetPath:  setDefaultEnv("INSIGHTS_DATASET", "idealista_data.csv"),
		Center:       models.Coordinates{Latitude: centerLat, Longitude: centerLng},
		RadiusMeters: uint(radius),
		Bands:        bands,
		PageDelay:    pageDelay,
	}
}

// parseBands parses a comma-separated list of non-negative distance
// thresholds in meters.
func parseBands(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	bands := make([]float64, 0, len(parts))
	for _, part := range parts {
		band, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid distance band %q: %w", part, err)
		}
		if band < 0 {
			return nil, fmt.Errorf("distance band must be non-negative, got %v", band)
		}
		bands = append(bands, band)
	}

	return bands, nil
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
