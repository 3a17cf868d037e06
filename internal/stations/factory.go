package stations

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"googlemaps.github.io/maps"
)

// SourceType represents the type of station source.
type SourceType string

const (
	// SourceTypeGoogle represents the Google Places station source.
	SourceTypeGoogle SourceType = "google"
	// SourceTypeOverpass represents the OpenStreetMap Overpass station source.
	SourceTypeOverpass SourceType = "overpass"
)

// SourceConfig holds configuration for creating a station source.
type SourceConfig struct {
	Type      SourceType    // Type of source to create
	APIKey    string        // API key (used by the Google source)
	PageDelay time.Duration // Pause between paginated requests (used by the Google source)
	Logger    *slog.Logger  // Logger for the source
}

// NewSource creates a station source based on the provided configuration.
// It applies the Factory pattern to decouple source instantiation from the
// analysis logic.
//
// Supported source types:
// - "google": Google Places Nearby Search (requires API key)
// - "overpass": OpenStreetMap Overpass API (free, no API key required)
//
// Returns an error if the source type is unsupported or if creation fails.
func NewSource(config SourceConfig) (Source, error) {
	switch config.Type {
	case SourceTypeGoogle:
		return newGoogleSource(config)
	case SourceTypeOverpass:
		return NewOverpassSource(config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported station source type: %s", config.Type)
	}
}

// newGoogleSource creates a Google Places station source.
func newGoogleSource(config SourceConfig) (Source, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for the Google Places source")
	}

	client, err := maps.NewClient(maps.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleSource(client, config.Logger, config.PageDelay), nil
}
