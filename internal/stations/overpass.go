package stations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Houeta/transit-insights/internal/models"
)

// OverpassSource discovers bus stations through the OpenStreetMap Overpass
// API. This is a free service that needs no API key; it yields stations
// without the optional metadata a commercial provider can supply.
type OverpassSource struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the Overpass API interpreter
	log     *slog.Logger // Logger for logging operations
	// userAgent identifies the application per OSM usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// overpassResponse represents the JSON response from the Overpass API.
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// overpassElement is a single OSM node in an Overpass response.
type overpassElement struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// ErrOverpassDecode is returned when the Overpass API responds with a payload
// that cannot be decoded.
var ErrOverpassDecode = errors.New("failed to decode overpass response")

// NewOverpassSource creates an Overpass station source against the public
// Overpass API endpoint.
func NewOverpassSource(log *slog.Logger) *OverpassSource {
	const timeout = 30
	return &OverpassSource{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL:   "https://overpass-api.de/api/interpreter",
		log:       log,
		userAgent: "Transit-Insights/1.0 (https://github.com/Houeta/transit-insights)",
	}
}

// NewOverpassSourceWithClient creates an Overpass source with a custom HTTP
// client. Useful for testing with mocked HTTP clients.
func NewOverpassSourceWithClient(client HTTPClient, log *slog.Logger) *OverpassSource {
	return &OverpassSource{
		client:    client,
		baseURL:   "https://overpass-api.de/api/interpreter",
		log:       log,
		userAgent: "Transit-Insights/1.0 (https://github.com/Houeta/transit-insights)",
	}
}

// Nearby retrieves all highway=bus_stop nodes within radiusMeters of center.
// The Overpass API returns the full result in one response, so no pagination
// is involved; an empty element list simply yields an empty slice.
func (ov *OverpassSource) Nearby(
	ctx context.Context,
	center models.Coordinates,
	radiusMeters uint,
) ([]models.Station, error) {
	query := fmt.Sprintf(
		`[out:json];node(around:%d,%f,%f)["highway"="bus_stop"];out body;`,
		radiusMeters, center.Latitude, center.Longitude,
	)

	reqURL, err := url.Parse(ov.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	values := reqURL.Query()
	values.Set("data", query)
	reqURL.RawQuery = values.Encode()

	ov.log.DebugContext(ctx, "Overpass request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", ov.userAgent)

	resp, err := ov.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		ov.log.ErrorContext(ctx, "Overpass API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("overpass API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var decoded overpassResponse
	if err = json.Unmarshal(body, &decoded); err != nil {
		ov.log.ErrorContext(ctx, "Failed to parse Overpass response", "error", err, "body", string(body))
		return nil, fmt.Errorf("%w: %w", ErrOverpassDecode, err)
	}

	stations := make([]models.Station, 0, len(decoded.Elements))
	for _, element := range decoded.Elements {
		name := element.Tags["name"]
		if name == "" {
			name = "Unknown"
		}
		stations = append(stations, models.Station{
			Coordinates: models.Coordinates{Latitude: element.Lat, Longitude: element.Lon},
			Name:        name,
			PlaceID:     fmt.Sprintf("node/%d", element.ID),
		})
	}

	ov.log.InfoContext(ctx, "Overpass station search finished", "stations", len(stations))

	return stations, nil
}
