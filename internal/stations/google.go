package stations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/transit-insights/internal/models"
	"googlemaps.github.io/maps"
)

// DefaultPageDelay is the pause between paginated Places requests. The Places
// API rejects a follow-up request issued too soon after a page token was
// handed out.
const DefaultPageDelay = 2 * time.Second

// PlacesAPIClient defines the subset of the Google Maps client used by the
// station source. This allows for easy mocking in tests.
type PlacesAPIClient interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
}

// GoogleSource discovers bus stations through the Google Places Nearby Search
// API and enriches each station with a per-place detail lookup.
type GoogleSource struct {
	client    PlacesAPIClient // client is the Google Maps API client
	log       *slog.Logger    // log is the logger for logging operations
	pageDelay time.Duration   // pageDelay is the pause between page requests
}

// detailFields is the field mask requested from the Place Details API for each
// discovered station.
var detailFields = []maps.PlaceDetailsFieldMask{
	maps.PlaceDetailsFieldMaskName,
	maps.PlaceDetailsFieldMaskFormattedAddress,
	maps.PlaceDetailsFieldMaskRatings,
	maps.PlaceDetailsFieldMaskUserRatingsTotal,
	maps.PlaceDetailsFieldMaskFormattedPhoneNumber,
	maps.PlaceDetailsFieldMaskOpeningHours,
}

// NewGoogleSource creates a GoogleSource from an initialized Places client.
// A non-positive pageDelay falls back to DefaultPageDelay.
func NewGoogleSource(client PlacesAPIClient, log *slog.Logger, pageDelay time.Duration) *GoogleSource {
	if pageDelay <= 0 {
		pageDelay = DefaultPageDelay
	}

	return &GoogleSource{client: client, log: log, pageDelay: pageDelay}
}

// Nearby retrieves all bus stations within radiusMeters of center, following
// the continuation token across result pages. A failed page request aborts the
// fetch; a failed detail lookup only degrades that station's metadata.
func (gs *GoogleSource) Nearby(
	ctx context.Context,
	center models.Coordinates,
	radiusMeters uint,
) ([]models.Station, error) {
	gs.log.DebugContext(ctx, "Searching for bus stations",
		"lat", center.Latitude, "lng", center.Longitude, "radius", radiusMeters)

	var found []models.Station
	pageToken := ""

	for {
		req := &maps.NearbySearchRequest{
			Location:  &maps.LatLng{Lat: center.Latitude, Lng: center.Longitude},
			Radius:    radiusMeters,
			Type:      maps.PlaceTypeBusStation,
			PageToken: pageToken,
		}

		resp, err := gs.client.NearbySearch(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch nearby bus stations: %w", err)
		}

		for _, place := range resp.Results {
			found = append(found, gs.buildStation(ctx, place))
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}

		gs.log.DebugContext(ctx, "Waiting before requesting next result page", "delay", gs.pageDelay)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("station fetch interrupted: %w", ctx.Err())
		case <-time.After(gs.pageDelay):
		}
	}

	gs.log.InfoContext(ctx, "Station search finished", "stations", len(found))

	return found, nil
}

// buildStation converts a search result into a Station, attaching the optional
// metadata from the detail lookup when it succeeds.
func (gs *GoogleSource) buildStation(ctx context.Context, place maps.PlacesSearchResult) models.Station {
	station := models.Station{
		Coordinates: models.Coordinates{
			Latitude:  place.Geometry.Location.Lat,
			Longitude: place.Geometry.Location.Lng,
		},
		Name:    place.Name,
		PlaceID: place.PlaceID,
	}
	if station.Name == "" {
		station.Name = "Unknown"
	}

	details, err := gs.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: place.PlaceID,
		Fields:  detailFields,
	})
	if err != nil {
		gs.log.WarnContext(ctx, "Failed to fetch place details", "place_id", place.PlaceID, "error", err)
		return station
	}

	if details.FormattedAddress != "" {
		station.Address = &details.FormattedAddress
	}
	if details.Rating != 0 {
		rating := float64(details.Rating)
		station.Rating = &rating
	}
	if details.UserRatingsTotal != 0 {
		station.RatingCount = &details.UserRatingsTotal
	}
	if details.FormattedPhoneNumber != "" {
		station.Phone = &details.FormattedPhoneNumber
	}
	if details.OpeningHours != nil {
		station.WeeklyHours = details.OpeningHours.WeekdayText
	}

	return station
}
