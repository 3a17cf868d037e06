package stations

import (
	"context"

	"github.com/Houeta/transit-insights/internal/models"
)

// Source is an interface that defines a method for discovering bus stations.
// The Nearby method takes a context, a center coordinate, and a search radius
// in meters, and returns every station found within that radius, fully
// paginated, along with an error if the fetch fails mid-way.
type Source interface {
	Nearby(ctx context.Context, center models.Coordinates, radiusMeters uint) ([]models.Station, error)
}
