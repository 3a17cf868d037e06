package analysis

import (
	"github.com/Houeta/transit-insights/internal/models"
)

// Store is the subset of the listing store the aggregator queries.
type Store interface {
	Within(center models.Coordinates, radiusMeters float64) []models.Listing
}

// Aggregator computes per-band aggregate statistics for the listings around a
// station. It holds no state beyond the store reference; every call is a pure
// function of the station and the requested bands.
type Aggregator struct {
	store Store
}

// New creates an Aggregator backed by the given listing store.
func New(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// Aggregate computes the listing count, average price, and average
// price-per-area for every requested distance band around the station.
// Bands are cumulative: a larger band contains everything a smaller one does.
// An empty band slice yields an empty map. Empty bands report zero averages
// alongside a zero count; no rounding is applied.
func (a *Aggregator) Aggregate(station models.Station, bands []float64) map[float64]models.BandStats {
	stats := make(map[float64]models.BandStats, len(bands))

	for _, band := range bands {
		nearby := a.store.Within(station.Coordinates, band)
		if len(nearby) == 0 {
			stats[band] = models.BandStats{}
			continue
		}

		var priceSum, pricePerAreaSum float64
		for _, listing := range nearby {
			priceSum += listing.Price
			pricePerAreaSum += listing.PriceByArea
		}

		count := float64(len(nearby))
		stats[band] = models.BandStats{
			Count:           len(nearby),
			AvgPrice:        priceSum / count,
			AvgPricePerArea: pricePerAreaSum / count,
		}
	}

	return stats
}
