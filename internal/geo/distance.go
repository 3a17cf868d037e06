package geo

import (
	"math"

	"github.com/Houeta/transit-insights/internal/models"
)

// EarthRadiusMeters is the mean earth radius of the spherical approximation
// used for all proximity computations.
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters between two points,
// computed with the Haversine formula on a spherical earth.
//
// The result is symmetric, non-negative, and zero only when both points are
// exactly equal. Inputs are expected to be properly ranged decimal degrees;
// longitudes are not wrapped across the antimeridian.
func Distance(a, b models.Coordinates) float64 {
	lat1 := radians(a.Latitude)
	lon1 := radians(a.Longitude)
	lat2 := radians(b.Latitude)
	lon2 := radians(b.Longitude)

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	haversine := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(haversine), math.Sqrt(1-haversine))
}

// radians converts decimal degrees to radians.
func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
