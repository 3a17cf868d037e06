package geo_test

import (
	"testing"

	"github.com/Houeta/transit-insights/internal/geo"
	"github.com/Houeta/transit-insights/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_Symmetry(t *testing.T) {
	valladolid := models.Coordinates{Latitude: 41.652251, Longitude: -4.724532}
	madrid := models.Coordinates{Latitude: 40.416775, Longitude: -3.703790}

	assert.InDelta(t, geo.Distance(valladolid, madrid), geo.Distance(madrid, valladolid), 1e-9)
}

func TestDistance_ZeroForIdenticalPoints(t *testing.T) {
	point := models.Coordinates{Latitude: 41.652251, Longitude: -4.724532}

	assert.Zero(t, geo.Distance(point, point))
}

func TestDistance_KnownSeparation(t *testing.T) {
	valladolid := models.Coordinates{Latitude: 41.652251, Longitude: -4.724532}
	madrid := models.Coordinates{Latitude: 40.416775, Longitude: -3.703790}

	// Valladolid to Madrid is roughly 161 km as the crow flies.
	distance := geo.Distance(valladolid, madrid)
	require.Positive(t, distance)
	assert.InEpsilon(t, 161000, distance, 0.02)
}

func TestDistance_OneDegreeOfLatitude(t *testing.T) {
	a := models.Coordinates{Latitude: 0, Longitude: 0}
	b := models.Coordinates{Latitude: 1, Longitude: 0}

	// One degree of latitude on the spherical model is pi*R/180 meters.
	assert.InEpsilon(t, 111194.93, geo.Distance(a, b), 1e-4)
}

func TestDistance_TriangleInequality(t *testing.T) {
	triples := [][3]models.Coordinates{
		{
			{Latitude: 41.652251, Longitude: -4.724532},
			{Latitude: 40.416775, Longitude: -3.703790},
			{Latitude: 41.385063, Longitude: 2.173404},
		},
		{
			{Latitude: 0, Longitude: 0},
			{Latitude: 10, Longitude: 10},
			{Latitude: -10, Longitude: 20},
		},
		{
			{Latitude: 89.9, Longitude: 0},
			{Latitude: 89.9, Longitude: 179},
			{Latitude: -89.9, Longitude: 0},
		},
	}

	const epsilon = 1e-6
	for _, triple := range triples {
		a, b, c := triple[0], triple[1], triple[2]
		assert.LessOrEqual(t, geo.Distance(a, c), geo.Distance(a, b)+geo.Distance(b, c)+epsilon)
	}
}

func TestDistance_NonNegative(t *testing.T) {
	points := []models.Coordinates{
		{Latitude: 41.652251, Longitude: -4.724532},
		{Latitude: -33.868820, Longitude: 151.209290},
		{Latitude: 90, Longitude: 0},
		{Latitude: -90, Longitude: 180},
	}

	for _, a := range points {
		for _, b := range points {
			assert.GreaterOrEqual(t, geo.Distance(a, b), 0.0)
		}
	}
}
