package models

// Coordinates represents a geographical point defined by its latitude and longitude,
// both in decimal degrees.
type Coordinates struct {
	Latitude  float64 // Latitude of the geographical point, in [-90, 90].
	Longitude float64 // Longitude of the geographical point, in [-180, 180].
}
