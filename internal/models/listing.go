package models

// Listing represents a validated commercial property record loaded from the
// listing dataset. Listings are immutable once loaded.
type Listing struct {
	Coordinates Coordinates // Coordinates is the property location.
	Price       float64     // Price in currency units.
	Size        float64     // Size in area units.
	Floor       string      // Floor label, normalized to lowercase.
	Rooms       *int        // Rooms is the room count, if the dataset provides one.
	Bathrooms   *int        // Bathrooms is the bathroom count, if the dataset provides one.
	PriceByArea float64     // PriceByArea is the price per area unit.
	URL         string      // URL points at the source listing.
}
