package models

// Station represents a public-transit bus station produced by a station source.
// The metadata fields come from an optional per-station detail lookup and are
// nil when the lookup failed or the source does not provide them.
type Station struct {
	Coordinates Coordinates // Coordinates is the station location.
	Name        string      // Name is the display name of the station.
	PlaceID     string      // PlaceID is the stable identifier assigned by the source.
	Address     *string     // Address is the formatted street address, if known.
	Rating      *float64    // Rating is the average user rating, if any.
	RatingCount *int        // RatingCount is the number of user ratings behind Rating.
	Phone       *string     // Phone is the formatted phone number, if any.
	WeeklyHours []string    // WeeklyHours holds the opening hours per weekday, if published.
}
