package models

// BandStats holds the aggregate listing statistics for a single distance band
// around a station. When Count is zero the averages are reported as zero, so
// consumers must check Count before interpreting them.
type BandStats struct {
	Count           int     // Count is the number of listings within the band.
	AvgPrice        float64 // AvgPrice is the arithmetic mean of listing prices.
	AvgPricePerArea float64 // AvgPricePerArea is the arithmetic mean of price-per-area values.
}
