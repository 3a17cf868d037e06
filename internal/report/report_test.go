package report_test

import (
	"bytes"
	"testing"

	"github.com/Houeta/transit-insights/internal/models"
	"github.com/Houeta/transit-insights/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStation(t *testing.T) {
	station := models.Station{
		Name:        "Plaza Mayor",
		PlaceID:     "stop-1",
		Coordinates: models.Coordinates{Latitude: 41.652251, Longitude: -4.724532},
	}

	t.Run("prints per-band sections with grouped currency", func(t *testing.T) {
		var buf bytes.Buffer
		writer := report.NewWriter(&buf)

		stats := map[float64]models.BandStats{
			500:  {Count: 1, AvgPrice: 100000, AvgPricePerArea: 2000},
			2000: {Count: 2, AvgPrice: 200000, AvgPricePerArea: 2500},
		}

		err := writer.WriteStation(station, []float64{500, 2000}, stats)

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "Plaza Mayor")
		assert.Contains(t, output, "Location: (41.652251, -4.724532)")
		assert.Contains(t, output, "Properties within 500m:")
		assert.Contains(t, output, "Count: 1")
		assert.Contains(t, output, "Average price: €100,000.00")
		assert.Contains(t, output, "Average price/m²: €2,000.00")
		assert.Contains(t, output, "Properties within 2000m:")
		assert.Contains(t, output, "Average price: €200,000.00")
		assert.Contains(t, output, "--------------------------------------------------")
	})

	t.Run("omits bands with no listings", func(t *testing.T) {
		var buf bytes.Buffer
		writer := report.NewWriter(&buf)

		stats := map[float64]models.BandStats{
			500:  {},
			1000: {Count: 1, AvgPrice: 100000, AvgPricePerArea: 2000},
		}

		err := writer.WriteStation(station, []float64{500, 1000}, stats)

		require.NoError(t, err)
		output := buf.String()
		assert.NotContains(t, output, "Properties within 500m:")
		assert.Contains(t, output, "Properties within 1000m:")
	})

	t.Run("prints optional metadata only when present", func(t *testing.T) {
		var buf bytes.Buffer
		writer := report.NewWriter(&buf)

		address := "Plaza Mayor, 1, Valladolid"
		rating := 4.3
		ratingCount := 128
		enriched := station
		enriched.Address = &address
		enriched.Rating = &rating
		enriched.RatingCount = &ratingCount

		err := writer.WriteStation(enriched, nil, nil)

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "Address: Plaza Mayor, 1, Valladolid")
		assert.Contains(t, output, "Rating: 4.3 (128 ratings)")
	})

	t.Run("bare station prints no metadata lines", func(t *testing.T) {
		var buf bytes.Buffer
		writer := report.NewWriter(&buf)

		err := writer.WriteStation(station, nil, nil)

		require.NoError(t, err)
		output := buf.String()
		assert.NotContains(t, output, "Address:")
		assert.NotContains(t, output, "Rating:")
	})
}
