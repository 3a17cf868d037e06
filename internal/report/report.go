package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Houeta/transit-insights/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// separatorWidth is the width of the dashed line printed after each station block.
const separatorWidth = 50

// Writer renders per-station aggregation results as a human-readable text
// report. Currency amounts are grouped and rounded to two decimals at this
// boundary only; the aggregation core never rounds.
type Writer struct {
	out     io.Writer
	printer *message.Printer
}

// NewWriter creates a report Writer that prints to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{
		out:     out,
		printer: message.NewPrinter(language.English),
	}
}

// WriteStation prints the summary block for a single station: its name,
// location, the optional metadata that is present, and one section per
// distance band that contains at least one listing. Bands are printed in the
// order supplied.
func (w *Writer) WriteStation(
	station models.Station,
	bands []float64,
	stats map[float64]models.BandStats,
) error {
	var block strings.Builder

	fmt.Fprintf(&block, "\n%s\n", station.Name)
	fmt.Fprintf(&block, "Location: (%g, %g)\n", station.Coordinates.Latitude, station.Coordinates.Longitude)
	if station.Address != nil {
		fmt.Fprintf(&block, "Address: %s\n", *station.Address)
	}
	if station.Rating != nil {
		if station.RatingCount != nil {
			fmt.Fprintf(&block, "Rating: %.1f (%d ratings)\n", *station.Rating, *station.RatingCount)
		} else {
			fmt.Fprintf(&block, "Rating: %.1f\n", *station.Rating)
		}
	}

	for _, band := range bands {
		bandStats, ok := stats[band]
		if !ok || bandStats.Count == 0 {
			continue
		}
		fmt.Fprintf(&block, "\nProperties within %gm:\n", band)
		fmt.Fprintf(&block, "  Count: %d\n", bandStats.Count)
		fmt.Fprintf(&block, "  Average price: €%s\n", w.money(bandStats.AvgPrice))
		fmt.Fprintf(&block, "  Average price/m²: €%s\n", w.money(bandStats.AvgPricePerArea))
	}

	fmt.Fprintf(&block, "%s\n", strings.Repeat("-", separatorWidth))

	if _, err := io.WriteString(w.out, block.String()); err != nil {
		return fmt.Errorf("failed to write station report: %w", err)
	}

	return nil
}

// money formats a currency amount with locale grouping and two decimals.
func (w *Writer) money(amount float64) string {
	return w.printer.Sprintf("%v", number.Decimal(
		amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
