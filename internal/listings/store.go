package listings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Houeta/transit-insights/internal/geo"
	"github.com/Houeta/transit-insights/internal/models"
)

// RequiredColumns lists the dataset columns a usable listing row must provide.
// Additional columns are ignored.
var RequiredColumns = []string{
	"latitude", "longitude", "price", "size", "floor",
	"rooms", "bathrooms", "priceByArea", "url",
}

// Common errors for listing store construction.
var (
	// ErrMissingColumns is returned when the dataset header lacks required columns.
	ErrMissingColumns = errors.New("dataset is missing required columns")
	// ErrEmptyDataset is returned when no usable listing rows remain after filtering.
	ErrEmptyDataset = errors.New("no listings could be loaded from the dataset")
)

// Store holds the validated set of property listings and answers proximity
// queries against it. The store is immutable after construction.
type Store struct {
	log      *slog.Logger
	listings []models.Listing
	skipped  int
}

// FromCSV reads a CSV dataset from path and builds a Store from it.
// The first record is treated as the header row.
func FromCSV(path string, log *slog.Logger) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read listing dataset %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(RequiredColumns, ", "))
	}

	return New(rows[0], rows[1:], log)
}

// New builds a Store from a header row and raw data records. The required
// columns are validated once, before any row is parsed. Rows whose required
// fields fail to parse are skipped with a diagnostic log line; construction
// fails only if the header is incomplete or no rows survive filtering.
func New(header []string, records [][]string, log *slog.Logger) (*Store, error) {
	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(name)] = idx
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	store := &Store{log: log}
	for ordinal, record := range records {
		listing, err := parseRow(columns, record)
		if err != nil {
			store.skipped++
			log.Warn("Skipping unparseable listing row", "row", ordinal, "error", err)
			continue
		}
		store.listings = append(store.listings, listing)
	}

	if len(store.listings) == 0 {
		return nil, ErrEmptyDataset
	}

	log.Info("Listing dataset loaded", "listings", len(store.listings), "skipped", store.skipped)

	return store, nil
}

// parseRow coerces one raw record into a Listing. Required numeric fields must
// parse; optional integer fields fall back to nil when absent or malformed.
func parseRow(columns map[string]int, record []string) (models.Listing, error) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	lat, err := strconv.ParseFloat(field("latitude"), 64)
	if err != nil {
		return models.Listing{}, fmt.Errorf("invalid latitude %q", field("latitude"))
	}
	lng, err := strconv.ParseFloat(field("longitude"), 64)
	if err != nil {
		return models.Listing{}, fmt.Errorf("invalid longitude %q", field("longitude"))
	}
	price, err := strconv.ParseFloat(field("price"), 64)
	if err != nil {
		return models.Listing{}, fmt.Errorf("invalid price %q", field("price"))
	}
	size, err := strconv.ParseFloat(field("size"), 64)
	if err != nil {
		return models.Listing{}, fmt.Errorf("invalid size %q", field("size"))
	}
	priceByArea, err := strconv.ParseFloat(field("priceByArea"), 64)
	if err != nil {
		return models.Listing{}, fmt.Errorf("invalid priceByArea %q", field("priceByArea"))
	}

	return models.Listing{
		Coordinates: models.Coordinates{Latitude: lat, Longitude: lng},
		Price:       price,
		Size:        size,
		Floor:       strings.ToLower(field("floor")),
		Rooms:       optionalInt(field("rooms")),
		Bathrooms:   optionalInt(field("bathrooms")),
		PriceByArea: priceByArea,
		URL:         field("url"),
	}, nil
}

// optionalInt parses an optional integer field. Datasets exported from
// spreadsheet tooling often serialize counts as floats ("3.0"), so the value
// is parsed as a float and truncated.
func optionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	count := int(value)

	return &count
}

// Within returns every listing whose distance to center is at most
// radiusMeters, in the store's original load order.
func (s *Store) Within(center models.Coordinates, radiusMeters float64) []models.Listing {
	var nearby []models.Listing
	for _, listing := range s.listings {
		if geo.Distance(center, listing.Coordinates) <= radiusMeters {
			nearby = append(nearby, listing)
		}
	}

	return nearby
}

// Len reports the number of validated listings held by the store.
func (s *Store) Len() int {
	return len(s.listings)
}

// Skipped reports how many rows were discarded during construction.
func (s *Store) Skipped() int {
	return s.skipped
}
