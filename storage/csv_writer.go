package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"preschool-finder/models"
)

// CSVWriter exports query results to a CSV file readable by CSVProvider.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	header := append(append([]string{}, facilityColumns...), "distance", "match_reasons", "is_favorite")
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteResults appends one row per result.
func (c *CSVWriter) WriteResults(results []models.QueryResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, res := range results {
		if err := c.writer.Write(resultRow(res)); err != nil {
			return fmt.Errorf("csv: write row %q: %w", res.ID, err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func resultRow(res models.QueryResult) []string {
	r := res.FacilityRecord
	distance := ""
	if res.Distance != nil {
		distance = formatFloat(*res.Distance)
	}
	return []string{
		r.ID, r.Name, r.Description, r.Address, r.City, r.State, r.PostalCode, r.County,
		formatOptional(r.Latitude), formatOptional(r.Longitude), r.Phone, r.Website,
		formatFloat(r.Rating), strconv.Itoa(r.ReviewCount),
		r.Tuition, r.Hours, r.AgeRange, r.Curriculum, r.ProgramType,
		r.LicenseNumber, formatCapacity(r.Capacity), r.DataSource,
		strings.Join(r.Features, listSeparator), strings.Join(r.Images, listSeparator),
		distance, strings.Join(res.MatchReasons, listSeparator), strconv.FormatBool(res.IsFavorite),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

func formatCapacity(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
