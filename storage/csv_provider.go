package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"preschool-finder/models"
)

// CSVProvider reads raw facility rows from a CSV file with a header row and
// hands them to a RawCleaner. Unknown columns are ignored and missing ones
// read as empty.
type CSVProvider struct {
	path    string
	cleaner RawCleaner
}

func NewCSVProvider(path string, cleaner RawCleaner) *CSVProvider {
	return &CSVProvider{path: path, cleaner: cleaner}
}

func (p *CSVProvider) Name() string {
	return "csv:" + p.path
}

func (p *CSVProvider) LoadAll(_ context.Context) ([]*models.FacilityRecord, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", p.path, err)
	}
	defer f.Close()

	raw, err := ReadRawFacilities(f)
	if err != nil {
		return nil, err
	}
	return p.cleaner.Clean(raw), nil
}

// ReadRawFacilities parses CSV rows keyed by the header row.
func ReadRawFacilities(r io.Reader) ([]*models.RawFacility, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var rows []*models.RawFacility
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read line %d: %w", line, err)
		}

		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		rows = append(rows, &models.RawFacility{
			ID:            get("id"),
			Name:          get("name"),
			Description:   get("description"),
			Address:       get("address"),
			City:          get("city"),
			State:         get("state"),
			PostalCode:    get("zip_code"),
			County:        get("county"),
			Latitude:      get("latitude"),
			Longitude:     get("longitude"),
			Phone:         get("phone"),
			Website:       get("website"),
			Rating:        get("rating"),
			ReviewCount:   get("review_count"),
			Tuition:       get("tuition"),
			Hours:         get("hours"),
			AgeRange:      get("age_range"),
			Curriculum:    get("curriculum"),
			ProgramType:   get("program_type"),
			LicenseNumber: get("license_number"),
			Capacity:      get("capacity"),
			DataSource:    get("data_source"),
			Features:      get("features"),
			Images:        get("images"),
		})
	}
	return rows, nil
}
