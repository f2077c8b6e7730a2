package storage

import (
	"context"

	"preschool-finder/models"
)

// DataProvider supplies the full facility record set. It is called once at
// start-up; the records it returns are treated as read-only afterwards.
type DataProvider interface {
	Name() string
	LoadAll(ctx context.Context) ([]*models.FacilityRecord, error)
}

// RawCleaner turns raw text rows into validated records.
type RawCleaner interface {
	Clean(raw []*models.RawFacility) []*models.FacilityRecord
}

// ResultWriter is the interface any export backend must satisfy.
type ResultWriter interface {
	WriteResults(results []models.QueryResult) error
	Close() error
}
