package services

import (
	"context"
	"errors"

	"preschool-finder/models"
	"preschool-finder/storage"
	"preschool-finder/utils"
)

// Catalogue is the immutable record snapshot every query reads from.
// It holds no locks; nothing mutates it after construction.
type Catalogue struct {
	records []*models.FacilityRecord
	byID    map[string]*models.FacilityRecord
	source  string
}

// NewCatalogue indexes records. The records must already be validated.
func NewCatalogue(records []*models.FacilityRecord, source string) *Catalogue {
	byID := make(map[string]*models.FacilityRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	return &Catalogue{records: records, byID: byID, source: source}
}

// LoadCatalogue loads and validates the provider's records. When the
// provider fails or nothing valid remains, it logs a warning and falls back
// to the built-in reference set instead of failing.
func LoadCatalogue(ctx context.Context, provider storage.DataProvider, cleaner *Cleaner, logger *utils.Logger) *Catalogue {
	records, err := provider.LoadAll(ctx)
	if err == nil {
		records = cleaner.Validate(records)
		if len(records) > 0 {
			logger.Info("[catalogue] Loaded %d facilities from %s", len(records), provider.Name())
			return NewCatalogue(records, provider.Name())
		}
		err = errors.New("no valid records")
	}

	fallback := storage.BuiltinProvider{}
	builtin, _ := fallback.LoadAll(ctx)
	builtin = cleaner.Validate(builtin)
	logger.Warn("[catalogue] %v from %s: %v; using %d built-in facilities",
		ErrDataUnavailable, provider.Name(), err, len(builtin))
	return NewCatalogue(builtin, fallback.Name())
}

// Records returns the snapshot in provider order. Callers must treat the
// slice and the records as read-only.
func (c *Catalogue) Records() []*models.FacilityRecord {
	return c.records
}

// Get looks a record up by id.
func (c *Catalogue) Get(id string) (*models.FacilityRecord, bool) {
	r, ok := c.byID[id]
	return r, ok
}

func (c *Catalogue) Len() int { return len(c.records) }

// Source names the provider the snapshot came from.
func (c *Catalogue) Source() string { return c.source }
