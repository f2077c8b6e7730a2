package services

import (
	"preschool-finder/models"
	"preschool-finder/storage"
	"preschool-finder/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

func ptr[T any](v T) *T { return &v }

func facility(id string, rating float64, reviews int) *models.FacilityRecord {
	return &models.FacilityRecord{ID: id, Name: "Preschool " + id, Rating: rating, ReviewCount: reviews}
}

func ids(records []*models.FacilityRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func resultIDs(results []models.QueryResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newBuiltinService(opts ...Option) *QueryService {
	cat := NewCatalogue(NewCleaner(newTestLogger()).Validate(storage.Builtin()), "builtin")
	return NewQueryService(cat, newTestLogger(), opts...)
}
