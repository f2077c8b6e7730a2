package services

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"preschool-finder/models"
	"preschool-finder/storage"
)

func builtinReport(t *testing.T) *models.CatalogueReport {
	t.Helper()
	svc := NewInsightService(newTestLogger())
	return svc.Generate(NewCleaner(newTestLogger()).Validate(storage.Builtin()))
}

func TestInsightCounts(t *testing.T) {
	r := builtinReport(t)
	if r.TotalFacilities != 5 {
		t.Errorf("TotalFacilities: got %d, want 5", r.TotalFacilities)
	}
	if r.GeocodedCount != 5 {
		t.Errorf("GeocodedCount: got %d, want 5", r.GeocodedCount)
	}
	if r.StateProgram != 1 {
		t.Errorf("StateProgram: got %d, want 1", r.StateProgram)
	}
	if r.TotalReviews != 291 {
		t.Errorf("TotalReviews: got %d, want 291", r.TotalReviews)
	}
	if r.FacilitiesByCity["San Francisco"] != 2 {
		t.Errorf("San Francisco: got %d, want 2", r.FacilitiesByCity["San Francisco"])
	}
}

func TestInsightRatings(t *testing.T) {
	r := builtinReport(t)
	if math.Abs(r.AverageRating-4.58) > 1e-9 {
		t.Errorf("AverageRating: got %.2f, want 4.58", r.AverageRating)
	}
	if r.MinRating != 4.3 {
		t.Errorf("MinRating: got %.2f, want 4.3", r.MinRating)
	}
	if r.MaxRating != 4.8 {
		t.Errorf("MaxRating: got %.2f, want 4.8", r.MaxRating)
	}
}

func TestInsightMostReviewed(t *testing.T) {
	r := builtinReport(t)
	if r.MostReviewed == nil {
		t.Fatal("MostReviewed should not be nil")
	}
	if r.MostReviewed.ID != "preschool-1" {
		t.Errorf("MostReviewed: got %q, want %q", r.MostReviewed.ID, "preschool-1")
	}
}

func TestInsightTopRated(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	records := []*models.FacilityRecord{
		facility("a", 4.9, 1), facility("b", 4.5, 1), facility("c", 0, 1),
		facility("d", 4.8, 1), facility("e", 4.7, 1), facility("f", 4.1, 1),
		facility("g", 3.9, 1),
	}

	r := svc.Generate(records)
	if r.RatedFacilities != 6 {
		t.Errorf("RatedFacilities: got %d, want 6", r.RatedFacilities)
	}
	want := []string{"a", "d", "e", "b", "f"}
	if !equalStrings(ids(r.TopRated), want) {
		t.Errorf("TopRated: got %v, want %v", ids(r.TopRated), want)
	}
}

func TestInsightEmpty(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(nil)
	if r.TotalFacilities != 0 || r.MostReviewed != nil || len(r.TopRated) != 0 {
		t.Errorf("empty report: got %+v", r)
	}

	var buf bytes.Buffer
	svc.Print(&buf, r)
	if !strings.Contains(buf.String(), "No rating data available") {
		t.Errorf("Print output missing empty-rating notice:\n%s", buf.String())
	}
}

func TestInsightPrint(t *testing.T) {
	var buf bytes.Buffer
	NewInsightService(newTestLogger()).Print(&buf, builtinReport(t))

	out := buf.String()
	for _, want := range []string{"PRESCHOOL CATALOGUE INSIGHTS", "Bright Beginnings Reggio School", "San Francisco"} {
		if !strings.Contains(out, want) {
			t.Errorf("Print output missing %q", want)
		}
	}
}
