package services

import (
	"math"
	"testing"

	"preschool-finder/models"
)

func TestCleanerParseRating(t *testing.T) {
	c := NewCleaner(newTestLogger())

	tests := []struct {
		raw  string
		want float64
	}{
		{"4.85", 4.85},
		{"5.0", 5.0},
		{"3.5 (120 reviews)", 3.5},
		{"", 0},
		{"New", 0},
		{"6.0", 0},
	}

	for _, tt := range tests {
		got := c.parseRating(tt.raw)
		if got != tt.want {
			t.Errorf("parseRating(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"128", 128},
		{"1,024 reviews", 1024},
		{"", 0},
		{"none", 0},
		{"about 40 seats", 40},
	}

	for _, tt := range tests {
		if got := parseCount(tt.raw); got != tt.want {
			t.Errorf("parseCount(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerDropsEmptyID(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawFacility{
		{ID: "", Name: "No ID", Rating: "4.0"},
		{ID: "p-1", Name: "Has ID", Rating: "4.0"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Errorf("expected 1 facility after dropping empty id, got %d", len(cleaned))
	}
}

func TestCleanerDeduplicatesID(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawFacility{
		{ID: "p-1", Name: "A"},
		{ID: " p-1 ", Name: "B"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 facility after deduplication, got %d", len(cleaned))
	}
	if cleaned[0].Name != "A" {
		t.Errorf("first occurrence should win, got %q", cleaned[0].Name)
	}
}

func TestCleanerParsesRawRow(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawFacility{{
		ID:          "p-7",
		Name:        "  Tiny   Tots  ",
		Latitude:    "37.5",
		Longitude:   "-122.2",
		Rating:      "4.4",
		ReviewCount: "1,204",
		Capacity:    "30",
		Features:    "Garden | | Music ",
	}}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 facility, got %d", len(cleaned))
	}
	f := cleaned[0]
	if f.Name != "Tiny Tots" {
		t.Errorf("Name: got %q, want %q", f.Name, "Tiny Tots")
	}
	if f.Rating != 4.4 || f.ReviewCount != 1204 || f.Capacity != 30 {
		t.Errorf("numbers: got rating %v reviews %d capacity %d", f.Rating, f.ReviewCount, f.Capacity)
	}
	if at, ok := f.Coordinates(); !ok || at.Latitude != 37.5 || at.Longitude != -122.2 {
		t.Errorf("Coordinates: got %v, %v", at, ok)
	}
	if !equalStrings(f.Features, []string{"Garden", "Music"}) {
		t.Errorf("Features: got %q", f.Features)
	}
}

func TestCleanerValidateRejectsBadNumbers(t *testing.T) {
	c := NewCleaner(newTestLogger())
	records := []*models.FacilityRecord{
		facility("high", 5.5, 1),
		facility("neg", -0.1, 1),
		facility("nan", math.NaN(), 1),
		facility("reviews", 4, -3),
		facility("ok", 5, 0),
	}

	got := c.Validate(records)
	if !equalStrings(ids(got), []string{"ok"}) {
		t.Errorf("got %v, want [ok]", ids(got))
	}
}

func TestCleanerClearsIncompleteCoordinates(t *testing.T) {
	c := NewCleaner(newTestLogger())
	half := facility("half", 4, 1)
	half.Latitude = ptr(37.0)
	outside := facility("outside", 4, 1)
	outside.Latitude, outside.Longitude = ptr(95.0), ptr(10.0)

	got := c.Validate([]*models.FacilityRecord{half, outside})
	if len(got) != 2 {
		t.Fatalf("records should be kept, got %d", len(got))
	}
	for _, r := range got {
		if r.Latitude != nil || r.Longitude != nil {
			t.Errorf("%s: coordinates should be cleared", r.ID)
		}
	}
}

func TestCleanerValidateLeavesInputUntouched(t *testing.T) {
	c := NewCleaner(newTestLogger())
	in := facility(" p-1 ", 4, 1)
	in.Name = "  Spaced   Name "
	in.Reviews = []models.ReviewRecord{
		{ID: "r1", Rating: 9},
		{ID: "r2", Rating: 4, Likes: -2},
	}

	got := c.Validate([]*models.FacilityRecord{in})
	if len(got) != 1 {
		t.Fatalf("expected 1 facility, got %d", len(got))
	}
	if in.ID != " p-1 " || in.Name != "  Spaced   Name " {
		t.Errorf("input was modified: %q %q", in.ID, in.Name)
	}
	if got[0].ID != "p-1" || got[0].Name != "Spaced Name" {
		t.Errorf("output not normalised: %q %q", got[0].ID, got[0].Name)
	}
	if len(got[0].Reviews) != 1 || got[0].Reviews[0].Likes != 0 {
		t.Errorf("Reviews: got %+v", got[0].Reviews)
	}
	if in.Reviews[1].Likes != -2 {
		t.Error("input reviews were modified")
	}
}
