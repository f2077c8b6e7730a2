package services

import (
	"errors"
	"math"
	"testing"

	"preschool-finder/models"
)

func sampleFacilities() []*models.FacilityRecord {
	return []*models.FacilityRecord{
		{
			ID: "a", Name: "Sunshine Montessori", Description: "Hands-on learning",
			Address: "123 Valencia St", City: "San Francisco", PostalCode: "94103",
			Rating: 4.7, ReviewCount: 128, Tuition: "$1,800/month", AgeRange: "2-5 years",
			Curriculum: "Montessori", Latitude: ptr(37.7749), Longitude: ptr(-122.4194),
		},
		{
			ID: "b", Name: "Little Explorers", Description: "Outdoor science",
			Address: "456 University Ave", City: "Palo Alto", PostalCode: "94301",
			Rating: 4.5, ReviewCount: 86, Tuition: "$1,500/month", AgeRange: "3-5 Years",
			Curriculum: "Play-based", Latitude: ptr(37.4419), Longitude: ptr(-122.1430),
		},
		{
			ID: "c", Name: "Bright Beginnings", Description: "Reggio inspired art projects",
			Address: "789 Grand Ave", City: "Oakland", PostalCode: "94610",
			Rating: 4.8, ReviewCount: 20, Tuition: "$2,000/month", AgeRange: "2-5 years",
			Curriculum: "Reggio Emilia",
		},
		{
			ID: "d", Name: "Rainbow Kids", Description: "Social-emotional focus",
			Address: "321 Santa Clara St", City: "San Jose", PostalCode: "95113",
			Rating: 4.3, ReviewCount: 45, Tuition: "subsidized", AgeRange: "2-4 years",
			Curriculum: "Play-based", Latitude: ptr(37.3382), Longitude: ptr(-121.8863),
		},
		{
			ID: "e", Name: "Mission State Preschool", Description: "State program",
			Address: "2950 Mission St", City: "San Francisco", PostalCode: "94110",
			Rating: 4.6, ReviewCount: 12, Tuition: "Subsidized", AgeRange: "2-5 years",
			Latitude: ptr(37.7599), Longitude: ptr(-122.4148),
		},
	}
}

func TestFilterMinRatingPreservesOrder(t *testing.T) {
	e := NewFilterEngine()
	got, err := e.Apply(sampleFacilities(), Filters{MinRating: ptr(4.6)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a", "c", "e"}
	if !equalStrings(ids(got), want) {
		t.Errorf("minRating=4.6: got %v, want %v", ids(got), want)
	}
}

func TestFilterNoCriteriaMatchesAll(t *testing.T) {
	e := NewFilterEngine()
	got, err := e.Apply(sampleFacilities(), Filters{Query: "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("empty filters: got %d records, want 5", len(got))
	}
}

func TestFilterCriteria(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"query matches name", Filters{Query: "RAINBOW"}, []string{"d"}},
		{"query matches description", Filters{Query: "art projects"}, []string{"c"}},
		{"query matches address", Filters{Query: "valencia"}, []string{"a"}},
		{"query matches curriculum", Filters{Query: "play-BASED"}, []string{"b", "d"}},
		{"query matches nothing", Filters{Query: "waldorf"}, []string{}},
		{"age range is case-insensitive", Filters{AgeRange: "3-5 years"}, []string{"b"}},
		{"curriculum containment", Filters{Curriculum: "reggio"}, []string{"c"}},
		{"price range is a plain substring", Filters{PriceRange: "Subsidized"}, []string{"e"}},
		{"location matches city", Filters{Location: "san francisco"}, []string{"a", "e"}},
		{"location matches address", Filters{Location: "grand ave"}, []string{"c"}},
		{"location matches postal code", Filters{Location: "9411"}, []string{"e"}},
		{"location matches postal prefix", Filters{Location: "951"}, []string{"d"}},
		{"minimum rating zero keeps everything", Filters{MinRating: ptr(0.0)}, []string{"a", "b", "c", "d", "e"}},
		{"criteria are conjunctive", Filters{Location: "San Francisco", MinRating: ptr(4.65)}, []string{"a"}},
		{
			"radius skips records without coordinates",
			Filters{Origin: &models.Coordinates{Latitude: 37.7749, Longitude: -122.4194}, RadiusMiles: 50},
			[]string{"a", "b", "d", "e"},
		},
		{
			"small radius",
			Filters{Origin: &models.Coordinates{Latitude: 37.7749, Longitude: -122.4194}, RadiusMiles: 2},
			[]string{"a", "e"},
		},
	}

	e := NewFilterEngine()
	for _, tt := range tests {
		got, err := e.Apply(sampleFacilities(), tt.filters)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if !equalStrings(ids(got), tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, ids(got), tt.want)
		}
	}
}

// A record passes a combined filter exactly when it passes every single
// criterion on its own.
func TestFilterIsConjunctionOfCriteria(t *testing.T) {
	origin := &models.Coordinates{Latitude: 37.7749, Longitude: -122.4194}
	singles := []Filters{
		{Query: "st"},
		{MinRating: ptr(4.5)},
		{AgeRange: "2-5"},
		{Curriculum: "play"},
		{PriceRange: "month"},
		{Location: "san"},
		{Origin: origin, RadiusMiles: 30},
	}

	e := NewFilterEngine()
	records := sampleFacilities()

	// every subset of the single criteria
	for mask := 0; mask < 1<<len(singles); mask++ {
		var f Filters
		var active []Filters
		for i, s := range singles {
			if mask&(1<<i) == 0 {
				continue
			}
			active = append(active, s)
			f = merge(f, s)
		}

		got, err := e.Apply(records, f)
		if err != nil {
			t.Fatalf("mask %b: %v", mask, err)
		}
		in := make(map[string]bool, len(got))
		for _, r := range got {
			in[r.ID] = true
		}

		for _, r := range records {
			want := true
			for _, s := range active {
				want = want && e.Matches(r, s)
			}
			if in[r.ID] != want {
				t.Errorf("mask %b record %s: in result = %v, satisfies all = %v", mask, r.ID, in[r.ID], want)
			}
		}
	}
}

func merge(dst, src Filters) Filters {
	if src.Query != "" {
		dst.Query = src.Query
	}
	if src.MinRating != nil {
		dst.MinRating = src.MinRating
	}
	if src.AgeRange != "" {
		dst.AgeRange = src.AgeRange
	}
	if src.Curriculum != "" {
		dst.Curriculum = src.Curriculum
	}
	if src.PriceRange != "" {
		dst.PriceRange = src.PriceRange
	}
	if src.Location != "" {
		dst.Location = src.Location
	}
	if src.Origin != nil {
		dst.Origin, dst.RadiusMiles = src.Origin, src.RadiusMiles
	}
	return dst
}

func TestFilterRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
	}{
		{"rating above 5", Filters{MinRating: ptr(5.5)}},
		{"negative rating", Filters{MinRating: ptr(-1.0)}},
		{"NaN rating", Filters{MinRating: ptr(math.NaN())}},
		{"zero radius", Filters{Origin: &models.Coordinates{}, RadiusMiles: 0}},
		{"negative radius", Filters{Origin: &models.Coordinates{}, RadiusMiles: -3}},
		{"origin out of range", Filters{Origin: &models.Coordinates{Latitude: 120}, RadiusMiles: 5}},
	}

	e := NewFilterEngine()
	for _, tt := range tests {
		_, err := e.Apply(sampleFacilities(), tt.filters)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: got %v, want ErrInvalidArgument", tt.name, err)
		}
	}
}

func TestFilterLeavesInputUntouched(t *testing.T) {
	records := sampleFacilities()
	before := ids(records)

	e := NewFilterEngine()
	if _, err := e.Apply(records, Filters{MinRating: ptr(4.6)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalStrings(ids(records), before) {
		t.Errorf("input order changed: got %v, want %v", ids(records), before)
	}
}
