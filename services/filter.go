package services

import (
	"fmt"
	"math"
	"strings"

	"preschool-finder/models"
)

// Filters is a conjunctive set of optional criteria. Empty strings, a nil
// MinRating and a nil Origin are inactive and never exclude a record.
type Filters struct {
	Query      string
	MinRating  *float64
	AgeRange   string
	Curriculum string
	// PriceRange is matched as a plain substring of the tuition text. Tuition
	// is free text, so this is only an approximation of a price filter.
	PriceRange string
	Location   string

	Origin      *models.Coordinates
	RadiusMiles float64
}

// Validate rejects malformed numeric criteria.
func (f Filters) Validate() error {
	if f.MinRating != nil {
		r := *f.MinRating
		if math.IsNaN(r) || r < 0 || r > 5 {
			return fmt.Errorf("%w: minimum rating %v outside [0, 5]", ErrInvalidArgument, r)
		}
	}
	if f.Origin != nil {
		if err := ValidateCoordinates(f.Origin.Latitude, f.Origin.Longitude); err != nil {
			return err
		}
		if math.IsNaN(f.RadiusMiles) || math.IsInf(f.RadiusMiles, 0) || f.RadiusMiles <= 0 {
			return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidArgument, f.RadiusMiles)
		}
	}
	return nil
}

// criteria is Filters with text normalised once per request.
type criteria struct {
	query      string
	minRating  *float64
	ageRange   string
	curriculum string
	priceRange string
	location   string
	postal     string
	origin     *models.Coordinates
	radius     float64
}

func (f Filters) normalise() criteria {
	location := strings.TrimSpace(f.Location)
	return criteria{
		query:      lower(f.Query),
		minRating:  f.MinRating,
		ageRange:   lower(f.AgeRange),
		curriculum: lower(f.Curriculum),
		priceRange: strings.TrimSpace(f.PriceRange),
		location:   strings.ToLower(location),
		postal:     location,
		origin:     f.Origin,
		radius:     f.RadiusMiles,
	}
}

// FilterEngine evaluates Filters over a record set.
type FilterEngine struct{}

func NewFilterEngine() *FilterEngine {
	return &FilterEngine{}
}

// Apply returns the records satisfying every active criterion, in their
// original relative order. The input slice is not modified.
func (e *FilterEngine) Apply(records []*models.FacilityRecord, f Filters) ([]*models.FacilityRecord, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	c := f.normalise()
	matched := make([]*models.FacilityRecord, 0, len(records))
	for _, r := range records {
		if c.matches(r) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Matches reports whether a single record satisfies f. f is assumed valid.
func (e *FilterEngine) Matches(r *models.FacilityRecord, f Filters) bool {
	return f.normalise().matches(r)
}

func (c criteria) matches(r *models.FacilityRecord) bool {
	if c.query != "" && !containsAny(c.query, r.Name, r.Description, r.Address, r.Curriculum) {
		return false
	}

	if c.minRating != nil && r.Rating < *c.minRating {
		return false
	}

	if c.ageRange != "" && !strings.Contains(strings.ToLower(r.AgeRange), c.ageRange) {
		return false
	}

	if c.curriculum != "" && !strings.Contains(strings.ToLower(r.Curriculum), c.curriculum) {
		return false
	}

	if c.priceRange != "" && !strings.Contains(r.Tuition, c.priceRange) {
		return false
	}

	if c.location != "" &&
		!containsAny(c.location, r.Address, r.City) &&
		!strings.Contains(r.PostalCode, c.postal) {
		return false
	}

	if c.origin != nil {
		if _, ok := withinRadius(r, *c.origin, c.radius); !ok {
			return false
		}
	}

	return true
}

// withinRadius returns the distance from origin to r when r has
// coordinates and lies within radius miles.
func withinRadius(r *models.FacilityRecord, origin models.Coordinates, radius float64) (float64, bool) {
	at, ok := r.Coordinates()
	if !ok {
		return 0, false
	}
	d, err := DistanceBetween(origin, at)
	if err != nil {
		return 0, false
	}
	return d, d <= radius
}

// containsAny reports whether needle (already lower-cased) occurs in any of
// the fields, ignoring case.
func containsAny(needle string, fields ...string) bool {
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
