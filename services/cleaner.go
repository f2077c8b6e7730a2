package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"preschool-finder/models"
	"preschool-finder/utils"
)

var (
	// ratingRegexp captures a numeric rating in the 0.0–5.0 range
	ratingRegexp = regexp.MustCompile(`\b([0-5](?:\.\d{1,2})?)\b`)
	// countRegexp captures the first whole number, allowing thousands separators
	countRegexp = regexp.MustCompile(`\d[\d,]*`)
)

// Cleaner turns provider output into validated FacilityRecords.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses raw CSV rows and validates the result.
func (c *Cleaner) Clean(raw []*models.RawFacility) []*models.FacilityRecord {
	records := make([]*models.FacilityRecord, 0, len(raw))
	for _, r := range raw {
		records = append(records, &models.FacilityRecord{
			ID:            r.ID,
			Name:          r.Name,
			Description:   r.Description,
			Address:       r.Address,
			City:          r.City,
			State:         r.State,
			PostalCode:    r.PostalCode,
			County:        r.County,
			Latitude:      parseCoordinate(r.Latitude),
			Longitude:     parseCoordinate(r.Longitude),
			Phone:         r.Phone,
			Website:       r.Website,
			Rating:        c.parseRating(r.Rating),
			ReviewCount:   parseCount(r.ReviewCount),
			Tuition:       r.Tuition,
			Hours:         r.Hours,
			AgeRange:      r.AgeRange,
			Curriculum:    r.Curriculum,
			ProgramType:   r.ProgramType,
			LicenseNumber: r.LicenseNumber,
			Capacity:      parseCount(r.Capacity),
			DataSource:    r.DataSource,
			Features:      splitList(r.Features),
			Images:        splitList(r.Images),
		})
	}
	return c.Validate(records)
}

// Validate returns normalised copies of the acceptable records. Records with
// an empty or duplicate id, a rating outside [0, 5] or a negative review
// count are dropped. Incomplete or out-of-range coordinates are cleared.
// The input records are never modified.
func (c *Cleaner) Validate(records []*models.FacilityRecord) []*models.FacilityRecord {
	seen := make(map[string]struct{})
	result := make([]*models.FacilityRecord, 0, len(records))

	for _, in := range records {
		if in == nil {
			continue
		}

		id := strings.TrimSpace(in.ID)
		if id == "" {
			c.logger.Warn("[cleaner] Dropping facility with empty id: %s", in.Name)
			continue
		}
		if _, dup := seen[id]; dup {
			c.logger.Debug("[cleaner] Duplicate id skipped: %s", id)
			continue
		}
		if math.IsNaN(in.Rating) || in.Rating < 0 || in.Rating > 5 {
			c.logger.Warn("[cleaner] Dropping %s: rating %v outside [0, 5]", id, in.Rating)
			continue
		}
		if in.ReviewCount < 0 {
			c.logger.Warn("[cleaner] Dropping %s: negative review count %d", id, in.ReviewCount)
			continue
		}
		seen[id] = struct{}{}

		r := *in
		r.ID = id
		r.Name = normaliseText(in.Name)
		r.Description = normaliseText(in.Description)
		r.Address = normaliseText(in.Address)
		r.City = normaliseText(in.City)
		r.State = strings.TrimSpace(in.State)
		r.PostalCode = strings.TrimSpace(in.PostalCode)
		r.County = normaliseText(in.County)
		r.Phone = strings.TrimSpace(in.Phone)
		r.Website = strings.TrimSpace(in.Website)
		r.Tuition = normaliseText(in.Tuition)
		r.Hours = normaliseText(in.Hours)
		r.AgeRange = normaliseText(in.AgeRange)
		r.Curriculum = normaliseText(in.Curriculum)
		r.ProgramType = strings.TrimSpace(in.ProgramType)
		r.Latitude, r.Longitude = c.cleanCoordinates(id, in.Latitude, in.Longitude)
		r.Features = cleanList(in.Features)
		r.Images = cleanList(in.Images)
		r.Reviews = c.cleanReviews(id, in.Reviews)
		if r.Capacity < 0 {
			r.Capacity = 0
		}

		result = append(result, &r)
	}

	c.logger.Info("[cleaner] Validated %d → %d facilities (dropped %d)",
		len(records), len(result), len(records)-len(result))
	return result
}

func (c *Cleaner) cleanCoordinates(id string, lat, lon *float64) (*float64, *float64) {
	if lat == nil && lon == nil {
		return nil, nil
	}
	if lat == nil || lon == nil {
		c.logger.Warn("[cleaner] %s: incomplete coordinates cleared", id)
		return nil, nil
	}
	if err := ValidateCoordinates(*lat, *lon); err != nil {
		c.logger.Warn("[cleaner] %s: %v, coordinates cleared", id, err)
		return nil, nil
	}
	la, lo := *lat, *lon
	return &la, &lo
}

func (c *Cleaner) cleanReviews(id string, reviews []models.ReviewRecord) []models.ReviewRecord {
	if len(reviews) == 0 {
		return nil
	}
	out := make([]models.ReviewRecord, 0, len(reviews))
	for _, rv := range reviews {
		if math.IsNaN(rv.Rating) || rv.Rating < 0 || rv.Rating > 5 {
			c.logger.Warn("[cleaner] %s: dropping review %s with rating %v", id, rv.ID, rv.Rating)
			continue
		}
		rv.Likes = max(rv.Likes, 0)
		rv.Dislikes = max(rv.Dislikes, 0)
		out = append(out, rv)
	}
	return out
}

// parseRating extracts a 0.0–5.0 numeric rating from a raw string.
func (c *Cleaner) parseRating(raw string) float64 {
	match := ratingRegexp.FindStringSubmatch(raw)
	if len(match) < 2 {
		return 0
	}
	val, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	if val < 0 || val > 5 {
		return 0
	}
	return val
}

// parseCount extracts a whole number such as "1,024 reviews" → 1024.
func parseCount(raw string) int {
	match := countRegexp.FindString(raw)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

func parseCoordinate(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// splitList splits a "|"-separated cell into trimmed, non-empty values.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return cleanList(strings.Split(raw, "|"))
}

func cleanList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = normaliseText(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
