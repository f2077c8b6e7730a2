package models

// QueryResult is a request-scoped view of a FacilityRecord. The computed
// attributes live here only and are never copied into the record.
type QueryResult struct {
	*FacilityRecord

	// Distance in miles from the request origin, rounded to one decimal.
	Distance     *float64 `json:"distance,omitempty"`
	MatchReasons []string `json:"matchReasons,omitempty"`
	IsFavorite   bool     `json:"isFavorite"`
}

// Page is one slice of a longer ordered sequence.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// SearchRequest is the generic search flow input. Zero values mean "not set"
// except MinRating, which is a pointer so that 0 can be asked for explicitly.
type SearchRequest struct {
	Query      string
	MinRating  *float64
	AgeRange   string
	Curriculum string
	PriceRange string
	Page       int
	Limit      int
}

// RecommendRequest carries a parent's preferences.
type RecommendRequest struct {
	Location   string
	MinRating  *float64
	Curriculum string
	AgeRange   string
	Limit      int
}

// NearbyRequest asks for facilities within RadiusMiles of an origin.
type NearbyRequest struct {
	Latitude    float64
	Longitude   float64
	RadiusMiles float64
	Limit       int
}
