package models

// CatalogueReport holds summary statistics over the loaded record set.
type CatalogueReport struct {
	TotalFacilities  int
	RatedFacilities  int
	GeocodedCount    int
	StateProgram     int
	TotalReviews     int
	AverageRating    float64
	MinRating        float64
	MaxRating        float64
	MostReviewed     *FacilityRecord
	TopRated         []*FacilityRecord
	FacilitiesByCity map[string]int
}
