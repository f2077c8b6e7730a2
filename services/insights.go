package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"preschool-finder/models"
	"preschool-finder/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(records []*models.FacilityRecord) *models.CatalogueReport {
	report := &models.CatalogueReport{
		FacilitiesByCity: make(map[string]int),
	}

	if len(records) == 0 {
		return report
	}

	report.TotalFacilities = len(records)

	var rated []*models.FacilityRecord
	var total float64

	for _, r := range records {
		if _, ok := r.Coordinates(); ok {
			report.GeocodedCount++
		}
		if IsStateProgram(r) {
			report.StateProgram++
		}
		if r.City != "" {
			report.FacilitiesByCity[r.City]++
		}
		report.TotalReviews += r.ReviewCount
		if report.MostReviewed == nil || r.ReviewCount > report.MostReviewed.ReviewCount {
			report.MostReviewed = r
		}
		if r.Rating > 0 {
			rated = append(rated, r)
			total += r.Rating
		}
	}
	report.RatedFacilities = len(rated)

	// Rating stats (only facilities with a rating)
	if len(rated) > 0 {
		report.MinRating = rated[0].Rating
		report.MaxRating = rated[0].Rating
		for _, r := range rated {
			report.MinRating = min(report.MinRating, r.Rating)
			report.MaxRating = max(report.MaxRating, r.Rating)
		}
		report.AverageRating = round2(total / float64(len(rated)))
	}

	// Top 5 by rating
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})
	report.TopRated = takeFirst(rated, 5)

	return report
}

func (s *InsightService) Print(w io.Writer, r *models.CatalogueReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  PRESCHOOL CATALOGUE INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Total facilities       : \033[1m%d\033[0m\n", r.TotalFacilities)
	fmt.Fprintf(w, "  With coordinates       : \033[1m%d\033[0m\n", r.GeocodedCount)
	fmt.Fprintf(w, "  State program (CSPP)   : \033[1m%d\033[0m\n", r.StateProgram)
	fmt.Fprintf(w, "  Reviews on record      : \033[1m%d\033[0m\n", r.TotalReviews)
	fmt.Fprintln(w)

	// Rating Stats
	fmt.Fprintf(w, "\033[1;33m  Rating Statistics\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.RatedFacilities > 0 {
		fmt.Fprintf(w, "  Rated facilities : \033[1m%d\033[0m\n", r.RatedFacilities)
		fmt.Fprintf(w, "  Average rating   : \033[1;32m%.2f\033[0m\n", r.AverageRating)
		fmt.Fprintf(w, "  Lowest rating    : \033[1;32m%.2f\033[0m\n", r.MinRating)
		fmt.Fprintf(w, "  Highest rating   : \033[1;32m%.2f\033[0m\n", r.MaxRating)
	} else {
		fmt.Fprintf(w, "  No rating data available\n")
	}
	fmt.Fprintln(w)

	if r.MostReviewed != nil && r.MostReviewed.ReviewCount > 0 {
		fmt.Fprintf(w, "\033[1;33m  Most Reviewed\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  %s\n", truncate(r.MostReviewed.Name, 50))
		fmt.Fprintf(w, "  City    : %s\n", r.MostReviewed.City)
		fmt.Fprintf(w, "  Reviews : \033[1m%d\033[0m\n", r.MostReviewed.ReviewCount)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Top 5 Highest Rated Preschools\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopRated) == 0 {
		fmt.Fprintf(w, "  No rated preschools found\n")
	} else {
		for i, f := range r.TopRated {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;32m%.2f ★\033[0m\n",
				i+1, truncate(f.Name, 38), f.Rating)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Preschools by City\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.FacilitiesByCity) == 0 {
		fmt.Fprintf(w, "  No location data\n")
	} else {
		type cityCount struct {
			city  string
			count int
		}
		var cities []cityCount
		for city, cnt := range r.FacilitiesByCity {
			cities = append(cities, cityCount{city, cnt})
		}
		// count descending, then name for a stable listing
		sort.Slice(cities, func(i, j int) bool {
			if cities[i].count != cities[j].count {
				return cities[i].count > cities[j].count
			}
			return cities[i].city < cities[j].city
		})
		for _, cc := range cities {
			bar := strings.Repeat("█", cc.count)
			fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(cc.city, 28), bar, cc.count)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
