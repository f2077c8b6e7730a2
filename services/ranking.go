package services

import (
	"fmt"
	"math"
	"sort"

	"preschool-finder/models"
)

// RankStrategy selects the score function used by RankingEngine.
type RankStrategy int

const (
	// RatingDesc orders by rating, highest first.
	RatingDesc RankStrategy = iota
	// PopularityDesc orders by PopularityScore, highest first.
	PopularityDesc
	// DistanceAsc orders by computed distance, nearest first.
	DistanceAsc
)

func (s RankStrategy) String() string {
	switch s {
	case RatingDesc:
		return "rating-desc"
	case PopularityDesc:
		return "popularity-desc"
	case DistanceAsc:
		return "distance-asc"
	}
	return fmt.Sprintf("RankStrategy(%d)", int(s))
}

// PopularityScore is rating weighted by log-damped review volume:
// rating * ln(reviewCount + 1).
func PopularityScore(r *models.FacilityRecord) float64 {
	return r.Rating * math.Log(float64(r.ReviewCount)+1)
}

// RankingEngine orders query results. Every strategy is a stable sort, so
// results with equal keys keep their incoming relative order.
type RankingEngine struct{}

func NewRankingEngine() *RankingEngine {
	return &RankingEngine{}
}

type keyed struct {
	result models.QueryResult
	key    float64
}

// Rank returns a newly ordered copy of results. DistanceAsc requires every
// result to carry a Distance.
func (e *RankingEngine) Rank(results []models.QueryResult, strategy RankStrategy) ([]models.QueryResult, error) {
	items := make([]keyed, len(results))
	for i, res := range results {
		items[i].result = res
		switch strategy {
		case RatingDesc:
			items[i].key = res.Rating
		case PopularityDesc:
			items[i].key = PopularityScore(res.FacilityRecord)
		case DistanceAsc:
			if res.Distance == nil {
				return nil, fmt.Errorf("%w: %s ranking needs a distance for %q", ErrInvalidArgument, strategy, res.ID)
			}
			items[i].key = *res.Distance
		default:
			return nil, fmt.Errorf("%w: unknown rank strategy %s", ErrInvalidArgument, strategy)
		}
	}

	if strategy == DistanceAsc {
		sort.SliceStable(items, func(i, j int) bool { return items[i].key < items[j].key })
	} else {
		sort.SliceStable(items, func(i, j int) bool { return items[i].key > items[j].key })
	}

	ranked := make([]models.QueryResult, len(items))
	for i, it := range items {
		ranked[i] = it.result
	}
	return ranked, nil
}
