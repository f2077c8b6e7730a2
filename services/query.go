package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"preschool-finder/models"
	"preschool-finder/utils"
)

// QueryService composes the filter, ranking, reason and pagination engines
// into the public query flows. Every flow is a pure read of the catalogue,
// so a single QueryService serves any number of concurrent requests.
type QueryService struct {
	catalogue *Catalogue
	filter    *FilterEngine
	ranker    *RankingEngine
	reasons   *MatchReasonGenerator
	favorites FavoritesStore
	logger    *utils.Logger
}

// Option configures a QueryService.
type Option func(*QueryService)

// WithFavorites flags results whose id is in store.
func WithFavorites(store FavoritesStore) Option {
	return func(s *QueryService) { s.favorites = store }
}

func NewQueryService(catalogue *Catalogue, logger *utils.Logger, opts ...Option) *QueryService {
	s := &QueryService{
		catalogue: catalogue,
		filter:    NewFilterEngine(),
		ranker:    NewRankingEngine(),
		reasons:   NewMatchReasonGenerator(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search filters the catalogue and returns one page of matches in catalogue
// order. No ranking is applied.
func (s *QueryService) Search(ctx context.Context, req models.SearchRequest) (models.Page[models.QueryResult], error) {
	start := time.Now()
	log := utils.LoggerFrom(ctx, s.logger)

	if err := checkPaging(req.Page, req.Limit); err != nil {
		return models.Page[models.QueryResult]{}, s.rejected(log, "search", err)
	}

	matched, err := s.filter.Apply(s.catalogue.Records(), Filters{
		Query:      req.Query,
		MinRating:  req.MinRating,
		AgeRange:   req.AgeRange,
		Curriculum: req.Curriculum,
		PriceRange: req.PriceRange,
	})
	if err != nil {
		return models.Page[models.QueryResult]{}, s.rejected(log, "search", err)
	}

	page, err := Paginate(matched, req.Page, req.Limit)
	if err != nil {
		return models.Page[models.QueryResult]{}, s.rejected(log, "search", err)
	}

	items := s.markFavorites(wrap(page.Items))
	log.Flow("search").
		Str("query", req.Query).
		Int("total", page.TotalCount).
		Int("page", page.Page).
		Int("returned", len(items)).
		Dur("elapsed", time.Since(start)).
		Msg("flow complete")

	return models.Page[models.QueryResult]{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}, nil
}

// Recommend returns up to req.Limit records matching the preferences,
// highest rated first, each with its match reasons.
func (s *QueryService) Recommend(ctx context.Context, req models.RecommendRequest) ([]models.QueryResult, error) {
	start := time.Now()
	log := utils.LoggerFrom(ctx, s.logger)

	if err := checkLimit(req.Limit); err != nil {
		return nil, s.rejected(log, "recommend", err)
	}

	matched, err := s.filter.Apply(s.catalogue.Records(), Filters{
		Location:   req.Location,
		MinRating:  req.MinRating,
		Curriculum: req.Curriculum,
		AgeRange:   req.AgeRange,
	})
	if err != nil {
		return nil, s.rejected(log, "recommend", err)
	}

	ranked, err := s.ranker.Rank(wrap(matched), RatingDesc)
	if err != nil {
		return nil, s.rejected(log, "recommend", err)
	}
	ranked = takeFirst(ranked, req.Limit)
	for i := range ranked {
		ranked[i].MatchReasons = s.reasons.Reasons(ranked[i].FacilityRecord, req)
	}

	ranked = s.markFavorites(ranked)
	log.Flow("recommend").
		Str("location", req.Location).
		Str("curriculum", req.Curriculum).
		Int("matched", len(matched)).
		Int("returned", len(ranked)).
		Dur("elapsed", time.Since(start)).
		Msg("flow complete")
	return ranked, nil
}

// Featured returns the limit most popular records across the catalogue.
func (s *QueryService) Featured(ctx context.Context, limit int) ([]models.QueryResult, error) {
	start := time.Now()
	log := utils.LoggerFrom(ctx, s.logger)

	if err := checkLimit(limit); err != nil {
		return nil, s.rejected(log, "featured", err)
	}

	ranked, err := s.ranker.Rank(wrap(s.catalogue.Records()), PopularityDesc)
	if err != nil {
		return nil, s.rejected(log, "featured", err)
	}

	ranked = s.markFavorites(takeFirst(ranked, limit))
	log.Flow("featured").
		Int("returned", len(ranked)).
		Dur("elapsed", time.Since(start)).
		Msg("flow complete")
	return ranked, nil
}

// Nearby returns up to req.Limit records within req.RadiusMiles of the
// origin, nearest first. Distances are rounded to one decimal place.
func (s *QueryService) Nearby(ctx context.Context, req models.NearbyRequest) ([]models.QueryResult, error) {
	start := time.Now()
	log := utils.LoggerFrom(ctx, s.logger)

	if err := checkLimit(req.Limit); err != nil {
		return nil, s.rejected(log, "nearby", err)
	}

	origin := models.Coordinates{Latitude: req.Latitude, Longitude: req.Longitude}
	matched, err := s.filter.Apply(s.catalogue.Records(), Filters{
		Origin:      &origin,
		RadiusMiles: req.RadiusMiles,
	})
	if err != nil {
		return nil, s.rejected(log, "nearby", err)
	}

	candidates := make([]models.QueryResult, 0, len(matched))
	for _, r := range matched {
		d, _ := withinRadius(r, origin, req.RadiusMiles)
		candidates = append(candidates, models.QueryResult{FacilityRecord: r, Distance: &d})
	}

	ranked, err := s.ranker.Rank(candidates, DistanceAsc)
	if err != nil {
		return nil, s.rejected(log, "nearby", err)
	}
	ranked = takeFirst(ranked, req.Limit)
	for i := range ranked {
		rounded := math.Round(*ranked[i].Distance*10) / 10
		ranked[i].Distance = &rounded
	}

	ranked = s.markFavorites(ranked)
	log.Flow("nearby").
		Float64("lat", req.Latitude).
		Float64("lng", req.Longitude).
		Float64("radius_miles", req.RadiusMiles).
		Int("matched", len(matched)).
		Int("returned", len(ranked)).
		Dur("elapsed", time.Since(start)).
		Msg("flow complete")
	return ranked, nil
}

// Get looks up a single record. It fails with ErrRecordNotFound.
func (s *QueryService) Get(ctx context.Context, id string) (models.QueryResult, error) {
	log := utils.LoggerFrom(ctx, s.logger)

	r, ok := s.catalogue.Get(id)
	if !ok {
		return models.QueryResult{}, s.rejected(log, "get", fmt.Errorf("%w: %q", ErrRecordNotFound, id))
	}

	results := s.markFavorites([]models.QueryResult{{FacilityRecord: r}})
	log.Flow("get").Str("id", id).Msg("flow complete")
	return results[0], nil
}

// Catalogue exposes the snapshot the service reads from.
func (s *QueryService) Catalogue() *Catalogue {
	return s.catalogue
}

func (s *QueryService) markFavorites(results []models.QueryResult) []models.QueryResult {
	if s.favorites == nil {
		return results
	}
	for i := range results {
		results[i].IsFavorite = s.favorites.IsFavorite(results[i].ID)
	}
	return results
}

func (s *QueryService) rejected(log *utils.Logger, flow string, err error) error {
	log.Flow(flow).Err(err).Msg("flow rejected")
	return err
}

func wrap(records []*models.FacilityRecord) []models.QueryResult {
	results := make([]models.QueryResult, len(records))
	for i, r := range records {
		results[i] = models.QueryResult{FacilityRecord: r}
	}
	return results
}

func checkLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidArgument, limit)
	}
	return nil
}

func checkPaging(page, limit int) error {
	if err := checkLimit(limit); err != nil {
		return err
	}
	if page < 1 {
		return fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidArgument, page)
	}
	return nil
}
