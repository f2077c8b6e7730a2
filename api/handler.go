package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"preschool-finder/models"
	"preschool-finder/services"
	"preschool-finder/utils"
)

// DefaultRadiusMiles applies to /api/nearby when no radius is given.
const DefaultRadiusMiles = 10.0

// Handler serves the query flows over HTTP.
type Handler struct {
	svc          *services.QueryService
	logger       *utils.Logger
	defaultLimit int
}

// NewHandler creates a Handler. defaultLimit is used when a request omits
// the limit parameter.
func NewHandler(svc *services.QueryService, logger *utils.Logger, defaultLimit int) *Handler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &Handler{svc: svc, logger: logger, defaultLimit: defaultLimit}
}

// Search handles GET /api/preschools.
func (h *Handler) Search(c *gin.Context) {
	minRating, err := optionalFloat(c, "minRating")
	if err != nil {
		h.respondError(c, err)
		return
	}
	page, err := intParam(c, "page", 1)
	if err != nil {
		h.respondError(c, err)
		return
	}
	limit, err := intParam(c, "limit", h.defaultLimit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.svc.Search(c.Request.Context(), models.SearchRequest{
		Query:      c.Query("q"),
		MinRating:  minRating,
		AgeRange:   c.Query("ageRange"),
		Curriculum: c.Query("curriculum"),
		PriceRange: c.Query("priceRange"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/preschools/:id.
func (h *Handler) Get(c *gin.Context) {
	result, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Recommend handles GET /api/recommendations.
func (h *Handler) Recommend(c *gin.Context) {
	minRating, err := optionalFloat(c, "minRating")
	if err != nil {
		h.respondError(c, err)
		return
	}
	limit, err := intParam(c, "limit", h.defaultLimit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	results, err := h.svc.Recommend(c.Request.Context(), models.RecommendRequest{
		Location:   c.Query("location"),
		MinRating:  minRating,
		Curriculum: c.Query("curriculum"),
		AgeRange:   c.Query("ageRange"),
		Limit:      limit,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// Featured handles GET /api/featured.
func (h *Handler) Featured(c *gin.Context) {
	limit, err := intParam(c, "limit", h.defaultLimit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	results, err := h.svc.Featured(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// Nearby handles GET /api/nearby. lat and lng are required.
func (h *Handler) Nearby(c *gin.Context) {
	lat, err := requiredFloat(c, "lat")
	if err != nil {
		h.respondError(c, err)
		return
	}
	lng, err := requiredFloat(c, "lng")
	if err != nil {
		h.respondError(c, err)
		return
	}
	radius := DefaultRadiusMiles
	if r, err := optionalFloat(c, "radius"); err != nil {
		h.respondError(c, err)
		return
	} else if r != nil {
		radius = *r
	}
	limit, err := intParam(c, "limit", h.defaultLimit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	results, err := h.svc.Nearby(c.Request.Context(), models.NearbyRequest{
		Latitude:    lat,
		Longitude:   lng,
		RadiusMiles: radius,
		Limit:       limit,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	cat := h.svc.Catalogue()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "records": cat.Len(), "source": cat.Source()})
}

// respondError maps service errors onto HTTP status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrRecordNotFound):
		status = http.StatusNotFound
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		utils.LoggerFrom(c.Request.Context(), h.logger).Error("[api] %s: %v", c.FullPath(), err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func intParam(c *gin.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", services.ErrInvalidArgument, name, raw)
	}
	return n, nil
}

func optionalFloat(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number, got %q", services.ErrInvalidArgument, name, raw)
	}
	return &v, nil
}

func requiredFloat(c *gin.Context, name string) (float64, error) {
	v, err := optionalFloat(c, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, fmt.Errorf("%w: %s is required", services.ErrInvalidArgument, name)
	}
	return *v, nil
}
