package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"preschool-finder/utils"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

// NewRouter registers the query routes and the health check.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.logger))

	api := router.Group("/api")
	{
		api.GET("/preschools", h.Search)
		api.GET("/preschools/:id", h.Get)
		api.GET("/recommendations", h.Recommend)
		api.GET("/featured", h.Featured)
		api.GET("/nearby", h.Nearby)
	}
	router.GET("/health", h.Health)

	return router
}

// requestLogger tags the request with an id, stores a request-scoped logger
// in its context and logs one line when the handler returns.
func requestLogger(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		reqLog := logger.With("request_id", id)
		c.Request = c.Request.WithContext(utils.ContextWithLogger(c.Request.Context(), reqLog))

		c.Next()

		reqLog.Info("[api] %s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}
