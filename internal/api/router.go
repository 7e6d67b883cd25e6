package api

import (
	"github.com/wikirace/wikirace/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// setupRouter configures the Gin router with middleware and routes.
func (s *Server) setupRouter() {
	if s.config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware chain (order matters!)
	// 1. Recovery - catch panics first
	router.Use(middleware.Recovery())

	// 2. Request ID - needed by all subsequent middleware
	router.Use(middleware.RequestID())

	// 3. Logging - logs all requests (uses request ID)
	router.Use(middleware.Logging())

	// 4. Timeout - bounds the HTTP round trip
	router.Use(middleware.Timeout(s.config.ReadTimeout))

	// 5. CORS - before rate limiting to allow preflight
	if s.config.EnableCORS {
		router.Use(middleware.CORS(s.config.CORSOrigins))
	}

	// 6. Rate limiting - per client IP, enforced at this front-end per
	// spec.md §6 (the engine itself has no notion of client identity)
	router.Use(middleware.RateLimit(s.config.RateLimit, s.config.RateBurst))

	router.GET("/health", s.handleHealth)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/path", s.handleFindPath)
		v1.POST("/path", s.handleFindPath)
		v1.GET("/cache/stats", s.handleCacheStats)
	}

	s.router = router
}
