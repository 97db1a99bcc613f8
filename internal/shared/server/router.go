package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-insight/internal/analyses"
	"resume-insight/internal/documents"
	"resume-insight/internal/knowledge"
	"resume-insight/internal/services/health"
	"resume-insight/internal/shared/config"
	"resume-insight/internal/shared/metrics"
	"resume-insight/internal/shared/server/middleware"
	"resume-insight/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	Health           *health.Service
	KnowledgeHandler *knowledge.Handler
	DocumentsHandler *documents.Handler
	AnalysesHandler  *analyses.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Knowledge-base browsing and health are open; everything touching documents
// or analyses requires a caller identity.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	if deps.KnowledgeHandler != nil {
		deps.KnowledgeHandler.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(
		middleware.Identity(),
		middleware.RateLimit(rateLimits()),
	)
	registerMeRoutes(protected)
	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(protected)
	}
	if deps.AnalysesHandler != nil {
		deps.AnalysesHandler.RegisterRoutes(protected)
	}

	return r
}

// rateLimits gives analysis runs a tighter budget than plain reads.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ANALYZE": {Rate: 1, Burst: 5},
			"DEFAULT": {Rate: 10, Burst: 30},
		},
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return "DEFAULT"
			}
			path := c.FullPath()
			if strings.HasSuffix(path, "/analyze") || strings.HasSuffix(path, "/analyses/text") {
				return "ANALYZE"
			}
			return "DEFAULT"
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
