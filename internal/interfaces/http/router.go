// Package http assembles the gin router and HTTP server for the FlareLab
// record API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flarelab/combust/internal/infrastructure/monitoring/logging"
	"github.com/flarelab/combust/internal/infrastructure/monitoring/prometheus"
	"github.com/flarelab/combust/internal/interfaces/http/handlers"
	"github.com/flarelab/combust/internal/interfaces/http/middleware"
)

// RouterConfig carries everything the router needs, already constructed.
type RouterConfig struct {
	Records *handlers.RecordHandler
	Health  *handlers.HealthHandler

	// Mode is the gin mode: "debug", "release", or "test".
	Mode string

	// Collector serves the /metrics endpoint; nil disables it.
	Collector prometheus.MetricsCollector

	// Metrics feeds the per-request middleware; nil disables it.
	Metrics *prometheus.AppMetrics

	Logger logging.Logger
}

// NewRouter builds the gin engine with the full middleware chain and all
// routes registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Metrics(cfg.Metrics),
		middleware.Recovery(log),
		middleware.CORS(),
	)

	r.GET("/healthz", cfg.Health.Healthz)
	r.GET("/readyz", cfg.Health.Readyz)
	if cfg.Collector != nil {
		r.GET("/metrics", gin.WrapH(cfg.Collector.Handler()))
	}

	v1 := r.Group("/api/v1")
	{
		records := v1.Group("/records")
		{
			records.POST("", cfg.Records.Import)
			records.POST("/validate", cfg.Records.Validate)
			records.GET("", cfg.Records.List)
			records.GET("/:id", cfg.Records.Get)
			records.DELETE("/:id", cfg.Records.Delete)
		}
		v1.POST("/drafts/export", cfg.Records.Export)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "COMMON_003",
			"message": "route not found",
		})
	})

	return r
}
