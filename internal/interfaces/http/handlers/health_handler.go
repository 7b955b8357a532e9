package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/flarelab/combust/internal/infrastructure/monitoring/logging"
)

// Checker reports whether one backing dependency is reachable.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checkers map[string]Checker
	log      logging.Logger
}

// NewHealthHandler constructs a HealthHandler over the named dependency
// checkers. Logger may be nil.
func NewHealthHandler(checkers map[string]Checker, log logging.Logger) *HealthHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &HealthHandler{checkers: checkers, log: log.Named("health")}
}

// Healthz handles GET /healthz. It answers 200 whenever the process is up.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz handles GET /readyz. Each dependency is probed with a short
// timeout; any failure flips the response to 503 with per-dependency detail.
func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checkers))
	for name, checker := range h.checkers {
		if err := checker.HealthCheck(ctx); err != nil {
			h.log.Warn("readiness probe failed",
				logging.String("dependency", name),
				logging.Err(err),
			)
			deps[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	body := gin.H{"status": "ok", "dependencies": deps}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}
