package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printstock/internal/infrastructure/storage/postgres"
	"printstock/internal/inventory"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	pool  *postgres.Pool
	store *inventory.Store
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(pool *postgres.Pool, store *inventory.Store) *HealthHandler {
	return &HealthHandler{pool: pool, store: store}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := map[string]string{}
	healthy := true

	if err := h.pool.Ping(c.Request.Context()); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		healthy = false
	} else {
		checks["database"] = "healthy"
	}

	if status := h.store.Status(); status != inventory.StatusReady {
		checks["inventory"] = "not ready: " + string(status)
		if msg := h.store.Err(); msg != "" {
			checks["inventory"] += " (" + msg + ")"
		}
		healthy = false
	} else {
		checks["inventory"] = "ready"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": checks,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": checks,
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	stat := h.pool.Stat()

	c.JSON(http.StatusOK, gin.H{
		"app":     "printstock",
		"version": "0.1.0",
		"database": map[string]any{
			"total_conns":    stat.TotalConns(),
			"acquired_conns": stat.AcquiredConns(),
			"idle_conns":     stat.IdleConns(),
			"max_conns":      stat.MaxConns(),
		},
		"inventory": map[string]any{
			"status":   h.store.Status(),
			"revision": h.store.Revision(),
		},
	})
}
