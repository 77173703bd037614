package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"pharmamart/internal/caching"
	"pharmamart/internal/services"
)

type HealthHandlers struct {
	db         *pgxpool.Pool
	cacheSvc   caching.CacheService
	storageSvc services.StorageService
}

func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService, storageSvc services.StorageService) *HealthHandlers {
	return &HealthHandlers{db: db, cacheSvc: cacheSvc, storageSvc: storageSvc}
}

type healthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck handles GET /health.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &healthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	for name, probe := range h.probes(ctx) {
		if err := probe(); err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
		} else {
			health.Services[name] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}
	return c.JSON(statusCode, health)
}

// ReadinessCheck handles GET /health/ready. The database and cache must be
// reachable before traffic is admitted; object storage is not critical.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not_ready", "message": "database unavailable"})
	}
	if err := h.cacheSvc.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not_ready", "message": "cache unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

// DetailedHealthCheck handles GET /health/detailed: per-dependency latency
// plus runtime stats.
func (h *HealthHandlers) DetailedHealthCheck(c echo.Context) error {
	checks := make(map[string]interface{})
	overall := "healthy"

	for name, probe := range h.probes(c.Request().Context()) {
		start := time.Now()
		err := probe()
		check := map[string]interface{}{
			"status":     "healthy",
			"latency_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			check["status"] = "unhealthy"
			check["message"] = err.Error()
			overall = "degraded"
		}
		checks[name] = check
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"overall_status": overall,
		"checks":         checks,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"goroutines":     runtime.NumGoroutine(),
	})
}

func (h *HealthHandlers) probes(ctx context.Context) map[string]func() error {
	return map[string]func() error{
		"database": func() error { return h.db.Ping(ctx) },
		"redis":    func() error { return h.cacheSvc.Ping(ctx) },
		"storage":  func() error { return h.storageSvc.Ping(ctx) },
	}
}
