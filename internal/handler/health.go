package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/grubdash/internal/middleware"
	"github.com/deppfellow/grubdash/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HealthHandler exposes GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]HealthCheck `json:"checks"`
}

// HealthCheck is the result of one dependency check.
type HealthCheck struct {
	Status       string         `json:"status"`
	ResponseTime string         `json:"response_time"`
	Error        string         `json:"error,omitempty"`
	Details      map[string]int `json:"details,omitempty"`
}

// CheckHealth pings the store and reports record counts.
//
// It returns 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]HealthCheck),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dbStart := time.Now()
	if err := h.server.DB.Ping(ctx); err != nil {
		response.Status = "unhealthy"
		response.Checks["database"] = HealthCheck{
			Status:       "unhealthy",
			ResponseTime: time.Since(dbStart).String(),
			Error:        err.Error(),
		}

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":       "database",
				"operation":        "health_check",
				"error_type":       "database_unhealthy",
				"response_time_ms": time.Since(dbStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		}
	} else {
		response.Checks["database"] = HealthCheck{
			Status:       "healthy",
			ResponseTime: time.Since(dbStart).String(),
			Details: map[string]int{
				"dishes": h.server.DB.Dishes.Len(),
				"orders": h.server.DB.Orders.Len(),
			},
		}
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
	} else {
		logger.Debug().
			Dur("total_duration", time.Since(start)).
			Msg("health check passed")
	}

	if err := c.JSON(status, response); err != nil {
		return errors.Wrap(err, "failed to write health response")
	}
	return nil
}
