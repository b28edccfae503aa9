package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/storefront/internal/middleware"
	"github.com/deppfellow/storefront/internal/server"
)

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth runs the configured dependency checks. Any failing check
// makes the response a 503.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	obs := h.server.Config.Observability
	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	checks := map[string]func(ctx context.Context) error{}
	if obs.HasCheck("database") && h.server.DB != nil {
		checks["database"] = func(ctx context.Context) error {
			return h.server.DB.Pool.Ping(ctx)
		}
	}
	if obs.HasCheck("redis") && h.server.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		}
	}

	for name, check := range checks {
		result := h.runCheck(c.Request().Context(), name, check, obs.HealthChecks.Timeout)
		response.Checks[name] = result

		if result.Status != "healthy" {
			response.Status = "unhealthy"
			logger.Error().
				Str("check", name).
				Str("error", result.Error).
				Str("response_time", result.ResponseTime).
				Msg("health check failed")
		}
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) runCheck(parent context.Context, name string, check func(ctx context.Context) error, timeout time.Duration) checkResult {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	checkStart := time.Now()
	err := check(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"check_type":       name,
				"operation":        "health_check",
				"error_type":       name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
		}
		return checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
	}

	return checkResult{Status: "healthy", ResponseTime: elapsed.String()}
}
