package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/config"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates the health check handler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Ping is the basic reachability check.
func (h *HealthHandler) Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(200, utils.H{
		"status":  "ok",
		"message": "pong",
	})
}

// Liveness reports that the process is running.
func (h *HealthHandler) Liveness(ctx context.Context, c *app.RequestContext) {
	c.JSON(200, utils.H{
		"status": "alive",
	})
}

// Readiness reports whether the service can do useful work. Missing
// credentials degrade individual requests rather than failing startup, so
// they are surfaced here instead.
func (h *HealthHandler) Readiness(ctx context.Context, c *app.RequestContext) {
	generatorReady := h.cfg.Generator.APIKey != ""
	retrieverReady := h.cfg.SmartSearch.URL != "" && h.cfg.SmartSearch.AccessToken != ""

	status := "ready"
	code := 200
	if !generatorReady {
		status = "not_ready"
		code = 503
	}

	c.JSON(code, utils.H{
		"status":       status,
		"generator":    configuredState(generatorReady),
		"smart_search": configuredState(retrieverReady),
	})
}

func configuredState(ok bool) string {
	if ok {
		return "configured"
	}
	return "not_configured"
}
