// Package router wires handlers to routes.
package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/handler"
	"github.com/kellenmace/wpe-vector-db-ai-chatbot/internal/middleware"
)

// Setup registers all routes and global middleware.
func Setup(
	h *server.Hertz,
	chatHandler *handler.ChatHandler,
	healthHandler *handler.HealthHandler,
) {
	h.Use(middleware.Recovery())
	h.Use(middleware.Logger())
	h.Use(middleware.CORS())

	// Health check routes
	h.GET("/ping", healthHandler.Ping)
	h.GET("/health/ready", healthHandler.Readiness)
	h.GET("/health/live", healthHandler.Liveness)

	// Chat API, mirrors the path the web widget posts to
	v1 := h.Group("/ai-chatbot/v1")
	{
		v1.POST("/chat", chatHandler.StreamChat)
	}
}
