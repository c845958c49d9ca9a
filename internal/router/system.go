package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the
// business API: health, docs UI and static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint for uptime monitors and load balancers.
	r.GET("/status", h.Health.CheckHealth)

	// Serves openapi.json and openapi.html (and any future docs assets).
	r.Static("/static", "static")

	// Docs UI endpoint.
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
