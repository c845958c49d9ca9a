// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/handler"
	"github.com/tutorlens/tutorlens/internal/middleware"
)

// Setup builds the Echo instance with the full middleware chain and all
// route groups registered.
//
// Middleware order matters:
//  1. New Relic starts the transaction so later middleware can attach to it.
//  2. RequestID assigns/propagates the correlation id.
//  3. ContextEnhancer builds the request-scoped logger from both.
//  4. EnhanceTracing adds request attributes to the transaction.
//  5. CORS / request logging / recovery / secure headers wrap the rest.
func Setup(h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(m.Tracing.NewRelicMiddleware())
	e.Use(middleware.RequestID())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Tracing.EnhanceTracing())
	e.Use(m.Global.CORS())
	e.Use(m.Global.RequestLogger())
	e.Use(m.Global.Recover())
	e.Use(m.Global.Secure())

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	registerSystemRoutes(e, h)
	registerAPIRoutes(e, h, m)

	return e
}
