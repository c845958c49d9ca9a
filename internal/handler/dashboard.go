package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/service"
)

// DashboardHandler exposes the aggregated per-student dashboard.
type DashboardHandler struct {
	Handler
	auth      *service.AuthService
	dashboard *service.DashboardService
}

func NewDashboardHandler(base Handler, services *service.Services) *DashboardHandler {
	return &DashboardHandler{
		Handler:   base,
		auth:      services.Auth,
		dashboard: services.Dashboard,
	}
}

// Get returns the dashboard view: student profile, goal progress, topic
// mastery rollups, active mental blocks and the session trend. Served
// from the Redis cache when fresh.
func (h *DashboardHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *studentIDRequest) (*service.Dashboard, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}
		return h.dashboard.Get(c.Request().Context(), actor, req.StudentID)
	}, http.StatusOK)
}
