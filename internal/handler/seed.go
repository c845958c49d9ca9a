package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/service"
)

// SeedHandler exposes the local-only demo data endpoint.
type SeedHandler struct {
	Handler
	seed *service.SeedService
}

func NewSeedHandler(base Handler, services *service.Services) *SeedHandler {
	return &SeedHandler{
		Handler: base,
		seed:    services.Seed,
	}
}

type seedRequest struct{}

func (r *seedRequest) Validate() error {
	return nil
}

// Seed inserts the sample tutor, student, goals and topic graph.
// Idempotent, and rejected outside the local environment.
func (h *SeedHandler) Seed() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *seedRequest) (*service.SeedResult, error) {
		return h.seed.Seed(c.Request().Context())
	}, http.StatusCreated)
}
