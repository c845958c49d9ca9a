package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/service"
	"github.com/tutorlens/tutorlens/internal/validation"
)

// MentalBlockHandler exposes detected mental block endpoints.
type MentalBlockHandler struct {
	Handler
	auth   *service.AuthService
	blocks *service.MentalBlockService
}

func NewMentalBlockHandler(base Handler, services *service.Services) *MentalBlockHandler {
	return &MentalBlockHandler{
		Handler: base,
		auth:    services.Auth,
		blocks:  services.MentalBlocks,
	}
}

type listMentalBlocksRequest struct {
	StudentID       int64 `param:"student_id" validate:"required,min=1"`
	IncludeResolved bool  `query:"include_resolved"`
}

func (r *listMentalBlocksRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// List returns a student's mental blocks, unresolved first by severity.
// Resolved blocks are hidden unless include_resolved=true.
func (h *MentalBlockHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *listMentalBlocksRequest) ([]*repository.MentalBlock, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}
		return h.blocks.List(c.Request().Context(), actor, req.StudentID, req.IncludeResolved)
	}, http.StatusOK)
}

type resolveMentalBlockRequest struct {
	StudentID int64 `param:"student_id" validate:"required,min=1"`
	BlockID   int64 `param:"block_id" validate:"required,min=1"`
}

func (r *resolveMentalBlockRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Resolve marks a mental block as resolved. A later transcript showing
// the same signal creates a fresh block rather than reviving this one.
func (h *MentalBlockHandler) Resolve() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *resolveMentalBlockRequest) (*repository.MentalBlock, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}
		return h.blocks.Resolve(c.Request().Context(), actor, req.StudentID, req.BlockID)
	}, http.StatusOK)
}
