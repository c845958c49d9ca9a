package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/errs"
	"github.com/tutorlens/tutorlens/internal/middleware"
	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/service"
)

// actorFromContext resolves the authenticated user for the current
// request. The auth middleware stores the user ID as a string in Echo
// context; this loads the full user record so services can make
// role-based decisions.
func actorFromContext(c echo.Context, auth *service.AuthService) (*repository.User, error) {
	raw := middleware.GetUserID(c)
	if raw == "" {
		return nil, errs.NewUnauthorizedError("Authentication required", true)
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Invalid authentication context", true)
	}

	return auth.CurrentUser(c.Request().Context(), userID)
}
