package middleware

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/errs"
	"github.com/tutorlens/tutorlens/internal/server"
	"github.com/tutorlens/tutorlens/internal/service"
)

// AuthMiddleware enforces bearer token authentication on routes.
type AuthMiddleware struct {
	server *server.Server
	auth   *service.AuthService
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server, auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		auth:   auth,
	}
}

// RequireAuth validates the Authorization: Bearer <token> header and
// stores user identity into Echo context for handlers and the context
// enhancer to read (user_id as a string for log correlation, user_role
// for access decisions).
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return errs.NewUnauthorizedError("Missing bearer token", false)
		}

		claims, err := auth.auth.ParseToken(token)
		if err != nil {
			return err
		}

		c.Set(UserIDKey, strconv.FormatInt(claims.UserID, 10))
		c.Set(UserRoleKey, claims.Role)

		return next(c)
	}
}
