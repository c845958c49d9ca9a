package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/service"
	"github.com/tutorlens/tutorlens/internal/validation"
)

// AuthHandler exposes the sign-in endpoints.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(base Handler, services *service.Services) *AuthHandler {
	return &AuthHandler{
		Handler: base,
		auth:    services.Auth,
	}
}

type googleSignInRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

func (r *googleSignInRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// GoogleSignIn exchanges a Google ID token for a bearer token. New
// Google accounts are provisioned as tutors.
func (h *AuthHandler) GoogleSignIn() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *googleSignInRequest) (*service.AuthResult, error) {
		return h.auth.GoogleSignIn(c.Request().Context(), req.IDToken)
	}, http.StatusOK)
}

type parentAccessRequest struct {
	Contact string `json:"contact" validate:"required,min=3"`
}

func (r *parentAccessRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// ParentAccess grants passwordless read access to parents whose email
// or phone matches a student's parent contact info.
func (h *AuthHandler) ParentAccess() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *parentAccessRequest) (*service.AuthResult, error) {
		return h.auth.ParentAccess(c.Request().Context(), req.Contact)
	}, http.StatusOK)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

func (r *registerRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Register creates a local email/password tutor account.
func (h *AuthHandler) Register() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *registerRequest) (*service.AuthResult, error) {
		return h.auth.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	}, http.StatusCreated)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Login authenticates a local email/password account.
func (h *AuthHandler) Login() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *loginRequest) (*service.AuthResult, error) {
		return h.auth.Login(c.Request().Context(), req.Email, req.Password)
	}, http.StatusOK)
}

type currentUserRequest struct{}

func (r *currentUserRequest) Validate() error {
	return nil
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *currentUserRequest) (*repository.User, error) {
		return actorFromContext(c, h.auth)
	}, http.StatusOK)
}

type updateProfileRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Phone string `json:"phone" validate:"omitempty,min=7,max=20"`
}

func (r *updateProfileRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// UpdateMe updates the authenticated user's display name and phone.
func (h *AuthHandler) UpdateMe() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *updateProfileRequest) (*repository.User, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}
		return h.auth.UpdateProfile(c.Request().Context(), actor.ID, req.Name, req.Phone)
	}, http.StatusOK)
}
