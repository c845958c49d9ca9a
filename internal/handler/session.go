package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/service"
	"github.com/tutorlens/tutorlens/internal/validation"
)

// SessionHandler exposes read access to stored sessions and their
// derived analysis. Sessions are created through the transcript
// processing endpoints, never directly.
type SessionHandler struct {
	Handler
	auth     *service.AuthService
	sessions *service.SessionService
}

func NewSessionHandler(base Handler, services *service.Services) *SessionHandler {
	return &SessionHandler{
		Handler:  base,
		auth:     services.Auth,
		sessions: services.Sessions,
	}
}

// List returns a student's sessions, newest first.
func (h *SessionHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *studentIDRequest) ([]*repository.Session, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}
		return h.sessions.List(c.Request().Context(), actor, req.StudentID)
	}, http.StatusOK)
}

type sessionIDRequest struct {
	StudentID int64 `param:"student_id" validate:"required,min=1"`
	SessionID int64 `param:"session_id" validate:"required,min=1"`
}

func (r *sessionIDRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Get returns a single session with its full analysis.
func (h *SessionHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *sessionIDRequest) (*repository.Session, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}
		return h.sessions.Get(c.Request().Context(), actor, req.StudentID, req.SessionID)
	}, http.StatusOK)
}

// DownloadTranscript returns the raw transcript as a text file download.
func (h *SessionHandler) DownloadTranscript() echo.HandlerFunc {
	return HandleFile(h.Handler, func(c echo.Context, req *sessionIDRequest) ([]byte, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}

		session, err := h.sessions.Get(c.Request().Context(), actor, req.StudentID, req.SessionID)
		if err != nil {
			return nil, err
		}

		return []byte(session.TranscriptText), nil
	}, http.StatusOK, "transcript.txt", "text/plain; charset=utf-8")
}
