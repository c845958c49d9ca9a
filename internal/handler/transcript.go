package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/errs"
	"github.com/tutorlens/tutorlens/internal/service"
	"github.com/tutorlens/tutorlens/internal/validation"
)

// TranscriptHandler exposes the transcript processing endpoints, the
// core write path of the system.
type TranscriptHandler struct {
	Handler
	auth        *service.AuthService
	transcripts *service.TranscriptService
}

func NewTranscriptHandler(base Handler, services *service.Services) *TranscriptHandler {
	return &TranscriptHandler{
		Handler:     base,
		auth:        services.Auth,
		transcripts: services.Transcripts,
	}
}

type processTranscriptRequest struct {
	StudentID   int64  `json:"student_id" validate:"required,min=1"`
	Transcript  string `json:"transcript" validate:"required,min=10"`
	SessionDate string `json:"session_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r *processTranscriptRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// sessionDateOrToday parses the optional session_date field, defaulting
// to the current UTC date.
func (r *processTranscriptRequest) sessionDateOrToday() (time.Time, error) {
	if r.SessionDate == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}

	sessionDate, err := time.Parse(deadlineLayout, r.SessionDate)
	if err != nil {
		return time.Time{}, errs.NewBadRequestError("Session date must be formatted as YYYY-MM-DD", true, nil, nil, nil)
	}
	return sessionDate, nil
}

// ProcessTrial ingests a trial/intake transcript: stores it as a trial
// session, extracts goals and topics, and recommends a curriculum when
// the student has none set.
func (h *TranscriptHandler) ProcessTrial() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *processTranscriptRequest) (*service.TrialOutcome, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}

		sessionDate, err := req.sessionDateOrToday()
		if err != nil {
			return nil, err
		}

		return h.transcripts.ProcessTrial(c.Request().Context(), actor, req.StudentID, req.Transcript, sessionDate)
	}, http.StatusCreated)
}

// ProcessSession ingests a regular lesson transcript: stores the session
// with its derived analysis, updates topic mastery and confidence, and
// upserts mental blocks from detected signals.
func (h *TranscriptHandler) ProcessSession() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *processTranscriptRequest) (*service.SessionOutcome, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}

		sessionDate, err := req.sessionDateOrToday()
		if err != nil {
			return nil, err
		}

		return h.transcripts.ProcessSession(c.Request().Context(), actor, req.StudentID, req.Transcript, sessionDate)
	}, http.StatusCreated)
}
