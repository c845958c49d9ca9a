package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/errs"
	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/service"
	"github.com/tutorlens/tutorlens/internal/validation"
)

const deadlineLayout = "2006-01-02"

// GoalHandler exposes learning goal endpoints, nested under a student.
type GoalHandler struct {
	Handler
	auth  *service.AuthService
	goals *service.GoalService
}

func NewGoalHandler(base Handler, services *service.Services) *GoalHandler {
	return &GoalHandler{
		Handler: base,
		auth:    services.Auth,
		goals:   services.Goals,
	}
}

// List returns a student's goals ordered by creation time.
func (h *GoalHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *studentIDRequest) ([]*repository.Goal, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}
		return h.goals.List(c.Request().Context(), actor, req.StudentID)
	}, http.StatusOK)
}

type createGoalRequest struct {
	StudentID         int64  `param:"student_id" validate:"required,min=1"`
	Description       string `json:"description" validate:"required,min=3,max=500"`
	MeasurableOutcome string `json:"measurable_outcome" validate:"omitempty,max=500"`
	Deadline          string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Status            string `json:"status" validate:"omitempty,oneof='not started' 'in progress' achieved"`
}

func (r *createGoalRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Create adds a goal for a student.
func (h *GoalHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *createGoalRequest) (*repository.Goal, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}

		deadline, err := parseDeadline(req.Deadline)
		if err != nil {
			return nil, err
		}

		return h.goals.Create(c.Request().Context(), actor, req.StudentID, service.GoalInput{
			Description:       req.Description,
			MeasurableOutcome: req.MeasurableOutcome,
			Deadline:          deadline,
			Status:            req.Status,
		})
	}, http.StatusCreated)
}

type updateGoalRequest struct {
	StudentID         int64   `param:"student_id" validate:"required,min=1"`
	GoalID            int64   `param:"goal_id" validate:"required,min=1"`
	Description       *string `json:"description" validate:"omitempty,min=3,max=500"`
	MeasurableOutcome *string `json:"measurable_outcome" validate:"omitempty,max=500"`
	Deadline          *string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Status            *string `json:"status" validate:"omitempty,oneof='not started' 'in progress' achieved"`
}

func (r *updateGoalRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Update applies a partial update to a goal, typically a status change.
func (h *GoalHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *updateGoalRequest) (*repository.Goal, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}

		patch := repository.GoalPatch{
			Description:       req.Description,
			MeasurableOutcome: req.MeasurableOutcome,
			Status:            req.Status,
		}
		if req.Deadline != nil {
			deadline, err := parseDeadline(*req.Deadline)
			if err != nil {
				return nil, err
			}
			patch.Deadline = deadline
		}

		return h.goals.Update(c.Request().Context(), actor, req.StudentID, req.GoalID, patch)
	}, http.StatusOK)
}

type goalIDRequest struct {
	StudentID int64 `param:"student_id" validate:"required,min=1"`
	GoalID    int64 `param:"goal_id" validate:"required,min=1"`
}

func (r *goalIDRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Delete removes a goal.
func (h *GoalHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *goalIDRequest) error {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return err
		}
		return h.goals.Delete(c.Request().Context(), actor, req.StudentID, req.GoalID)
	}, http.StatusNoContent)
}

// parseDeadline converts an optional YYYY-MM-DD string into a time
// pointer. The datetime validator tag already enforces the format, so a
// parse failure here means the tag and layout drifted apart.
func parseDeadline(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	deadline, err := time.Parse(deadlineLayout, raw)
	if err != nil {
		return nil, errs.NewBadRequestError("Deadline must be formatted as YYYY-MM-DD", true, nil, nil, nil)
	}
	return &deadline, nil
}
