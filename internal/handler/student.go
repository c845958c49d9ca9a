package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/service"
	"github.com/tutorlens/tutorlens/internal/validation"
)

// StudentHandler exposes the student roster endpoints.
type StudentHandler struct {
	Handler
	auth     *service.AuthService
	students *service.StudentService
}

func NewStudentHandler(base Handler, services *service.Services) *StudentHandler {
	return &StudentHandler{
		Handler:  base,
		auth:     services.Auth,
		students: services.Students,
	}
}

type listStudentsRequest struct{}

func (r *listStudentsRequest) Validate() error {
	return nil
}

// List returns the students visible to the acting user.
func (h *StudentHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *listStudentsRequest) ([]*repository.Student, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}
		return h.students.List(c.Request().Context(), actor)
	}, http.StatusOK)
}

type studentIDRequest struct {
	StudentID int64 `param:"student_id" validate:"required,min=1"`
}

func (r *studentIDRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Get returns a single student profile.
func (h *StudentHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *studentIDRequest) (*repository.Student, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}
		return h.students.Get(c.Request().Context(), actor, req.StudentID)
	}, http.StatusOK)
}

type createStudentRequest struct {
	Name                string `json:"name" validate:"required,min=2,max=100"`
	Grade               string `json:"grade" validate:"omitempty,max=50"`
	Curriculum          string `json:"curriculum" validate:"omitempty,max=200"`
	TargetExam          string `json:"target_exam" validate:"omitempty,max=100"`
	LongTermGoalSummary string `json:"long_term_goal_summary" validate:"omitempty,max=1000"`
	ParentEmail         string `json:"parent_email" validate:"omitempty,email"`
	ParentPhone         string `json:"parent_phone" validate:"omitempty,max=30"`
}

func (r *createStudentRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Create adds a new student to the acting tutor's roster.
func (h *StudentHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *createStudentRequest) (*repository.Student, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}

		return h.students.Create(c.Request().Context(), actor, service.StudentInput{
			Name:                req.Name,
			Grade:               req.Grade,
			Curriculum:          req.Curriculum,
			TargetExam:          req.TargetExam,
			LongTermGoalSummary: req.LongTermGoalSummary,
			ParentEmail:         req.ParentEmail,
			ParentPhone:         req.ParentPhone,
		})
	}, http.StatusCreated)
}

type updateStudentRequest struct {
	StudentID           int64   `param:"student_id" validate:"required,min=1"`
	Name                *string `json:"name" validate:"omitempty,min=2,max=100"`
	Grade               *string `json:"grade" validate:"omitempty,max=50"`
	Curriculum          *string `json:"curriculum" validate:"omitempty,max=200"`
	TargetExam          *string `json:"target_exam" validate:"omitempty,max=100"`
	LongTermGoalSummary *string `json:"long_term_goal_summary" validate:"omitempty,max=1000"`
	ParentEmail         *string `json:"parent_email" validate:"omitempty,email"`
	ParentPhone         *string `json:"parent_phone" validate:"omitempty,max=30"`
}

func (r *updateStudentRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Update applies a partial update to a student profile. Absent fields
// are left unchanged.
func (h *StudentHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *updateStudentRequest) (*repository.Student, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}

		return h.students.Update(c.Request().Context(), actor, req.StudentID, repository.StudentPatch{
			Name:                req.Name,
			Grade:               req.Grade,
			Curriculum:          req.Curriculum,
			TargetExam:          req.TargetExam,
			LongTermGoalSummary: req.LongTermGoalSummary,
			ParentEmail:         req.ParentEmail,
			ParentPhone:         req.ParentPhone,
		})
	}, http.StatusOK)
}

// Delete removes a student and all dependent records.
func (h *StudentHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *studentIDRequest) error {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return err
		}
		return h.students.Delete(c.Request().Context(), actor, req.StudentID)
	}, http.StatusNoContent)
}
