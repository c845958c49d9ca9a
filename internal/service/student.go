package service

import (
	"context"
	"strings"

	"github.com/tutorlens/tutorlens/internal/errs"
	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/server"
)

// StudentService manages student records and owns the access rule every
// other student-scoped service delegates to.
type StudentService struct {
	server *server.Server
	repos  *repository.Repositories
	cache  *dashboardCache
}

func NewStudentService(s *server.Server, repos *repository.Repositories, cache *dashboardCache) *StudentService {
	return &StudentService{
		server: s,
		repos:  repos,
		cache:  cache,
	}
}

// StudentInput carries the fields accepted on student create.
type StudentInput struct {
	Name                string
	Grade               string
	Curriculum          string
	TargetExam          string
	LongTermGoalSummary string
	ParentEmail         string
	ParentPhone         string
}

// List returns the students visible to the acting user: a tutor sees the
// students they own, a parent sees students matching their contact info.
func (s *StudentService) List(ctx context.Context, actor *repository.User) ([]*repository.Student, error) {
	switch actor.Role {
	case repository.RoleTutor:
		return s.repos.Students.ListByTutor(ctx, actor.ID)
	case repository.RoleParent:
		email, phone := parentContact(actor)
		return s.repos.Students.ListByParentContact(ctx, email, phone)
	}
	return nil, errs.NewForbiddenError("Unknown role", false)
}

// Authorize loads a student and checks the acting user may see it.
// Used by every student-scoped service.
func (s *StudentService) Authorize(ctx context.Context, actor *repository.User, studentID int64) (*repository.Student, error) {
	student, err := s.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if !canView(actor, student) {
		return nil, errs.NewForbiddenError("You do not have access to this student", true)
	}
	return student, nil
}

// canView holds the student visibility rule. Tutors see their own and
// unowned students (ownership is nulled when a tutor account is
// deleted); parents see students matching their contact info.
func canView(actor *repository.User, student *repository.Student) bool {
	switch actor.Role {
	case repository.RoleTutor:
		return student.TutorID == nil || *student.TutorID == actor.ID
	case repository.RoleParent:
		email, phone := parentContact(actor)
		if email != "" && strings.EqualFold(student.ParentEmail, email) {
			return true
		}
		return phone != "" && student.ParentPhone == phone
	}
	return false
}

// AuthorizeWrite is Authorize restricted to the owning tutor. Parents
// get read-only access.
func (s *StudentService) AuthorizeWrite(ctx context.Context, actor *repository.User, studentID int64) (*repository.Student, error) {
	if actor.Role != repository.RoleTutor {
		return nil, errs.NewForbiddenError("Only tutors can modify student data", true)
	}
	return s.Authorize(ctx, actor, studentID)
}

// Get returns a single student the acting user may see.
func (s *StudentService) Get(ctx context.Context, actor *repository.User, studentID int64) (*repository.Student, error) {
	return s.Authorize(ctx, actor, studentID)
}

// Create adds a student owned by the acting tutor.
func (s *StudentService) Create(ctx context.Context, actor *repository.User, input StudentInput) (*repository.Student, error) {
	if actor.Role != repository.RoleTutor {
		return nil, errs.NewForbiddenError("Only tutors can add students", true)
	}

	tutorID := actor.ID
	return s.repos.Students.Create(ctx, &repository.Student{
		Name:                input.Name,
		Grade:               input.Grade,
		Curriculum:          input.Curriculum,
		TargetExam:          input.TargetExam,
		LongTermGoalSummary: input.LongTermGoalSummary,
		TutorID:             &tutorID,
		ParentEmail:         strings.ToLower(strings.TrimSpace(input.ParentEmail)),
		ParentPhone:         NormalizePhone(input.ParentPhone),
	})
}

// Update patches a student's fields.
func (s *StudentService) Update(ctx context.Context, actor *repository.User, studentID int64, patch repository.StudentPatch) (*repository.Student, error) {
	if _, err := s.AuthorizeWrite(ctx, actor, studentID); err != nil {
		return nil, err
	}

	if patch.ParentEmail != nil {
		lowered := strings.ToLower(strings.TrimSpace(*patch.ParentEmail))
		patch.ParentEmail = &lowered
	}
	if patch.ParentPhone != nil {
		normalized := NormalizePhone(*patch.ParentPhone)
		patch.ParentPhone = &normalized
	}

	student, err := s.repos.Students.Update(ctx, studentID, patch)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, studentID)
	return student, nil
}

// Delete removes a student and all dependent records.
func (s *StudentService) Delete(ctx context.Context, actor *repository.User, studentID int64) error {
	if _, err := s.AuthorizeWrite(ctx, actor, studentID); err != nil {
		return err
	}
	if err := s.repos.Students.Delete(ctx, studentID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, studentID)
	return nil
}

// parentContact extracts matchable contact values from a parent account.
func parentContact(actor *repository.User) (email, phone string) {
	if actor.Email != nil {
		email = *actor.Email
	}
	if actor.Phone != nil {
		phone = *actor.Phone
	}
	return email, phone
}
