package service

import (
	"context"
	"time"

	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/server"
)

// GoalService manages learning goals.
type GoalService struct {
	server   *server.Server
	repos    *repository.Repositories
	students *StudentService
	cache    *dashboardCache
}

func NewGoalService(s *server.Server, repos *repository.Repositories, students *StudentService, cache *dashboardCache) *GoalService {
	return &GoalService{
		server:   s,
		repos:    repos,
		students: students,
		cache:    cache,
	}
}

// GoalInput carries the fields accepted on goal create.
type GoalInput struct {
	Description       string
	MeasurableOutcome string
	Deadline          *time.Time
	Status            string
}

// List returns a student's goals.
func (s *GoalService) List(ctx context.Context, actor *repository.User, studentID int64) ([]*repository.Goal, error) {
	if _, err := s.students.Authorize(ctx, actor, studentID); err != nil {
		return nil, err
	}
	return s.repos.Goals.ListByStudent(ctx, studentID)
}

// Create adds a goal to a student.
func (s *GoalService) Create(ctx context.Context, actor *repository.User, studentID int64, input GoalInput) (*repository.Goal, error) {
	if _, err := s.students.AuthorizeWrite(ctx, actor, studentID); err != nil {
		return nil, err
	}

	goal, err := s.repos.Goals.Create(ctx, &repository.Goal{
		StudentID:         studentID,
		Description:       input.Description,
		MeasurableOutcome: input.MeasurableOutcome,
		Deadline:          input.Deadline,
		Status:            input.Status,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, studentID)
	return goal, nil
}

// Update patches a goal. The goal must belong to the given student; a
// mismatched pair is treated as not found.
func (s *GoalService) Update(ctx context.Context, actor *repository.User, studentID, goalID int64, patch repository.GoalPatch) (*repository.Goal, error) {
	if _, err := s.students.AuthorizeWrite(ctx, actor, studentID); err != nil {
		return nil, err
	}
	if _, err := s.ownedGoal(ctx, studentID, goalID); err != nil {
		return nil, err
	}

	goal, err := s.repos.Goals.Update(ctx, goalID, patch)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, studentID)
	return goal, nil
}

// Delete removes a goal.
func (s *GoalService) Delete(ctx context.Context, actor *repository.User, studentID, goalID int64) error {
	if _, err := s.students.AuthorizeWrite(ctx, actor, studentID); err != nil {
		return err
	}
	if _, err := s.ownedGoal(ctx, studentID, goalID); err != nil {
		return err
	}

	if err := s.repos.Goals.Delete(ctx, goalID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, studentID)
	return nil
}

func (s *GoalService) ownedGoal(ctx context.Context, studentID, goalID int64) (*repository.Goal, error) {
	goal, err := s.repos.Goals.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.StudentID != studentID {
		return nil, wrapAsNotFound("goals")
	}
	return goal, nil
}
