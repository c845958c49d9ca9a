package service

import (
	"context"

	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/server"
)

// SessionService reads stored sessions. Sessions are only created
// through transcript processing; see TranscriptService.
type SessionService struct {
	server   *server.Server
	repos    *repository.Repositories
	students *StudentService
}

func NewSessionService(s *server.Server, repos *repository.Repositories, students *StudentService) *SessionService {
	return &SessionService{
		server:   s,
		repos:    repos,
		students: students,
	}
}

// List returns a student's sessions, newest first.
func (s *SessionService) List(ctx context.Context, actor *repository.User, studentID int64) ([]*repository.Session, error) {
	if _, err := s.students.Authorize(ctx, actor, studentID); err != nil {
		return nil, err
	}
	return s.repos.Sessions.ListByStudent(ctx, studentID)
}

// Get returns a single session.
func (s *SessionService) Get(ctx context.Context, actor *repository.User, studentID, sessionID int64) (*repository.Session, error) {
	if _, err := s.students.Authorize(ctx, actor, studentID); err != nil {
		return nil, err
	}

	session, err := s.repos.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.StudentID != studentID {
		return nil, wrapAsNotFound("sessions")
	}
	return session, nil
}
