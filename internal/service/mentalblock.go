package service

import (
	"context"

	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/server"
)

// MentalBlockService reads and resolves mental blocks. Blocks are
// created and escalated by transcript processing.
type MentalBlockService struct {
	server   *server.Server
	repos    *repository.Repositories
	students *StudentService
	cache    *dashboardCache
}

func NewMentalBlockService(s *server.Server, repos *repository.Repositories, students *StudentService, cache *dashboardCache) *MentalBlockService {
	return &MentalBlockService{
		server:   s,
		repos:    repos,
		students: students,
		cache:    cache,
	}
}

// List returns a student's mental blocks, unresolved first.
func (s *MentalBlockService) List(ctx context.Context, actor *repository.User, studentID int64, includeResolved bool) ([]*repository.MentalBlock, error) {
	if _, err := s.students.Authorize(ctx, actor, studentID); err != nil {
		return nil, err
	}
	return s.repos.MentalBlocks.ListByStudent(ctx, studentID, includeResolved)
}

// Resolve marks a block resolved. Only the owning tutor can resolve.
func (s *MentalBlockService) Resolve(ctx context.Context, actor *repository.User, studentID, blockID int64) (*repository.MentalBlock, error) {
	if _, err := s.students.AuthorizeWrite(ctx, actor, studentID); err != nil {
		return nil, err
	}

	block, err := s.repos.MentalBlocks.GetByID(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if block.StudentID != studentID {
		return nil, wrapAsNotFound("mental_blocks")
	}

	resolved, err := s.repos.MentalBlocks.Resolve(ctx, blockID)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, studentID)
	return resolved, nil
}
