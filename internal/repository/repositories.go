package repository

import (
	"github.com/tutorlens/tutorlens/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users        *UsersRepository
	Students     *StudentsRepository
	Goals        *GoalsRepository
	Topics       *TopicsRepository
	Sessions     *SessionsRepository
	MentalBlocks *MentalBlocksRepository
}

// NewRepositories constructs the repository container from the shared
// server resources (DB pool on s.DB, logger on s.Logger).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:        NewUsersRepository(s),
		Students:     NewStudentsRepository(s),
		Goals:        NewGoalsRepository(s),
		Topics:       NewTopicsRepository(s),
		Sessions:     NewSessionsRepository(s),
		MentalBlocks: NewMentalBlocksRepository(s),
	}
}
