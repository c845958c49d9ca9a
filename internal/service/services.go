package service

import (
	"github.com/tutorlens/tutorlens/internal/lib/analysis"
	"github.com/tutorlens/tutorlens/internal/lib/job"
	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/server"
)

// Services is a container for all service instances.
type Services struct {
	Auth         *AuthService
	Students     *StudentService
	Goals        *GoalService
	Topics       *TopicService
	Sessions     *SessionService
	MentalBlocks *MentalBlockService
	Dashboard    *DashboardService
	Transcripts  *TranscriptService
	Seed         *SeedService
	Job          *job.JobService
}

// NewService wires the service layer together.
//
// The dashboard cache is shared: DashboardService reads through it, and
// every service that mutates student-scoped data invalidates it.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	cache := newDashboardCache(s)
	processor := analysis.NewRuleBasedProcessor()

	authService := NewAuthService(s, repos)
	studentService := NewStudentService(s, repos, cache)
	goalService := NewGoalService(s, repos, studentService, cache)
	topicService := NewTopicService(s, repos, studentService, cache)
	sessionService := NewSessionService(s, repos, studentService)
	mentalBlockService := NewMentalBlockService(s, repos, studentService, cache)
	dashboardService := NewDashboardService(s, repos, studentService, cache)
	transcriptService := NewTranscriptService(s, repos, studentService, processor, cache)
	seedService := NewSeedService(s, repos)

	return &Services{
		Auth:         authService,
		Students:     studentService,
		Goals:        goalService,
		Topics:       topicService,
		Sessions:     sessionService,
		MentalBlocks: mentalBlockService,
		Dashboard:    dashboardService,
		Transcripts:  transcriptService,
		Seed:         seedService,
		Job:          s.Job,
	}, nil
}
