package handler

import (
	"github.com/tutorlens/tutorlens/internal/server"
	"github.com/tutorlens/tutorlens/internal/service"
)

// Handlers is a container for all route handlers.
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Students     *StudentHandler
	Goals        *GoalHandler
	Topics       *TopicHandler
	Sessions     *SessionHandler
	MentalBlocks *MentalBlockHandler
	Dashboard    *DashboardHandler
	Transcripts  *TranscriptHandler
	Seed         *SeedHandler
	OpenAPI      *OpenAPIHandler
}

// NewHandlers constructs the handler layer on top of the service layer.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	base := NewHandler(s)

	return &Handlers{
		Health:       NewHealthHandler(s),
		Auth:         NewAuthHandler(base, services),
		Students:     NewStudentHandler(base, services),
		Goals:        NewGoalHandler(base, services),
		Topics:       NewTopicHandler(base, services),
		Sessions:     NewSessionHandler(base, services),
		MentalBlocks: NewMentalBlockHandler(base, services),
		Dashboard:    NewDashboardHandler(base, services),
		Transcripts:  NewTranscriptHandler(base, services),
		Seed:         NewSeedHandler(base, services),
		OpenAPI:      NewOpenAPIHandler(s),
	}
}
