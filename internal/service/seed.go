package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tutorlens/tutorlens/internal/errs"
	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/server"
)

// SeedService populates sample data for development. Only available in
// the local environment.
type SeedService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewSeedService(s *server.Server, repos *repository.Repositories) *SeedService {
	return &SeedService{
		server: s,
		repos:  repos,
	}
}

// SeedResult reports what the seed created.
type SeedResult struct {
	AlreadySeeded bool   `json:"already_seeded"`
	TutorEmail    string `json:"tutor_email,omitempty"`
	StudentID     int64  `json:"student_id,omitempty"`
}

// Seed inserts a sample tutor, student, goals and a hierarchical topic
// graph. A second call is a no-op once the tutor account exists.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	if s.server.Config.Primary.Env != "local" {
		return nil, errs.NewForbiddenError("Seeding is only available in the local environment", true)
	}

	const tutorEmail = "tutor@tutorlens.dev"
	if _, err := s.repos.Users.GetByEmail(ctx, tutorEmail); err == nil {
		s.server.Logger.Info().Msg("Database already seeded")
		return &SeedResult{AlreadySeeded: true}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("tutorlens-local"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)
	email := tutorEmail
	tutor, err := s.repos.Users.Create(ctx, &repository.User{
		Email:        &email,
		PasswordHash: &hashStr,
		Role:         repository.RoleTutor,
		Name:         "Priya Sharma",
	})
	if err != nil {
		return nil, err
	}

	student, err := s.repos.Students.Create(ctx, &repository.Student{
		Name:                "Arjun Mehta",
		Grade:               "8th Grade",
		Curriculum:          "Common Core + AMC Prep",
		TargetExam:          "AMC 8",
		LongTermGoalSummary: "Score in top 5% on AMC 8 and build strong algebra foundation",
		TutorID:             &tutor.ID,
		ParentEmail:         "mehta.family@example.com",
		ParentPhone:         "+15551230042",
	})
	if err != nil {
		return nil, err
	}

	if err := s.seedGoals(ctx, student.ID); err != nil {
		return nil, err
	}
	if err := s.seedTopics(ctx, student.ID); err != nil {
		return nil, err
	}

	s.server.Logger.Info().
		Int64("student_id", student.ID).
		Msg("Seeded sample student with goals and topics")

	return &SeedResult{TutorEmail: tutorEmail, StudentID: student.ID}, nil
}

func (s *SeedService) seedGoals(ctx context.Context, studentID int64) error {
	type seedGoal struct {
		desc, outcome, deadline, status string
	}
	goals := []seedGoal{
		{"Master algebraic expressions and equations", "Score 90%+ on algebra unit test", "2026-06-01", repository.GoalStatusInProgress},
		{"Build mental math speed", "Complete 20-problem set in under 10 minutes", "2026-04-01", repository.GoalStatusInProgress},
		{"Prepare for AMC 8 competition", "Score 20+ on practice AMC 8", "2026-11-01", repository.GoalStatusNotStarted},
		{"Overcome fraction/decimal confusion", "Zero errors on mixed operations quiz", "2026-05-01", repository.GoalStatusInProgress},
	}

	for _, g := range goals {
		deadline, err := time.Parse("2006-01-02", g.deadline)
		if err != nil {
			return err
		}
		if _, err := s.repos.Goals.Create(ctx, &repository.Goal{
			StudentID:         studentID,
			Description:       g.desc,
			MeasurableOutcome: g.outcome,
			Deadline:          &deadline,
			Status:            g.status,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *SeedService) seedTopics(ctx context.Context, studentID int64) error {
	type seedTopic struct {
		name                string
		mastery, confidence float64
	}

	parents := []seedTopic{
		{"Algebra", 45, 40},
		{"Number Sense", 60, 55},
		{"Geometry", 35, 30},
		{"Word Problems", 50, 45},
	}
	parentIDs := make(map[string]int64, len(parents))
	for _, p := range parents {
		topic, err := s.repos.Topics.Create(ctx, &repository.Topic{
			StudentID:       studentID,
			TopicName:       p.name,
			MasteryScore:    p.mastery,
			ConfidenceScore: p.confidence,
		})
		if err != nil {
			return err
		}
		parentIDs[p.name] = topic.ID
	}

	type seedSubTopic struct {
		name, parent        string
		mastery, confidence float64
	}
	subtopics := []seedSubTopic{
		{"Linear Equations", "Algebra", 50, 45},
		{"Expressions & Simplification", "Algebra", 55, 50},
		{"Inequalities", "Algebra", 30, 25},
		{"Fractions", "Number Sense", 40, 35},
		{"Decimals", "Number Sense", 65, 60},
		{"Ratios & Proportions", "Number Sense", 70, 65},
		{"Angles & Triangles", "Geometry", 40, 35},
		{"Area & Perimeter", "Geometry", 30, 25},
		{"Rate Problems", "Word Problems", 55, 50},
		{"Age Problems", "Word Problems", 45, 40},
	}
	for _, sub := range subtopics {
		parentID := parentIDs[sub.parent]
		if _, err := s.repos.Topics.Create(ctx, &repository.Topic{
			StudentID:       studentID,
			TopicName:       sub.name,
			ParentTopicID:   &parentID,
			MasteryScore:    sub.mastery,
			ConfidenceScore: sub.confidence,
		}); err != nil {
			return err
		}
	}
	return nil
}
