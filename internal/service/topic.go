package service

import (
	"context"

	"github.com/tutorlens/tutorlens/internal/errs"
	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/server"
)

// TopicService manages student topics and their scores.
type TopicService struct {
	server   *server.Server
	repos    *repository.Repositories
	students *StudentService
	cache    *dashboardCache
}

func NewTopicService(s *server.Server, repos *repository.Repositories, students *StudentService, cache *dashboardCache) *TopicService {
	return &TopicService{
		server:   s,
		repos:    repos,
		students: students,
		cache:    cache,
	}
}

// TopicInput carries the fields accepted on topic create. ParentTopic
// names an existing or new parent topic for the same student.
type TopicInput struct {
	TopicName       string
	ParentTopic     string
	MasteryScore    float64
	ConfidenceScore float64
}

// List returns a student's topics.
func (s *TopicService) List(ctx context.Context, actor *repository.User, studentID int64) ([]*repository.Topic, error) {
	if _, err := s.students.Authorize(ctx, actor, studentID); err != nil {
		return nil, err
	}
	return s.repos.Topics.ListByStudent(ctx, studentID)
}

// Create adds a topic, creating the named parent topic first when it
// does not exist yet. Creating an existing topic name returns the
// existing row unchanged.
func (s *TopicService) Create(ctx context.Context, actor *repository.User, studentID int64, input TopicInput) (*repository.Topic, error) {
	if _, err := s.students.AuthorizeWrite(ctx, actor, studentID); err != nil {
		return nil, err
	}

	if existing, err := s.repos.Topics.GetByName(ctx, studentID, input.TopicName); err == nil {
		return existing, nil
	}

	var parentID *int64
	if input.ParentTopic != "" {
		parent, err := s.ensureTopic(ctx, studentID, input.ParentTopic)
		if err != nil {
			return nil, err
		}
		parentID = &parent.ID
	}

	topic, err := s.repos.Topics.Create(ctx, &repository.Topic{
		StudentID:       studentID,
		TopicName:       input.TopicName,
		ParentTopicID:   parentID,
		MasteryScore:    input.MasteryScore,
		ConfidenceScore: input.ConfidenceScore,
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, studentID)
	return topic, nil
}

// UpdateScores sets a topic's mastery and confidence directly. Scores
// must already be validated to [0, 100] by the handler.
func (s *TopicService) UpdateScores(ctx context.Context, actor *repository.User, studentID, topicID int64, mastery, confidence float64) (*repository.Topic, error) {
	if _, err := s.students.AuthorizeWrite(ctx, actor, studentID); err != nil {
		return nil, err
	}
	if mastery < 0 || mastery > 100 || confidence < 0 || confidence > 100 {
		return nil, errs.NewBadRequestError("Scores must be between 0 and 100", true, nil, nil, nil)
	}
	if _, err := s.ownedTopic(ctx, studentID, topicID); err != nil {
		return nil, err
	}

	topic, err := s.repos.Topics.UpdateScores(ctx, topicID, mastery, confidence)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, studentID)
	return topic, nil
}

// Delete removes a topic. Child topics survive with their parent link
// cleared at the database level.
func (s *TopicService) Delete(ctx context.Context, actor *repository.User, studentID, topicID int64) error {
	if _, err := s.students.AuthorizeWrite(ctx, actor, studentID); err != nil {
		return err
	}
	if _, err := s.ownedTopic(ctx, studentID, topicID); err != nil {
		return err
	}

	if err := s.repos.Topics.Delete(ctx, topicID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, studentID)
	return nil
}

// ensureTopic returns the student's topic with the given name, creating
// it with zero scores when missing. Shared with transcript ingestion.
func (s *TopicService) ensureTopic(ctx context.Context, studentID int64, name string) (*repository.Topic, error) {
	if topic, err := s.repos.Topics.GetByName(ctx, studentID, name); err == nil {
		return topic, nil
	}
	return s.repos.Topics.Create(ctx, &repository.Topic{
		StudentID: studentID,
		TopicName: name,
	})
}

func (s *TopicService) ownedTopic(ctx context.Context, studentID, topicID int64) (*repository.Topic, error) {
	topic, err := s.repos.Topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic.StudentID != studentID {
		return nil, wrapAsNotFound("topics")
	}
	return topic, nil
}
