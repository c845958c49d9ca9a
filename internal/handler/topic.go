package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/service"
	"github.com/tutorlens/tutorlens/internal/validation"
)

// TopicHandler exposes the topic graph endpoints, nested under a student.
type TopicHandler struct {
	Handler
	auth   *service.AuthService
	topics *service.TopicService
}

func NewTopicHandler(base Handler, services *service.Services) *TopicHandler {
	return &TopicHandler{
		Handler: base,
		auth:    services.Auth,
		topics:  services.Topics,
	}
}

// List returns a student's topics with mastery and confidence scores.
func (h *TopicHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *studentIDRequest) ([]*repository.Topic, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}
		return h.topics.List(c.Request().Context(), actor, req.StudentID)
	}, http.StatusOK)
}

type createTopicRequest struct {
	StudentID       int64   `param:"student_id" validate:"required,min=1"`
	TopicName       string  `json:"topic_name" validate:"required,min=2,max=120"`
	ParentTopic     string  `json:"parent_topic" validate:"omitempty,max=120"`
	MasteryScore    float64 `json:"mastery_score" validate:"gte=0,lte=100"`
	ConfidenceScore float64 `json:"confidence_score" validate:"gte=0,lte=100"`
}

func (r *createTopicRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Create adds a topic. A topic with the same name (case-insensitive)
// already on the student is returned as-is instead of duplicated.
func (h *TopicHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *createTopicRequest) (*repository.Topic, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}

		return h.topics.Create(c.Request().Context(), actor, req.StudentID, service.TopicInput{
			TopicName:       req.TopicName,
			ParentTopic:     req.ParentTopic,
			MasteryScore:    req.MasteryScore,
			ConfidenceScore: req.ConfidenceScore,
		})
	}, http.StatusCreated)
}

type updateTopicScoresRequest struct {
	StudentID       int64   `param:"student_id" validate:"required,min=1"`
	TopicID         int64   `param:"topic_id" validate:"required,min=1"`
	MasteryScore    float64 `json:"mastery_score" validate:"gte=0,lte=100"`
	ConfidenceScore float64 `json:"confidence_score" validate:"gte=0,lte=100"`
}

func (r *updateTopicScoresRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// UpdateScores overrides a topic's mastery and confidence scores. Used
// by tutors to correct the derived values after an offline assessment.
func (h *TopicHandler) UpdateScores() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *updateTopicScoresRequest) (*repository.Topic, error) {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return nil, err
		}
		return h.topics.UpdateScores(c.Request().Context(), actor, req.StudentID, req.TopicID, req.MasteryScore, req.ConfidenceScore)
	}, http.StatusOK)
}

type topicIDRequest struct {
	StudentID int64 `param:"student_id" validate:"required,min=1"`
	TopicID   int64 `param:"topic_id" validate:"required,min=1"`
}

func (r *topicIDRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Delete removes a topic.
func (h *TopicHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *topicIDRequest) error {
		actor, err := actorFromContext(c, h.auth)
		if err != nil {
			return err
		}
		return h.topics.Delete(c.Request().Context(), actor, req.StudentID, req.TopicID)
	}, http.StatusNoContent)
}
