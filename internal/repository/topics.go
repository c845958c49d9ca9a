package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tutorlens/tutorlens/internal/server"
)

// Topic is a per-student skill node with mastery and confidence scores.
// ParentTopicID forms a shallow hierarchy (e.g. Linear Equations under
// Algebra).
type Topic struct {
	ID              int64     `json:"id"`
	StudentID       int64     `json:"student_id"`
	TopicName       string    `json:"topic_name"`
	ParentTopicID   *int64    `json:"parent_topic_id"`
	MasteryScore    float64   `json:"mastery_score"`
	ConfidenceScore float64   `json:"confidence_score"`
	CreatedAt       time.Time `json:"created_at"`
}

// TopicsRepository persists student topics.
type TopicsRepository struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

func NewTopicsRepository(s *server.Server) *TopicsRepository {
	return &TopicsRepository{pool: s.DB.Pool, log: s.Logger}
}

const topicColumns = "id, student_id, topic_name, parent_topic_id, mastery_score, confidence_score, created_at"

func scanTopic(row pgx.Row) (*Topic, error) {
	var t Topic
	err := row.Scan(&t.ID, &t.StudentID, &t.TopicName, &t.ParentTopicID,
		&t.MasteryScore, &t.ConfidenceScore, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a topic and returns it with generated fields populated.
func (r *TopicsRepository) Create(ctx context.Context, t *Topic) (*Topic, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO topics (student_id, topic_name, parent_topic_id, mastery_score, confidence_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+topicColumns,
		t.StudentID, t.TopicName, t.ParentTopicID, t.MasteryScore, t.ConfidenceScore,
	)
	return scanTopic(row)
}

func (r *TopicsRepository) GetByID(ctx context.Context, id int64) (*Topic, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+topicColumns+` FROM topics WHERE id = $1`, id)
	t, err := scanTopic(row)
	if err != nil {
		return nil, wrapNotFound(err, "topics")
	}
	return t, nil
}

// GetByName finds a student's topic by exact name, case-insensitive.
// Used to dedupe topics detected across transcripts.
func (r *TopicsRepository) GetByName(ctx context.Context, studentID int64, name string) (*Topic, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+topicColumns+` FROM topics
		WHERE student_id = $1 AND lower(topic_name) = lower($2)`, studentID, name)
	t, err := scanTopic(row)
	if err != nil {
		return nil, wrapNotFound(err, "topics")
	}
	return t, nil
}

// ListByStudent returns a student's topics ordered by name.
func (r *TopicsRepository) ListByStudent(ctx context.Context, studentID int64) ([]*Topic, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+topicColumns+` FROM topics
		WHERE student_id = $1
		ORDER BY topic_name ASC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []*Topic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// UpdateScores writes recomputed mastery and confidence scores.
func (r *TopicsRepository) UpdateScores(ctx context.Context, id int64, mastery, confidence float64) (*Topic, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE topics SET mastery_score = $2, confidence_score = $3
		WHERE id = $1
		RETURNING `+topicColumns,
		id, mastery, confidence,
	)
	t, err := scanTopic(row)
	if err != nil {
		return nil, wrapNotFound(err, "topics")
	}
	return t, nil
}

func (r *TopicsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return wrapNotFound(pgx.ErrNoRows, "topics")
	}
	return nil
}
