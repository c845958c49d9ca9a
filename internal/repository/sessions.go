package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tutorlens/tutorlens/internal/server"
)

// Session types.
const (
	SessionTypeTrial   = "trial"
	SessionTypeSession = "session"
)

// Session is a stored transcript plus the analysis derived from it.
// TranscriptText is immutable once written; the detected fields hold
// derived output and may be rewritten by reprocessing.
type Session struct {
	ID                     int64     `json:"id"`
	StudentID              int64     `json:"student_id"`
	TranscriptText         string    `json:"transcript_text"`
	SessionType            string    `json:"session_type"`
	SessionDate            time.Time `json:"session_date"`
	ExtractedSummary       string    `json:"extracted_summary"`
	DetectedTopics         []string  `json:"detected_topics"`
	DetectedMisconceptions []string  `json:"detected_misconceptions"`
	DetectedStrengths      []string  `json:"detected_strengths"`
	EngagementScore        *float64  `json:"engagement_score"`
	ParentSummary          string    `json:"parent_summary"`
	TutorInsight           string    `json:"tutor_insight"`
	RecommendedNext        string    `json:"recommended_next"`
	CreatedAt              time.Time `json:"created_at"`
}

// SessionsRepository persists session transcripts and their analysis.
type SessionsRepository struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

func NewSessionsRepository(s *server.Server) *SessionsRepository {
	return &SessionsRepository{pool: s.DB.Pool, log: s.Logger}
}

const sessionColumns = `id, student_id, transcript_text, session_type, session_date,
	extracted_summary, detected_topics, detected_misconceptions, detected_strengths,
	engagement_score, parent_summary, tutor_insight, recommended_next, created_at`

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.StudentID, &s.TranscriptText, &s.SessionType, &s.SessionDate,
		&s.ExtractedSummary, &s.DetectedTopics, &s.DetectedMisconceptions, &s.DetectedStrengths,
		&s.EngagementScore, &s.ParentSummary, &s.TutorInsight, &s.RecommendedNext, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a session with its derived analysis in one write. The
// detected_* slices go to JSONB columns.
func (r *SessionsRepository) Create(ctx context.Context, s *Session) (*Session, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO sessions (student_id, transcript_text, session_type, session_date,
			extracted_summary, detected_topics, detected_misconceptions, detected_strengths,
			engagement_score, parent_summary, tutor_insight, recommended_next)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+sessionColumns,
		s.StudentID, s.TranscriptText, s.SessionType, s.SessionDate,
		s.ExtractedSummary, s.DetectedTopics, s.DetectedMisconceptions, s.DetectedStrengths,
		s.EngagementScore, s.ParentSummary, s.TutorInsight, s.RecommendedNext,
	)
	return scanSession(row)
}

func (r *SessionsRepository) GetByID(ctx context.Context, id int64) (*Session, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	s, err := scanSession(row)
	if err != nil {
		return nil, wrapNotFound(err, "sessions")
	}
	return s, nil
}

// ListByStudent returns a student's sessions, newest first.
func (r *SessionsRepository) ListByStudent(ctx context.Context, studentID int64) ([]*Session, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+` FROM sessions
		WHERE student_id = $1
		ORDER BY session_date DESC, id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListRecentByStudent returns up to limit most recent sessions, newest
// first. Used for dashboard engagement trends.
func (r *SessionsRepository) ListRecentByStudent(ctx context.Context, studentID int64, limit int) ([]*Session, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+` FROM sessions
		WHERE student_id = $1
		ORDER BY session_date DESC, id DESC
		LIMIT $2`, studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CountByStudent returns how many sessions a student has on record.
func (r *SessionsRepository) CountByStudent(ctx context.Context, studentID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM sessions WHERE student_id = $1`, studentID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
