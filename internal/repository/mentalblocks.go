package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tutorlens/tutorlens/internal/server"
)

// MentalBlock is a recurring confusion or negative pattern detected
// across sessions. Frequency counts how many sessions surfaced it;
// severity is recomputed on every recurrence.
type MentalBlock struct {
	ID             int64     `json:"id"`
	StudentID      int64     `json:"student_id"`
	Description    string    `json:"description"`
	FirstDetected  time.Time `json:"first_detected"`
	FrequencyCount int       `json:"frequency_count"`
	SeverityScore  float64   `json:"severity_score"`
	Resolved       bool      `json:"resolved"`
	CreatedAt      time.Time `json:"created_at"`
}

// MentalBlocksRepository persists mental block records.
type MentalBlocksRepository struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

func NewMentalBlocksRepository(s *server.Server) *MentalBlocksRepository {
	return &MentalBlocksRepository{pool: s.DB.Pool, log: s.Logger}
}

const mentalBlockColumns = `id, student_id, description, first_detected, frequency_count,
	severity_score, resolved, created_at`

func scanMentalBlock(row pgx.Row) (*MentalBlock, error) {
	var b MentalBlock
	err := row.Scan(&b.ID, &b.StudentID, &b.Description, &b.FirstDetected,
		&b.FrequencyCount, &b.SeverityScore, &b.Resolved, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new mental block with frequency 1.
func (r *MentalBlocksRepository) Create(ctx context.Context, b *MentalBlock) (*MentalBlock, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO mental_blocks (student_id, description, first_detected, frequency_count, severity_score)
		VALUES ($1, $2, $3, 1, $4)
		RETURNING `+mentalBlockColumns,
		b.StudentID, b.Description, b.FirstDetected, b.SeverityScore,
	)
	return scanMentalBlock(row)
}

func (r *MentalBlocksRepository) GetByID(ctx context.Context, id int64) (*MentalBlock, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+mentalBlockColumns+` FROM mental_blocks WHERE id = $1`, id)
	b, err := scanMentalBlock(row)
	if err != nil {
		return nil, wrapNotFound(err, "mental_blocks")
	}
	return b, nil
}

// ListByStudent returns a student's mental blocks, unresolved first,
// most severe first within each group.
func (r *MentalBlocksRepository) ListByStudent(ctx context.Context, studentID int64, includeResolved bool) ([]*MentalBlock, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+mentalBlockColumns+` FROM mental_blocks
		WHERE student_id = $1 AND (resolved = false OR $2)
		ORDER BY resolved ASC, severity_score DESC, id ASC`, studentID, includeResolved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*MentalBlock
	for rows.Next() {
		b, err := scanMentalBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// FindUnresolvedMatching finds an unresolved block whose description
// matches the given pattern (SQL LIKE, case-insensitive). Used to fold
// recurring signals into the existing block instead of creating
// duplicates.
func (r *MentalBlocksRepository) FindUnresolvedMatching(ctx context.Context, studentID int64, pattern string) (*MentalBlock, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+mentalBlockColumns+` FROM mental_blocks
		WHERE student_id = $1 AND resolved = false AND description ILIKE $2
		ORDER BY id ASC
		LIMIT 1`, studentID, pattern)
	b, err := scanMentalBlock(row)
	if err != nil {
		return nil, wrapNotFound(err, "mental_blocks")
	}
	return b, nil
}

// Recur increments the block's frequency and writes its recomputed
// severity.
func (r *MentalBlocksRepository) Recur(ctx context.Context, id int64, severity float64) (*MentalBlock, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE mental_blocks
		SET frequency_count = frequency_count + 1, severity_score = $2
		WHERE id = $1
		RETURNING `+mentalBlockColumns,
		id, severity,
	)
	b, err := scanMentalBlock(row)
	if err != nil {
		return nil, wrapNotFound(err, "mental_blocks")
	}
	return b, nil
}

// Resolve marks a block resolved. Resolving an already resolved block is
// a no-op that still returns the row.
func (r *MentalBlocksRepository) Resolve(ctx context.Context, id int64) (*MentalBlock, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE mental_blocks SET resolved = true
		WHERE id = $1
		RETURNING `+mentalBlockColumns,
		id,
	)
	b, err := scanMentalBlock(row)
	if err != nil {
		return nil, wrapNotFound(err, "mental_blocks")
	}
	return b, nil
}
