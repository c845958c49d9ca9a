package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tutorlens/tutorlens/internal/server"
)

// Goal statuses.
const (
	GoalStatusNotStarted = "not started"
	GoalStatusInProgress = "in progress"
	GoalStatusAchieved   = "achieved"
)

// Goal is a learning goal for a student, either entered by the tutor or
// extracted from a trial transcript.
type Goal struct {
	ID                int64      `json:"id"`
	StudentID         int64      `json:"student_id"`
	Description       string     `json:"description"`
	MeasurableOutcome string     `json:"measurable_outcome"`
	Deadline          *time.Time `json:"deadline"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
}

// GoalPatch holds optional field updates; nil fields are left as-is.
type GoalPatch struct {
	Description       *string
	MeasurableOutcome *string
	Deadline          *time.Time
	Status            *string
}

// GoalsRepository persists learning goals.
type GoalsRepository struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

func NewGoalsRepository(s *server.Server) *GoalsRepository {
	return &GoalsRepository{pool: s.DB.Pool, log: s.Logger}
}

const goalColumns = "id, student_id, description, measurable_outcome, deadline, status, created_at"

func scanGoal(row pgx.Row) (*Goal, error) {
	var g Goal
	err := row.Scan(&g.ID, &g.StudentID, &g.Description, &g.MeasurableOutcome,
		&g.Deadline, &g.Status, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserts a goal. An empty status defaults at the database level.
func (r *GoalsRepository) Create(ctx context.Context, g *Goal) (*Goal, error) {
	status := g.Status
	if status == "" {
		status = GoalStatusNotStarted
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO goals (student_id, description, measurable_outcome, deadline, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+goalColumns,
		g.StudentID, g.Description, g.MeasurableOutcome, g.Deadline, status,
	)
	return scanGoal(row)
}

func (r *GoalsRepository) GetByID(ctx context.Context, id int64) (*Goal, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1`, id)
	g, err := scanGoal(row)
	if err != nil {
		return nil, wrapNotFound(err, "goals")
	}
	return g, nil
}

// ListByStudent returns a student's goals, oldest first so goal order is
// stable across reads.
func (r *GoalsRepository) ListByStudent(ctx context.Context, studentID int64) ([]*Goal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+goalColumns+` FROM goals
		WHERE student_id = $1
		ORDER BY created_at ASC, id ASC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// Update applies non-nil patch fields and returns the updated row.
func (r *GoalsRepository) Update(ctx context.Context, id int64, patch GoalPatch) (*Goal, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE goals SET
			description = COALESCE($2, description),
			measurable_outcome = COALESCE($3, measurable_outcome),
			deadline = COALESCE($4, deadline),
			status = COALESCE($5, status)
		WHERE id = $1
		RETURNING `+goalColumns,
		id, patch.Description, patch.MeasurableOutcome, patch.Deadline, patch.Status,
	)
	g, err := scanGoal(row)
	if err != nil {
		return nil, wrapNotFound(err, "goals")
	}
	return g, nil
}

func (r *GoalsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return wrapNotFound(pgx.ErrNoRows, "goals")
	}
	return nil
}
