package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tutorlens/tutorlens/internal/server"
)

// Student is a tutored student. TutorID links the owning tutor account;
// parent contact is denormalized so parents can be matched before they
// ever create an account.
type Student struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Grade               string    `json:"grade"`
	Curriculum          string    `json:"curriculum"`
	TargetExam          string    `json:"target_exam"`
	LongTermGoalSummary string    `json:"long_term_goal_summary"`
	TutorID             *int64    `json:"tutor_id"`
	ParentEmail         string    `json:"parent_email"`
	ParentPhone         string    `json:"parent_phone"`
	CreatedAt           time.Time `json:"created_at"`
}

// StudentPatch holds optional field updates; nil fields are left as-is.
type StudentPatch struct {
	Name                *string
	Grade               *string
	Curriculum          *string
	TargetExam          *string
	LongTermGoalSummary *string
	ParentEmail         *string
	ParentPhone         *string
}

// StudentsRepository persists student records.
type StudentsRepository struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

func NewStudentsRepository(s *server.Server) *StudentsRepository {
	return &StudentsRepository{pool: s.DB.Pool, log: s.Logger}
}

const studentColumns = `id, name, grade, curriculum, target_exam, long_term_goal_summary,
	tutor_id, parent_email, parent_phone, created_at`

func scanStudent(row pgx.Row) (*Student, error) {
	var s Student
	err := row.Scan(&s.ID, &s.Name, &s.Grade, &s.Curriculum, &s.TargetExam,
		&s.LongTermGoalSummary, &s.TutorID, &s.ParentEmail, &s.ParentPhone, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentsRepository) collect(rows pgx.Rows) ([]*Student, error) {
	defer rows.Close()
	var students []*Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Create inserts a student and returns it with generated fields populated.
func (r *StudentsRepository) Create(ctx context.Context, s *Student) (*Student, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO students (name, grade, curriculum, target_exam, long_term_goal_summary,
			tutor_id, parent_email, parent_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+studentColumns,
		s.Name, s.Grade, s.Curriculum, s.TargetExam, s.LongTermGoalSummary,
		s.TutorID, s.ParentEmail, s.ParentPhone,
	)
	return scanStudent(row)
}

func (r *StudentsRepository) GetByID(ctx context.Context, id int64) (*Student, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	s, err := scanStudent(row)
	if err != nil {
		return nil, wrapNotFound(err, "students")
	}
	return s, nil
}

// ListByTutor returns the students owned by a tutor, newest first.
// Unowned students are included so rosters survive a tutor account
// deletion (the FK sets tutor_id to NULL).
func (r *StudentsRepository) ListByTutor(ctx context.Context, tutorID int64) ([]*Student, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+studentColumns+` FROM students
		WHERE tutor_id = $1 OR tutor_id IS NULL
		ORDER BY created_at DESC`, tutorID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// ListByParentContact returns students whose parent email or phone
// matches the given contact values. Either value may be empty.
func (r *StudentsRepository) ListByParentContact(ctx context.Context, email, phone string) ([]*Student, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+studentColumns+` FROM students
		WHERE (lower(parent_email) = lower($1) AND $1 <> '')
		   OR (parent_phone = $2 AND $2 <> '')
		ORDER BY created_at DESC`, email, phone)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// Update applies non-nil patch fields and returns the updated row.
func (r *StudentsRepository) Update(ctx context.Context, id int64, patch StudentPatch) (*Student, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE students SET
			name = COALESCE($2, name),
			grade = COALESCE($3, grade),
			curriculum = COALESCE($4, curriculum),
			target_exam = COALESCE($5, target_exam),
			long_term_goal_summary = COALESCE($6, long_term_goal_summary),
			parent_email = COALESCE($7, parent_email),
			parent_phone = COALESCE($8, parent_phone)
		WHERE id = $1
		RETURNING `+studentColumns,
		id, patch.Name, patch.Grade, patch.Curriculum, patch.TargetExam,
		patch.LongTermGoalSummary, patch.ParentEmail, patch.ParentPhone,
	)
	s, err := scanStudent(row)
	if err != nil {
		return nil, wrapNotFound(err, "students")
	}
	return s, nil
}

// SetCurriculum writes the curriculum recommendation derived from a
// trial transcript. Each trial overwrites the previous recommendation.
func (r *StudentsRepository) SetCurriculum(ctx context.Context, id int64, curriculum string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE students SET curriculum = $2
		WHERE id = $1`, id, curriculum)
	return err
}

// Delete removes a student. Goals, topics, sessions and mental blocks
// cascade at the database level.
func (r *StudentsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return wrapNotFound(pgx.ErrNoRows, "students")
	}
	return nil
}
