package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tutorlens/tutorlens/internal/server"
)

// User roles. Tutors own students; parents see read-only progress for
// students linked by parent contact.
const (
	RoleTutor  = "tutor"
	RoleParent = "parent"
)

// User is an authenticated account, either a tutor or a parent.
type User struct {
	ID           int64     `json:"id"`
	Email        *string   `json:"email"`
	GoogleID     *string   `json:"-"`
	PasswordHash *string   `json:"-"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}

// UsersRepository persists user accounts.
type UsersRepository struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

func NewUsersRepository(s *server.Server) *UsersRepository {
	return &UsersRepository{pool: s.DB.Pool, log: s.Logger}
}

const userColumns = "id, email, google_id, password_hash, role, name, phone, created_at"

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.GoogleID, &u.PasswordHash, &u.Role, &u.Name, &u.Phone, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user and returns it with generated fields populated.
func (r *UsersRepository) Create(ctx context.Context, u *User) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, google_id, password_hash, role, name, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		u.Email, u.GoogleID, u.PasswordHash, u.Role, u.Name, u.Phone,
	)
	return scanUser(row)
}

func (r *UsersRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapNotFound(err, "users")
	}
	return u, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapNotFound(err, "users")
	}
	return u, nil
}

func (r *UsersRepository) GetByGoogleID(ctx context.Context, googleID string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapNotFound(err, "users")
	}
	return u, nil
}

func (r *UsersRepository) GetByPhone(ctx context.Context, phone string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapNotFound(err, "users")
	}
	return u, nil
}

// UpdateProfile updates the mutable profile fields of a user.
func (r *UsersRepository) UpdateProfile(ctx context.Context, id int64, name string, phone *string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET name = $2, phone = $3
		WHERE id = $1
		RETURNING `+userColumns,
		id, name, phone,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapNotFound(err, "users")
	}
	return u, nil
}

// wrapNotFound tags pgx.ErrNoRows with the table name so the API layer
// can report which entity was missing. Other errors pass through.
func wrapNotFound(err error, table string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("table:%s: %w", table, err)
	}
	return err
}
