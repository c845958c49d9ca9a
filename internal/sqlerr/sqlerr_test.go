package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tutorlens/tutorlens/internal/errs"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		sqlstate string
		want     Code
	}{
		{"23503", ForeignKeyViolation},
		{"23505", UniqueViolation},
		{"23502", NotNullViolation},
		{"23514", CheckViolation},
		{"08006", ConnectionFailure},
		{"42601", Other},
		{"", Other},
	}

	for _, tt := range tests {
		if got := MapCode(tt.sqlstate); got != tt.want {
			t.Errorf("MapCode(%q) = %v, want %v", tt.sqlstate, got, tt.want)
		}
	}
}

func TestHandleError_foreignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		Severity:   "ERROR",
		Message:    "insert or update on table \"goals\" violates foreign key constraint",
		TableName:  "goals",
		ColumnName: "student_id",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", httpErr.Status)
	}
	if httpErr.Message != "The referenced Student does not exist" {
		t.Errorf("message = %q", httpErr.Message)
	}
	if httpErr.Code != "GOAL_NOT_FOUND" {
		t.Errorf("code = %q, want GOAL_NOT_FOUND", httpErr.Code)
	}
}

func TestHandleError_uniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "users",
		ConstraintName: "users_email_key",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", httpErr.Status)
	}
	if httpErr.Message != "A User with this Email already exists" {
		t.Errorf("message = %q", httpErr.Message)
	}
	if httpErr.Code != "USER_ALREADY_EXISTS" {
		t.Errorf("code = %q", httpErr.Code)
	}
}

func TestHandleError_notNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		Message:    "null value in column \"name\" violates not-null constraint",
		TableName:  "students",
		ColumnName: "name",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "name" {
		t.Errorf("field errors = %+v", httpErr.Errors)
	}
}

func TestHandleError_noRowsWithTableMarker(t *testing.T) {
	err := HandleError(fmt.Errorf("table:students: %w", pgx.ErrNoRows))

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", httpErr.Status)
	}
	if httpErr.Message != "Student not found" {
		t.Errorf("message = %q, want %q", httpErr.Message, "Student not found")
	}
}

func TestHandleError_noRowsWithoutMarker(t *testing.T) {
	err := HandleError(pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", httpErr.Status)
	}
	if httpErr.Message != "Resource not found" {
		t.Errorf("message = %q", httpErr.Message)
	}
}

func TestHandleError_preservesHTTPError(t *testing.T) {
	original := errs.NewForbiddenError("Parents have read-only access", true)

	if got := HandleError(original); got != error(original) {
		t.Errorf("expected the original HTTPError back, got %v", got)
	}
}

func TestHandleError_unknownError(t *testing.T) {
	err := HandleError(errors.New("boom"))

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", httpErr.Status)
	}
}

func TestGenerateErrorCode(t *testing.T) {
	tests := []struct {
		table string
		code  Code
		want  string
	}{
		{"students", UniqueViolation, "STUDENT_ALREADY_EXISTS"},
		{"goals", ForeignKeyViolation, "GOAL_NOT_FOUND"},
		{"topics", NotNullViolation, "TOPIC_REQUIRED"},
		{"mental_blocks", CheckViolation, "MENTAL_BLOCK_INVALID"},
		{"", Other, "RECORD_ERROR"},
	}

	for _, tt := range tests {
		if got := generateErrorCode(tt.table, tt.code); got != tt.want {
			t.Errorf("generateErrorCode(%q, %v) = %q, want %q", tt.table, tt.code, got, tt.want)
		}
	}
}
