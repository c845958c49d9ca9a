package sqlerr

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a driver-agnostic category for database errors.
//
// It collapses the SQLSTATE zoo into the handful of categories the
// application actually branches on.
type Code int

const (
	// Other covers every error we do not classify specially.
	Other Code = iota

	// ForeignKeyViolation: a referenced row does not exist (SQLSTATE 23503).
	ForeignKeyViolation

	// UniqueViolation: a unique index/constraint was violated (23505).
	UniqueViolation

	// NotNullViolation: a required column received NULL (23502).
	NotNullViolation

	// CheckViolation: a CHECK constraint rejected a value (23514).
	CheckViolation

	// ConnectionFailure: the connection to the server was lost (08xxx).
	ConnectionFailure
)

// Severity mirrors the PostgreSQL error severity field.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
)

// MapCode maps a PostgreSQL SQLSTATE string onto our Code enum.
//
// SQLSTATE class 23 is "integrity constraint violation"; class 08 is
// "connection exception".
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	}

	if len(sqlstate) >= 2 && sqlstate[:2] == "08" {
		return ConnectionFailure
	}

	return Other
}

// MapSeverity maps the PostgreSQL severity string onto our Severity enum.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityUnknown
	}
}

// Error is the normalized database error used inside the application.
//
// It keeps the original SQLSTATE and constraint metadata so callers can
// build precise user-facing messages, and wraps the driver error for
// errors.Is/As chains.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string // original SQLSTATE
	Message        string // database's main message
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr *pgconn.PgError
}

func (e *Error) Error() string {
	if e.ConstraintName != "" {
		return fmt.Sprintf("database error %s on %q (constraint %q): %s",
			e.DatabaseCode, e.TableName, e.ConstraintName, e.Message)
	}
	return fmt.Sprintf("database error %s: %s", e.DatabaseCode, e.Message)
}

// Unwrap exposes the underlying driver error for errors.As.
func (e *Error) Unwrap() error {
	if e.driverErr == nil {
		return nil
	}
	return e.driverErr
}
