package service

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// wrapAsNotFound builds a row-not-found error carrying the table marker
// the sqlerr handler uses to name the entity. Used when a record exists
// but belongs to a different student, which the API reports the same way
// as a missing record.
func wrapAsNotFound(table string) error {
	return fmt.Errorf("table:%s: %w", table, pgx.ErrNoRows)
}
