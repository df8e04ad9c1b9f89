package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates that a row violating a unique index already exists
// (analysis per talk, weekly report per profile/week, idempotency key).
var ErrDuplicate = errors.New("duplicate")

// mapDuplicate converts unique violations into ErrDuplicate. glebarez/sqlite
// often returns plain-text errors, and Postgres only maps to
// gorm.ErrDuplicatedKey when TranslateError is enabled.
func mapDuplicate(err error) error {
	if err == nil {
		return nil
	}
	low := strings.ToLower(err.Error())
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key") {
		return ErrDuplicate
	}
	return err
}
