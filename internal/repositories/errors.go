package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Store failure categories. Services map these onto user-facing errors;
// handlers map those onto HTTP statuses.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("duplicate record")
	ErrForeignKey   = errors.New("foreign key violation")
	ErrNotNull      = errors.New("required value missing")
	ErrInvalidInput = errors.New("invalid input syntax")

	// Generic-surface failures: the caller named something outside the
	// allow-list.
	ErrUnknownTable     = errors.New("unknown table")
	ErrColumnNotAllowed = errors.New("column not allowed")
)

// PostgreSQL error codes the store distinguishes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgInvalidTextRepr     = "22P02"
)

// ClassifyError folds driver-level failures into the category sentinels,
// preserving the original error in the chain.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", ErrForeignKey, err)
		case pgNotNullViolation:
			return fmt.Errorf("%w: %w", ErrNotNull, err)
		case pgInvalidTextRepr:
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	return err
}

// IsNotFound reports whether err is a not-found store failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique-constraint failure.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsForeignKey reports whether err is a foreign-key failure.
func IsForeignKey(err error) bool {
	return errors.Is(err, ErrForeignKey)
}
