package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type ErrorClass int

const (
	ErrorClassPermanent ErrorClass = iota
	ErrorClassTransient
	ErrorClassConflict
	ErrorClassNotFound
)

func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ErrorClassPermanent
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrorClassConflict
		case "40001", "40P01", "55P03":
			return ErrorClassTransient
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrorClassNotFound
	}

	return ErrorClassPermanent
}

// IsUniqueViolation reports whether err was caused by a duplicate value
// in a column with a UNIQUE constraint (user email, category slug).
func IsUniqueViolation(err error) bool {
	return ClassifyError(err) == ErrorClassConflict
}

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmailTaken        = errors.New("email already exists")
	ErrSlugTaken         = errors.New("slug already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// IsNotFound reports whether err is one of the per-entity not-found
// sentinels. The store layer maps malformed identifiers to these as
// well, so callers never need to distinguish the two cases.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}
