package db

import (
	"errors"
	"strings"
)

// ErrDuplicateKey is returned by the in-memory stores when a uniqueness
// rule is violated, mirroring the driver-level unique constraint errors.
var ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

// IsUniqueViolation reports whether the error is a unique constraint
// violation. The sqlite and postgres drivers surface different message
// text, so both are matched; constraintName narrows the check further.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateKey) {
		return true
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
