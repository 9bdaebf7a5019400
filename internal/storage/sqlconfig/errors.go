package sqlconfig

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches the owner and id.
	ErrNotFound = errors.New("sqlconfig: row not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("sqlconfig: duplicate row")
	// ErrForeignKey is returned when a foreign key rejects a write: deleting a
	// row that is still referenced, or referencing a row that does not exist.
	ErrForeignKey = errors.New("sqlconfig: foreign key violation")
	// ErrMissingOwner is returned when a call is made without an owner id.
	ErrMissingOwner = errors.New("sqlconfig: owner id is required")
)

// Postgres SQLSTATE codes mapped onto the sentinels above.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translateError maps driver errors onto the package sentinels while keeping
// the original error in the chain.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrForeignKey, pqErr.Constraint)
		}
	}
	return err
}

// requireAffected reports ErrNotFound when a write matched no row.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
