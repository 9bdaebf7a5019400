package service

import (
	"errors"
	"fmt"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("owner id is required: %w", apperrors.ErrBadRequest)
	}
	return nil
}

// readError maps storage read failures onto the error taxonomy.
func readError(err error, what string) error {
	switch {
	case errors.Is(err, sqlconfig.ErrNotFound):
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	case errors.Is(err, sqlconfig.ErrMissingOwner):
		return fmt.Errorf("%s: %w", what, apperrors.ErrBadRequest)
	default:
		return fmt.Errorf("read %s: %w", what, err)
	}
}
