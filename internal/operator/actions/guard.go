package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

// ownedCategory loads a category through the owner-scoped table. Rows that
// are absent and rows of another owner both report apperrors.ErrNotFound.
func ownedCategory(ctx context.Context, writer *storage.Writer, ownerID string, id uuid.UUID) (*sqlconfig.Category, error) {
	category, err := writer.Categories.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "category", id)
	}
	return category, nil
}

func ownedTransaction(ctx context.Context, writer *storage.Writer, ownerID string, id uuid.UUID) (*sqlconfig.Transaction, error) {
	transaction, err := writer.Transactions.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, "transaction", id)
	}
	return transaction, nil
}

// translate maps the storage lookup sentinels onto the error taxonomy.
func translate(err error, entity string, id uuid.UUID) error {
	switch {
	case errors.Is(err, sqlconfig.ErrNotFound):
		return fmt.Errorf("%s %s: %w", entity, id, apperrors.ErrNotFound)
	case errors.Is(err, sqlconfig.ErrMissingOwner):
		return fmt.Errorf("%s %s: %w", entity, id, apperrors.ErrBadRequest)
	default:
		return fmt.Errorf("load %s %s: %w", entity, id, err)
	}
}
