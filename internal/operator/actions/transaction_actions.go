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

// UpdateTransaction applies the set fields of Update. A new category must
// belong to the same owner.
type UpdateTransaction struct {
	OwnerID string
	ID      uuid.UUID
	Update  sqlconfig.TransactionUpdate

	Result *sqlconfig.Transaction
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := ownedTransaction(ctx, writer, u.OwnerID, u.ID); err != nil {
		return err
	}
	if categoryID, ok := u.Update.CategoryID.Get(); ok {
		if _, err := ownedCategory(ctx, writer, u.OwnerID, categoryID); err != nil {
			return err
		}
	}

	err := writer.Transactions.Update(ctx, u.OwnerID, u.ID, &u.Update)
	if errors.Is(err, sqlconfig.ErrForeignKey) {
		return fmt.Errorf("category: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return translate(err, "transaction", u.ID)
	}

	u.Result, err = ownedTransaction(ctx, writer, u.OwnerID, u.ID)
	return err
}

type DeleteTransaction struct {
	OwnerID string
	ID      uuid.UUID
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := ownedTransaction(ctx, writer, d.OwnerID, d.ID); err != nil {
		return err
	}
	if err := writer.Transactions.Delete(ctx, d.OwnerID, d.ID); err != nil {
		return translate(err, "transaction", d.ID)
	}
	return nil
}
