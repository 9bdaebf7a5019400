package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

type CreateTransaction struct {
	OwnerID         string
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	TransactionDate time.Time
	Notes           string
	Type            sqlconfig.TransactionType

	Result *sqlconfig.Transaction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	count, err := writer.Categories.Count(ctx, t.OwnerID)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("create a category first: %w", apperrors.ErrPreconditionFailed)
	}

	if _, err := ownedCategory(ctx, writer, t.OwnerID, t.CategoryID); err != nil {
		return err
	}

	storageCreate := &sqlconfig.TransactionCreate{
		OwnerID:         t.OwnerID,
		CategoryID:      t.CategoryID,
		Amount:          t.Amount,
		TransactionDate: t.TransactionDate,
		Notes:           t.Notes,
		Type:            t.Type,
	}
	id, err := writer.Transactions.Insert(ctx, storageCreate)
	if errors.Is(err, sqlconfig.ErrForeignKey) {
		return fmt.Errorf("category %s: %w", t.CategoryID, apperrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	t.Result, err = ownedTransaction(ctx, writer, t.OwnerID, id)
	return err
}
