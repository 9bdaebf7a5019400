package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

var _ sqlconfig.ITransactionTable = (*transactionTable)(nil)

type transactionTable struct {
	store   *Store
	locking bool
}

// joined returns a copy of row carrying its category name. Rows whose
// category is missing or foreign-owned are dropped, as the inner join does.
func (t *transactionTable) joined(row sqlconfig.Transaction) (*sqlconfig.Transaction, bool) {
	category, ok := t.store.data.categories[row.CategoryID]
	if !ok || category.OwnerID != row.OwnerID {
		return nil, false
	}
	row.CategoryName = category.Name
	return &row, true
}

func (t *transactionTable) categoryOwned(ownerID string, categoryID uuid.UUID) bool {
	category, ok := t.store.data.categories[categoryID]
	return ok && category.OwnerID == ownerID
}

func (t *transactionTable) FindByID(_ context.Context, ownerID string, id uuid.UUID) (*sqlconfig.Transaction, error) {
	if ownerID == "" {
		return nil, sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, false)()

	row, ok := t.store.data.transactions[id]
	if !ok || row.OwnerID != ownerID {
		return nil, sqlconfig.ErrNotFound
	}
	result, ok := t.joined(row)
	if !ok {
		return nil, sqlconfig.ErrNotFound
	}
	return result, nil
}

func (t *transactionTable) Insert(_ context.Context, create *sqlconfig.TransactionCreate) (uuid.UUID, error) {
	if create.OwnerID == "" {
		return uuid.Nil, sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, true)()

	if !t.categoryOwned(create.OwnerID, create.CategoryID) {
		return uuid.Nil, fmt.Errorf("%w: transactions_category_owner_fkey", sqlconfig.ErrForeignKey)
	}
	id, err := newID()
	if err != nil {
		return uuid.Nil, err
	}
	date := create.TransactionDate
	if date.IsZero() {
		date = t.store.today()
	}
	t.store.data.transactions[id] = sqlconfig.Transaction{
		ID:              id,
		Amount:          create.Amount.Round(2),
		TransactionDate: date,
		Notes:           create.Notes,
		Type:            create.Type,
		CategoryID:      create.CategoryID,
		OwnerID:         create.OwnerID,
		CreatedAt:       t.store.createdAt(),
	}
	return id, nil
}

func (t *transactionTable) Update(_ context.Context, ownerID string, id uuid.UUID, update *sqlconfig.TransactionUpdate) error {
	if ownerID == "" {
		return sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, true)()

	row, ok := t.store.data.transactions[id]
	if !ok || row.OwnerID != ownerID {
		return sqlconfig.ErrNotFound
	}
	if update == nil {
		return nil
	}
	if categoryID, ok := update.CategoryID.Get(); ok {
		if !t.categoryOwned(ownerID, categoryID) {
			return fmt.Errorf("%w: transactions_category_owner_fkey", sqlconfig.ErrForeignKey)
		}
		row.CategoryID = categoryID
	}
	if amount, ok := update.Amount.Get(); ok {
		row.Amount = amount.Round(2)
	}
	if date, ok := update.TransactionDate.Get(); ok {
		row.TransactionDate = date
	}
	if notes, ok := update.Notes.Get(); ok {
		row.Notes = notes
	}
	if txType, ok := update.Type.Get(); ok {
		row.Type = txType
	}
	t.store.data.transactions[id] = row
	return nil
}

func (t *transactionTable) Delete(_ context.Context, ownerID string, id uuid.UUID) error {
	if ownerID == "" {
		return sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, true)()

	row, ok := t.store.data.transactions[id]
	if !ok || row.OwnerID != ownerID {
		return sqlconfig.ErrNotFound
	}
	delete(t.store.data.transactions, id)
	return nil
}

func (t *transactionTable) List(_ context.Context, filter *sqlconfig.TransactionFilter) ([]*sqlconfig.Transaction, error) {
	if filter == nil || filter.OwnerID == "" {
		return nil, sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, false)()

	rows := make([]*sqlconfig.Transaction, 0)
	for _, row := range t.store.data.transactions {
		if row.OwnerID != filter.OwnerID {
			continue
		}
		if filter.CategoryID != nil && row.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.MaxCreationTime != nil && row.CreatedAt.After(*filter.MaxCreationTime) {
			continue
		}
		if joined, ok := t.joined(row); ok {
			rows = append(rows, joined)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.TransactionDate.Equal(b.TransactionDate) {
			return a.TransactionDate.After(b.TransactionDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() > b.ID.String()
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(rows) {
			return []*sqlconfig.Transaction{}, nil
		}
		rows = rows[filter.Offset:]
	}
	if filter.Limit > 0 && len(rows) > filter.Limit+1 {
		rows = rows[:filter.Limit+1]
	}
	return rows, nil
}

func (t *transactionTable) CountByCategory(_ context.Context, ownerID string, categoryID uuid.UUID) (int64, error) {
	if ownerID == "" {
		return 0, sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, false)()

	var count int64
	for _, row := range t.store.data.transactions {
		if row.OwnerID == ownerID && row.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (t *transactionTable) MaxCreatedAt(_ context.Context, ownerID string) (*time.Time, error) {
	if ownerID == "" {
		return nil, sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, false)()

	var latest *time.Time
	for _, row := range t.store.data.transactions {
		if row.OwnerID != ownerID {
			continue
		}
		if latest == nil || row.CreatedAt.After(*latest) {
			createdAt := row.CreatedAt
			latest = &createdAt
		}
	}
	return latest, nil
}
