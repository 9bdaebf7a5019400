package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

var _ sqlconfig.ICategoryTable = (*categoryTable)(nil)

type categoryTable struct {
	store   *Store
	locking bool
}

func (t *categoryTable) FindByID(_ context.Context, ownerID string, id uuid.UUID) (*sqlconfig.Category, error) {
	if ownerID == "" {
		return nil, sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, false)()

	row, ok := t.store.data.categories[id]
	if !ok || row.OwnerID != ownerID {
		return nil, sqlconfig.ErrNotFound
	}
	return &row, nil
}

func (t *categoryTable) List(_ context.Context, ownerID string) ([]*sqlconfig.Category, error) {
	if ownerID == "" {
		return nil, sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, false)()

	result := make([]*sqlconfig.Category, 0)
	for _, row := range t.store.data.categories {
		if row.OwnerID == ownerID {
			result = append(result, &row)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (t *categoryTable) Count(_ context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, false)()

	var count int64
	for _, row := range t.store.data.categories {
		if row.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (t *categoryTable) Insert(_ context.Context, create *sqlconfig.CategoryCreate) (uuid.UUID, error) {
	if create.OwnerID == "" {
		return uuid.Nil, sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, true)()

	if t.nameTaken(create.OwnerID, create.Name, uuid.Nil) {
		return uuid.Nil, fmt.Errorf("%w: categories_owner_name_key", sqlconfig.ErrDuplicate)
	}
	id, err := newID()
	if err != nil {
		return uuid.Nil, err
	}
	t.store.data.categories[id] = sqlconfig.Category{
		ID:        id,
		Name:      create.Name,
		OwnerID:   create.OwnerID,
		CreatedAt: t.store.createdAt(),
	}
	return id, nil
}

func (t *categoryTable) Rename(_ context.Context, ownerID string, id uuid.UUID, name string) error {
	if ownerID == "" {
		return sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, true)()

	row, ok := t.store.data.categories[id]
	if !ok || row.OwnerID != ownerID {
		return sqlconfig.ErrNotFound
	}
	if t.nameTaken(ownerID, name, id) {
		return fmt.Errorf("%w: categories_owner_name_key", sqlconfig.ErrDuplicate)
	}
	row.Name = name
	t.store.data.categories[id] = row
	return nil
}

func (t *categoryTable) Delete(_ context.Context, ownerID string, id uuid.UUID) error {
	if ownerID == "" {
		return sqlconfig.ErrMissingOwner
	}
	defer lock(t.store, t.locking, true)()

	row, ok := t.store.data.categories[id]
	if !ok || row.OwnerID != ownerID {
		return sqlconfig.ErrNotFound
	}
	for _, tx := range t.store.data.transactions {
		if tx.CategoryID == id && tx.OwnerID == ownerID {
			return fmt.Errorf("%w: transactions_category_owner_fkey", sqlconfig.ErrForeignKey)
		}
	}
	delete(t.store.data.categories, id)
	return nil
}

// nameTaken reports whether another category of the owner already uses name.
func (t *categoryTable) nameTaken(ownerID, name string, except uuid.UUID) bool {
	for _, row := range t.store.data.categories {
		if row.OwnerID == ownerID && row.Name == name && row.ID != except {
			return true
		}
	}
	return false
}
