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

// DefaultCategoryNames is the set seeded for a user with no categories.
var DefaultCategoryNames = []string{"Food", "Rent", "Transport", "Utilities", "Salary"}

// ErrSeedRaced reports that another writer seeded the same owner first.
var ErrSeedRaced = errors.New("actions: default categories seeded concurrently")

type CreateCategory struct {
	OwnerID string
	Name    string

	Result *sqlconfig.Category
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Categories.Insert(ctx, &sqlconfig.CategoryCreate{
		Name:    c.Name,
		OwnerID: c.OwnerID,
	})
	if errors.Is(err, sqlconfig.ErrDuplicate) {
		return apperrors.NewConflictError("a category named %q already exists", c.Name)
	}
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}

	c.Result, err = ownedCategory(ctx, writer, c.OwnerID, id)
	return err
}

type RenameCategory struct {
	OwnerID string
	ID      uuid.UUID
	Name    string

	Result *sqlconfig.Category
}

func (r *RenameCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	category, err := ownedCategory(ctx, writer, r.OwnerID, r.ID)
	if err != nil {
		return err
	}
	if category.Name == r.Name {
		r.Result = category
		return nil
	}

	err = writer.Categories.Rename(ctx, r.OwnerID, r.ID, r.Name)
	if errors.Is(err, sqlconfig.ErrDuplicate) {
		return apperrors.NewConflictError("a category named %q already exists", r.Name)
	}
	if err != nil {
		return translate(err, "category", r.ID)
	}

	r.Result, err = ownedCategory(ctx, writer, r.OwnerID, r.ID)
	return err
}

// DeleteCategory removes a category nothing references.
type DeleteCategory struct {
	OwnerID string
	ID      uuid.UUID
}

func (d *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	category, err := ownedCategory(ctx, writer, d.OwnerID, d.ID)
	if err != nil {
		return err
	}

	count, err := writer.Transactions.CountByCategory(ctx, d.OwnerID, d.ID)
	if err != nil {
		return fmt.Errorf("count category references: %w", err)
	}
	if count > 0 {
		return apperrors.NewConflictError("category %q is used by %d transaction(s)", category.Name, count)
	}

	err = writer.Categories.Delete(ctx, d.OwnerID, d.ID)
	if errors.Is(err, sqlconfig.ErrForeignKey) {
		return apperrors.NewConflictError("category %q is used by transactions", category.Name)
	}
	if err != nil {
		return translate(err, "category", d.ID)
	}
	return nil
}

// SeedDefaultCategories inserts DefaultCategoryNames for an owner with no
// categories at all. Owners with any category are left untouched.
type SeedDefaultCategories struct {
	OwnerID string

	Created int
}

func (s *SeedDefaultCategories) Perform(ctx context.Context, writer *storage.Writer) error {
	count, err := writer.Categories.Count(ctx, s.OwnerID)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, name := range DefaultCategoryNames {
		_, err := writer.Categories.Insert(ctx, &sqlconfig.CategoryCreate{
			Name:    name,
			OwnerID: s.OwnerID,
		})
		if errors.Is(err, sqlconfig.ErrDuplicate) {
			return fmt.Errorf("%w: %v", ErrSeedRaced, err)
		}
		if err != nil {
			return fmt.Errorf("insert default category %q: %w", name, err)
		}
		s.Created++
	}
	return nil
}
