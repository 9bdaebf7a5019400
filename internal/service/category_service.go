package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

// CategoryService handles category business logic. Every method is scoped
// to the owner passed in.
type CategoryService struct {
	storage  *storage.Storage
	operator operator.IProcessor
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store *storage.Storage, op operator.IProcessor) *CategoryService {
	return &CategoryService{storage: store, operator: op}
}

// List returns the owner's categories ordered by name.
func (s *CategoryService) List(ctx context.Context, ownerID string) ([]Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	rows, err := s.storage.Categories.List(ctx, ownerID)
	if err != nil {
		return nil, readError(err, "categories")
	}
	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = categoryFromStorage(row)
	}
	return categories, nil
}

// Get returns one owned category.
func (s *CategoryService) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	row, err := s.storage.Categories.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, readError(err, "category "+id.String())
	}
	category := categoryFromStorage(row)
	return &category, nil
}

// Create adds a category with a trimmed, unique name.
func (s *CategoryService) Create(ctx context.Context, ownerID, name string) (*Category, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateCategory{OwnerID: ownerID, Name: name}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	category := categoryFromStorage(action.Result)
	return &category, nil
}

// Rename changes the name of an owned category. An unknown or foreign id
// is reported as not found before the new name is checked.
func (s *CategoryService) Rename(ctx context.Context, ownerID string, id uuid.UUID, name string) (*Category, error) {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return nil, err
	}
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}

	action := &actions.RenameCategory{OwnerID: ownerID, ID: id, Name: name}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	category := categoryFromStorage(action.Result)
	return &category, nil
}

// Delete removes an owned category that no transaction references.
func (s *CategoryService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	return s.operator.Process(ctx, &actions.DeleteCategory{OwnerID: ownerID, ID: id})
}

// EnsureDefaultCategories seeds the default set for an owner with no
// categories and returns how many were created. Calling it again, or
// concurrently, never duplicates the set.
func (s *CategoryService) EnsureDefaultCategories(ctx context.Context, ownerID string) (int, error) {
	if err := requireOwner(ownerID); err != nil {
		return 0, err
	}
	action := &actions.SeedDefaultCategories{OwnerID: ownerID}
	err := s.operator.Process(ctx, action)
	if errors.Is(err, actions.ErrSeedRaced) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return action.Created, nil
}
