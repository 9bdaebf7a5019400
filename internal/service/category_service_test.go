package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

func categoryNames(categories []Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

// -- Create --

func TestCategoryCreate_TrimsName(t *testing.T) {
	svc := newMemoryService(t)

	category, err := svc.Category.Create(context.Background(), "alice", "  Groceries  ")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", category.Name)
	assert.NotEqual(t, uuid.Nil, category.ID)
}

func TestCategoryCreate_InvalidNames(t *testing.T) {
	svc, _, _ := newMockService(t)

	for name, input := range map[string]string{
		"empty":      "",
		"whitespace": "   \t",
		"too long":   strings.Repeat("a", 101),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Category.Create(context.Background(), "alice", input)
			require.True(t, apperrors.IsValidationError(err))
			var verr *apperrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "name", verr.Fields[0].Field)
		})
	}
}

func TestCategoryCreate_MaxLengthCountsCharacters(t *testing.T) {
	svc := newMemoryService(t)

	_, err := svc.Category.Create(context.Background(), "alice", strings.Repeat("é", 100))
	assert.NoError(t, err)
}

func TestCategoryCreate_DuplicatePerOwner(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	_, err := svc.Category.Create(ctx, "alice", "Food")
	require.NoError(t, err)

	_, err = svc.Category.Create(ctx, "alice", "Food")
	assert.True(t, apperrors.IsConflictError(err))

	_, err = svc.Category.Create(ctx, "bob", "Food")
	assert.NoError(t, err)
}

func TestCategoryCreate_MissingOwner(t *testing.T) {
	svc, _, _ := newMockService(t)

	_, err := svc.Category.Create(context.Background(), "", "Food")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

// -- List / Get --

func TestCategoryList_IsolatedAndSorted(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	for _, name := range []string{"Rent", "Food"} {
		_, err := svc.Category.Create(ctx, "alice", name)
		require.NoError(t, err)
	}
	_, err := svc.Category.Create(ctx, "bob", "Hobbies")
	require.NoError(t, err)

	alice, err := svc.Category.List(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Rent"}, categoryNames(alice))

	bob, err := svc.Category.List(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hobbies"}, categoryNames(bob))
}

func TestCategoryGet_OtherOwnerIsNotFound(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	created, err := svc.Category.Create(ctx, "alice", "Food")
	require.NoError(t, err)

	got, err := svc.Category.Get(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Category.Get(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCategoryList_StorageError(t *testing.T) {
	svc, categories, _ := newMockService(t)

	categories.EXPECT().List(mock.Anything, "alice").Return(nil, errors.New("database unavailable"))

	_, err := svc.Category.List(context.Background(), "alice")
	assert.EqualError(t, err, "read categories: database unavailable")
}

// -- Rename --

func TestCategoryRename(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	food, err := svc.Category.Create(ctx, "alice", "Food")
	require.NoError(t, err)
	_, err = svc.Category.Create(ctx, "alice", "Rent")
	require.NoError(t, err)

	renamed, err := svc.Category.Rename(ctx, "alice", food.ID, " Groceries ")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", renamed.Name)
	assert.Equal(t, food.ID, renamed.ID)

	_, err = svc.Category.Rename(ctx, "alice", food.ID, "Rent")
	assert.True(t, apperrors.IsConflictError(err))

	_, err = svc.Category.Rename(ctx, "bob", food.ID, "Mine")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Category.Rename(ctx, "alice", food.ID, " ")
	assert.True(t, apperrors.IsValidationError(err))
}

func TestCategoryRename_LooksUpBeforeValidating(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	food, err := svc.Category.Create(ctx, "alice", "Food")
	require.NoError(t, err)

	_, err = svc.Category.Rename(ctx, "bob", food.ID, " ")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.False(t, apperrors.IsValidationError(err))

	_, err = svc.Category.Rename(ctx, "alice", uuid.Must(uuid.NewV4()), "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Category.Rename(ctx, "", food.ID, "Groceries")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

// -- Delete --

func TestCategoryDelete_RestrictedUntilUnreferenced(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	food, err := svc.Category.Create(ctx, "alice", "Food")
	require.NoError(t, err)
	rent, err := svc.Category.Create(ctx, "alice", "Rent")
	require.NoError(t, err)

	amount := decimal.RequireFromString("12.00")
	expense := TransactionTypeExpense
	tx, err := svc.Transaction.Create(ctx, "alice", TransactionInput{
		Amount:     &amount,
		Type:       &expense,
		CategoryID: &food.ID,
	})
	require.NoError(t, err)

	err = svc.Category.Delete(ctx, "alice", food.ID)
	assert.True(t, apperrors.IsConflictError(err))

	// Reassigning the only reference unblocks the delete.
	_, err = svc.Transaction.Update(ctx, "alice", tx.ID, TransactionInput{CategoryID: &rent.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Category.Delete(ctx, "alice", food.ID))
	_, err = svc.Category.Get(ctx, "alice", food.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCategoryDelete_OtherOwnerIsNotFound(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	food, err := svc.Category.Create(ctx, "alice", "Food")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Category.Delete(ctx, "bob", food.ID), apperrors.ErrNotFound)

	_, err = svc.Category.Get(ctx, "alice", food.ID)
	assert.NoError(t, err)
}

// -- EnsureDefaultCategories --

func TestEnsureDefaultCategories_Idempotent(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	created, err := svc.Category.EnsureDefaultCategories(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 5, created)

	created, err = svc.Category.EnsureDefaultCategories(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, created)

	categories, err := svc.Category.List(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Rent", "Salary", "Transport", "Utilities"}, categoryNames(categories))
}

func TestEnsureDefaultCategories_SkipsOwnersWithCategories(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	_, err := svc.Category.Create(ctx, "alice", "Hobbies")
	require.NoError(t, err)

	created, err := svc.Category.EnsureDefaultCategories(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, created)

	categories, err := svc.Category.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestEnsureDefaultCategories_Concurrent(t *testing.T) {
	svc := newMemoryService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Category.EnsureDefaultCategories(ctx, "alice")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := svc.Category.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, count, 5)
}

func TestEnsureDefaultCategories_RaceIsSuccess(t *testing.T) {
	svc, categories, _ := newMockService(t)

	categories.EXPECT().Count(mock.Anything, "alice").Return(int64(0), nil)
	categories.EXPECT().Insert(mock.Anything, mock.Anything).Return(uuid.Nil, sqlconfig.ErrDuplicate)

	created, err := svc.Category.EnsureDefaultCategories(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Zero(t, created)
}
