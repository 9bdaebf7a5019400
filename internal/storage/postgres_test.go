package storage_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

// startPostgres runs a disposable Postgres with the schema applied.
func startPostgres(t *testing.T) *storage.Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("expenses"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("testpassword"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	result, err := storage.RunMigrations(db)
	require.NoError(t, err)
	assert.Equal(t, uint(0), result.PreMigrationVersion)
	assert.Equal(t, uint(2), result.PostMigrationVersion)

	again, err := storage.RunMigrations(db)
	require.NoError(t, err)
	assert.Equal(t, uint(2), again.PreMigrationVersion)

	store := storage.NewPostgresStorage(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPostgres(t *testing.T) {
	store := startPostgres(t)
	ctx := context.Background()

	insertCategory := func(t *testing.T, owner, name string) uuid.UUID {
		t.Helper()
		id, err := store.Categories.Insert(ctx, &sqlconfig.CategoryCreate{Name: name, OwnerID: owner})
		require.NoError(t, err)
		return id
	}

	t.Run("category names are unique per owner", func(t *testing.T) {
		insertCategory(t, "u1", "Food")
		insertCategory(t, "u2", "Food")

		_, err := store.Categories.Insert(ctx, &sqlconfig.CategoryCreate{Name: "Food", OwnerID: "u1"})
		assert.ErrorIs(t, err, sqlconfig.ErrDuplicate)

		count, err := store.Categories.Count(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rows of other owners are absent", func(t *testing.T) {
		id := insertCategory(t, "u3", "Rent")

		_, err := store.Categories.FindByID(ctx, "u4", id)
		assert.ErrorIs(t, err, sqlconfig.ErrNotFound)
		assert.ErrorIs(t, store.Categories.Rename(ctx, "u4", id, "Mine"), sqlconfig.ErrNotFound)
		assert.ErrorIs(t, store.Categories.Delete(ctx, "u4", id), sqlconfig.ErrNotFound)

		_, err = store.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
			OwnerID:    "u4",
			CategoryID: id,
			Amount:     decimal.RequireFromString("1.00"),
		})
		assert.ErrorIs(t, err, sqlconfig.ErrForeignKey)
	})

	t.Run("referenced categories cannot be deleted", func(t *testing.T) {
		categoryID := insertCategory(t, "u5", "Food")
		txID, err := store.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
			OwnerID:    "u5",
			CategoryID: categoryID,
			Amount:     decimal.RequireFromString("12.345"),
			Type:       sqlconfig.TransactionTypeExpense,
		})
		require.NoError(t, err)

		row, err := store.Transactions.FindByID(ctx, "u5", txID)
		require.NoError(t, err)
		assert.Equal(t, "Food", row.CategoryName)
		assert.True(t, decimal.RequireFromString("12.35").Equal(row.Amount))
		assert.Equal(t, "", row.Notes)

		assert.ErrorIs(t, store.Categories.Delete(ctx, "u5", categoryID), sqlconfig.ErrForeignKey)

		count, err := store.Transactions.CountByCategory(ctx, "u5", categoryID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		require.NoError(t, store.Transactions.Delete(ctx, "u5", txID))
		assert.NoError(t, store.Categories.Delete(ctx, "u5", categoryID))
	})

	t.Run("partial update inside a committed writer", func(t *testing.T) {
		food := insertCategory(t, "u6", "Food")
		salary := insertCategory(t, "u6", "Salary")
		id, err := store.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
			OwnerID:         "u6",
			CategoryID:      food,
			Amount:          decimal.RequireFromString("5.00"),
			TransactionDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			Notes:           "lunch",
		})
		require.NoError(t, err)

		writer, err := store.Write(ctx)
		require.NoError(t, err)
		err = writer.Transactions.Update(ctx, "u6", id, &sqlconfig.TransactionUpdate{
			Amount:     omit.From(decimal.RequireFromString("900.00")),
			Type:       omit.From(sqlconfig.TransactionTypeIncome),
			CategoryID: omit.From(salary),
		})
		require.NoError(t, err)
		require.NoError(t, writer.Commit())

		row, err := store.Transactions.FindByID(ctx, "u6", id)
		require.NoError(t, err)
		assert.Equal(t, "Salary", row.CategoryName)
		assert.Equal(t, sqlconfig.TransactionTypeIncome, row.Type)
		assert.Equal(t, "lunch", row.Notes)
	})

	t.Run("rolled back writes are discarded", func(t *testing.T) {
		writer, err := store.Write(ctx)
		require.NoError(t, err)
		_, err = writer.Categories.Insert(ctx, &sqlconfig.CategoryCreate{Name: "Temp", OwnerID: "u7"})
		require.NoError(t, err)
		require.NoError(t, writer.Rollback())

		count, err := store.Categories.Count(ctx, "u7")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("list orders by date and pages with one extra row", func(t *testing.T) {
		food := insertCategory(t, "u8", "Food")
		for i, day := range []int{1, 3, 2} {
			_, err := store.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
				OwnerID:         "u8",
				CategoryID:      food,
				Amount:          decimal.NewFromInt(int64(i + 1)),
				TransactionDate: time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
			})
			require.NoError(t, err)
		}

		rows, err := store.Transactions.List(ctx, &sqlconfig.TransactionFilter{OwnerID: "u8"})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, 3, rows[0].TransactionDate.Day())
		assert.Equal(t, 2, rows[1].TransactionDate.Day())
		assert.Equal(t, 1, rows[2].TransactionDate.Day())

		page, err := store.Transactions.List(ctx, &sqlconfig.TransactionFilter{OwnerID: "u8", Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, page, 2)
		assert.Equal(t, 2, page[0].TransactionDate.Day())

		_, err = store.Transactions.List(ctx, &sqlconfig.TransactionFilter{})
		assert.ErrorIs(t, err, sqlconfig.ErrMissingOwner)
	})

	t.Run("max created_at spans every row of the owner", func(t *testing.T) {
		none, err := store.Transactions.MaxCreatedAt(ctx, "u9")
		require.NoError(t, err)
		assert.Nil(t, none)

		rows, err := store.Transactions.List(ctx, &sqlconfig.TransactionFilter{OwnerID: "u8"})
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		newest := rows[0].CreatedAt
		for _, row := range rows {
			if row.CreatedAt.After(newest) {
				newest = row.CreatedAt
			}
		}

		latest, err := store.Transactions.MaxCreatedAt(ctx, "u8")
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.True(t, newest.Equal(*latest))
	})
}
