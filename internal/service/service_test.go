package service

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/memory"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

func startOperator(t *testing.T, store *storage.Storage) *operator.OperatorDelegator {
	t.Helper()
	op := operator.NewOperatorDelegator(store, 2, quietLogger())
	op.Start()
	t.Cleanup(op.Stop)
	return op
}

// newMemoryService wires every service over a fresh memory store.
func newMemoryService(t *testing.T, opts ...memory.Option) *Service {
	t.Helper()
	store := memory.New(opts...)
	return NewService(store, startOperator(t, store))
}

// newMockService wires every service over mock tables.
func newMockService(t *testing.T) (*Service, *sqlconfig.MockICategoryTable, *sqlconfig.MockITransactionTable) {
	t.Helper()
	categories := sqlconfig.NewMockICategoryTable(t)
	transactions := sqlconfig.NewMockITransactionTable(t)
	store := storage.New(storage.Reader{
		Categories:   categories,
		Transactions: transactions,
	}, nil)
	return NewService(store, startOperator(t, store)), categories, transactions
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
