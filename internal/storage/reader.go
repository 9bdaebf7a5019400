package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

// Reader groups the owner-scoped tables.
type Reader struct {
	Categories   sqlconfig.ICategoryTable
	Transactions sqlconfig.ITransactionTable
}

func NewReader(exec bob.Executor) Reader {
	return Reader{
		Categories:   sqlconfig.NewCategoriesTable(exec),
		Transactions: sqlconfig.NewTransactionsTable(exec),
	}
}
