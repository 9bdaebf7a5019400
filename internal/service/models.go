package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

// TransactionType represents a transaction type in the service layer.
type TransactionType int8

const (
	TransactionTypeExpense TransactionType = iota
	TransactionTypeIncome
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeExpense:
		return "Expense"
	case TransactionTypeIncome:
		return "Income"
	default:
		return fmt.Sprintf("TransactionType(%d)", int8(t))
	}
}

// ParseTransactionType accepts the names returned by String, case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expense":
		return TransactionTypeExpense, nil
	case "income":
		return TransactionTypeIncome, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", s)
	}
}

func transactionTypeToStorage(t TransactionType) sqlconfig.TransactionType {
	return sqlconfig.TransactionType(t)
}

func transactionTypeFromStorage(t sqlconfig.TransactionType) TransactionType {
	return TransactionType(t)
}

// Category represents a category in the service layer.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// CategoryRef is the category a transaction is filed under.
type CategoryRef struct {
	ID   uuid.UUID
	Name string
}

// Transaction represents a transaction in the service layer, enriched with
// its category.
type Transaction struct {
	ID        uuid.UUID
	Amount    decimal.Decimal
	Date      time.Time
	Notes     string
	Type      TransactionType
	Category  CategoryRef
	CreatedAt time.Time
}

// TransactionInput carries the client-settable fields of a transaction.
// Nil fields are absent. It deliberately has no owner field.
type TransactionInput struct {
	ID         *uuid.UUID
	Amount     *decimal.Decimal
	Date       *time.Time
	Notes      *string
	Type       *TransactionType
	CategoryID *uuid.UUID
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

func categoryFromStorage(row *sqlconfig.Category) Category {
	return Category{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

func transactionFromStorage(row *sqlconfig.Transaction) Transaction {
	return Transaction{
		ID:     row.ID,
		Amount: row.Amount,
		Date:   row.TransactionDate,
		Notes:  row.Notes,
		Type:   transactionTypeFromStorage(row.Type),
		Category: CategoryRef{
			ID:   row.CategoryID,
			Name: row.CategoryName,
		},
		CreatedAt: row.CreatedAt,
	}
}
