package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type TransactionType int16

const (
	TransactionTypeExpense TransactionType = iota
	TransactionTypeIncome
)

// Transaction represents a transaction record joined with its category name.
type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionDate time.Time       `db:"transaction_date"`
	Notes           string          `db:"notes"`
	Type            TransactionType `db:"type"`
	CategoryID      uuid.UUID       `db:"category_id"`
	CategoryName    string          `db:"category_name"`
	OwnerID         string          `db:"owner_id"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	OwnerID         string
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	TransactionDate time.Time // defaults to the current UTC day if zero
	Notes           string
	Type            TransactionType
}

// TransactionUpdate lists the mutable fields. Unset fields are left untouched.
type TransactionUpdate struct {
	Amount          omit.Val[decimal.Decimal]
	TransactionDate omit.Val[time.Time]
	Notes           omit.Val[string]
	Type            omit.Val[TransactionType]
	CategoryID      omit.Val[uuid.UUID]
}

// IsEmpty reports whether no field is set.
func (u *TransactionUpdate) IsEmpty() bool {
	return u.Amount.IsUnset() &&
		u.TransactionDate.IsUnset() &&
		u.Notes.IsUnset() &&
		u.Type.IsUnset() &&
		u.CategoryID.IsUnset()
}

// TransactionFilter specifies filters for listing transactions.
// OwnerID is mandatory.
type TransactionFilter struct {
	OwnerID         string
	CategoryID      *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
// Every method is scoped to one owner; rows of other owners behave as absent.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, update *TransactionUpdate) error
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	CountByCategory(ctx context.Context, ownerID string, categoryID uuid.UUID) (int64, error)
	MaxCreatedAt(ctx context.Context, ownerID string) (*time.Time, error)
}
