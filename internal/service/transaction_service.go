package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator operator.IProcessor
	now      func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op operator.IProcessor) *TransactionService {
	return &TransactionService{storage: store, operator: op, now: time.Now}
}

// today is the default transaction date: the current UTC calendar date.
func (s *TransactionService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// List returns every owned transaction, newest date first.
func (s *TransactionService) List(ctx context.Context, ownerID string) ([]Transaction, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	rows, err := s.storage.Transactions.List(ctx, &sqlconfig.TransactionFilter{OwnerID: ownerID})
	if err != nil {
		return nil, readError(err, "transactions")
	}
	return transactionsFromStorage(rows), nil
}

// ListPage returns a page of transactions using cursor-based pagination.
func (s *TransactionService) ListPage(ctx context.Context, ownerID string, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, nil, err
	}

	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		if !cursor.MaxCreationTime.IsZero() {
			maxCreationTime = &cursor.MaxCreationTime
		}
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	// The first page pins the snapshot to the newest row the owner has.
	// Rows sort by date, so a later page can hold rows created after
	// everything on the first one.
	if maxCreationTime == nil {
		latest, err := s.storage.Transactions.MaxCreatedAt(ctx, ownerID)
		if err != nil {
			return nil, nil, readError(err, "transactions")
		}
		if latest == nil {
			return nil, nil, nil
		}
		maxCreationTime = latest
	}

	filter := &sqlconfig.TransactionFilter{
		OwnerID:         ownerID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, readError(err, "transactions")
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: *maxCreationTime,
		}
	}

	return transactionsFromStorage(rows), nextCursor, nil
}

// Get returns one owned transaction with its category.
func (s *TransactionService) Get(ctx context.Context, ownerID string, id uuid.UUID) (*Transaction, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	row, err := s.storage.Transactions.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, readError(err, "transaction "+id.String())
	}
	transaction := transactionFromStorage(row)
	return &transaction, nil
}

// Create records a transaction. An owner without categories gets
// apperrors.ErrPreconditionFailed before the input is looked at.
func (s *TransactionService) Create(ctx context.Context, ownerID string, input TransactionInput) (*Transaction, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	count, err := s.storage.Categories.Count(ctx, ownerID)
	if err != nil {
		return nil, readError(err, "categories")
	}
	if count == 0 {
		return nil, fmt.Errorf("create a category first: %w", apperrors.ErrPreconditionFailed)
	}
	if err := validateTransactionCreate(input); err != nil {
		return nil, err
	}

	date := s.today()
	if input.Date != nil && !input.Date.IsZero() {
		date = input.Date.UTC()
	}
	var notes string
	if input.Notes != nil {
		notes = *input.Notes
	}

	action := &actions.CreateTransaction{
		OwnerID:         ownerID,
		CategoryID:      *input.CategoryID,
		Amount:          *normalizeAmount(input.Amount),
		TransactionDate: date,
		Notes:           notes,
		Type:            transactionTypeToStorage(*input.Type),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	transaction := transactionFromStorage(action.Result)
	return &transaction, nil
}

// Update applies the set fields of input to an owned transaction. A
// payload id that differs from id is rejected before anything is read.
func (s *TransactionService) Update(ctx context.Context, ownerID string, id uuid.UUID, input TransactionInput) (*Transaction, error) {
	if input.ID != nil && *input.ID != id {
		return nil, fmt.Errorf("payload id %s does not match %s: %w", *input.ID, id, apperrors.ErrBadRequest)
	}
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if err := validateTransactionPatch(input); err != nil {
		return nil, err
	}

	update := sqlconfig.TransactionUpdate{}
	if amount := normalizeAmount(input.Amount); amount != nil {
		update.Amount = omit.From(*amount)
	}
	if input.Date != nil && !input.Date.IsZero() {
		update.TransactionDate = omit.From(input.Date.UTC())
	}
	if input.Notes != nil {
		update.Notes = omit.From(*input.Notes)
	}
	if input.Type != nil {
		update.Type = omit.From(transactionTypeToStorage(*input.Type))
	}
	if input.CategoryID != nil {
		update.CategoryID = omit.From(*input.CategoryID)
	}

	action := &actions.UpdateTransaction{OwnerID: ownerID, ID: id, Update: update}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	transaction := transactionFromStorage(action.Result)
	return &transaction, nil
}

// Delete removes an owned transaction.
func (s *TransactionService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	return s.operator.Process(ctx, &actions.DeleteTransaction{OwnerID: ownerID, ID: id})
}

func transactionsFromStorage(rows []*sqlconfig.Transaction) []Transaction {
	transactions := make([]Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = transactionFromStorage(row)
	}
	return transactions
}
