package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/service"
)

func TestHTTP_CreateTransaction_Created(t *testing.T) {
	tx := sampleTransaction("300.00", service.TransactionTypeExpense, "Food")
	svc := new(mockTransactionService)
	svc.On("Create", mock.Anything, "alice", mock.MatchedBy(func(in service.TransactionInput) bool {
		return in.ID == nil &&
			in.Amount != nil && in.Amount.Equal(decimal.RequireFromString("300")) &&
			in.Type != nil && *in.Type == service.TransactionTypeExpense &&
			in.CategoryID != nil && *in.CategoryID == tx.Category.ID &&
			in.Date == nil
	})).Return(&tx, nil)

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction", map[string]any{
		"amount":     "300.00",
		"type":       "Expense",
		"categoryId": tx.Category.ID.String(),
	})

	require.Equal(t, http.StatusCreated, resp.Code)
	var body Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, tx.ID.String(), body.ID)
	assert.Equal(t, "300.00", body.Amount)
	assert.Equal(t, "Food", body.CategoryName)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_IgnoresBodyID(t *testing.T) {
	tx := sampleTransaction("5.00", service.TransactionTypeIncome, "Salary")
	svc := new(mockTransactionService)
	svc.On("Create", mock.Anything, "alice", mock.MatchedBy(func(in service.TransactionInput) bool {
		return in.ID == nil
	})).Return(&tx, nil)

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction", map[string]any{
		"id":         uuid.Must(uuid.NewV4()).String(),
		"amount":     "5.00",
		"type":       "Income",
		"categoryId": tx.Category.ID.String(),
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_NoCategories(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("Create", mock.Anything, "alice", mock.Anything).
		Return(nil, apperrors.ErrPreconditionFailed)

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction", map[string]any{
		"amount":     "10.00",
		"type":       "Expense",
		"categoryId": uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusPreconditionFailed, resp.Code)
}

func TestHTTP_CreateTransaction_ServiceValidation(t *testing.T) {
	verr := &apperrors.ValidationError{}
	verr.Add("amount", "is required")
	verr.Add("type", "is required")
	verr.Add("categoryId", "is required")
	svc := new(mockTransactionService)
	svc.On("Create", mock.Anything, "alice", service.TransactionInput{}).Return(nil, verr)

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction", map[string]any{})

	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	var body huma.ErrorModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Errors, 3)
	assert.Equal(t, "body.amount", body.Errors[0].Location)
}

func TestHTTP_CreateTransaction_UnparseableAmount(t *testing.T) {
	svc := new(mockTransactionService)

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction", map[string]any{
		"amount":     "twelve",
		"type":       "Expense",
		"categoryId": uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_CreateTransaction_ForeignCategory(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("Create", mock.Anything, "alice", mock.Anything).
		Return(nil, errors.Join(errors.New("category"), apperrors.ErrNotFound))

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction", map[string]any{
		"amount":     "10.00",
		"type":       "Expense",
		"categoryId": uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_CreateTransaction_RequiresOwner(t *testing.T) {
	svc := new(mockTransactionService)

	resp := newTestAPI(t, svc, "").Post("/v1/transaction", map[string]any{"amount": "1.00"})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}
