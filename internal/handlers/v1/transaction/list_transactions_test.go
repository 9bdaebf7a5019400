package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/service"
)

// -- parseListTransactionsInput unit tests --

func TestParseListTransactionsInput_NoCursor(t *testing.T) {
	cursor, err := parseListTransactionsInput(&ListTransactionsInput{})
	assert.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestParseListTransactionsInput_WithCursor(t *testing.T) {
	cursorMaxTime := "2025-06-15T08:00:00.123456Z"

	input := &ListTransactionsInput{
		Body: ListTransactionsBody{
			Cursor: &ListTransactionsCursor{
				Position:        40,
				Limit:           10,
				MaxCreationTime: cursorMaxTime,
			},
		},
	}

	cursor, err := parseListTransactionsInput(input)
	require.NoError(t, err)

	expectedMax, _ := time.Parse(time.RFC3339Nano, cursorMaxTime)
	require.NotNil(t, cursor)
	assert.Equal(t, 40, cursor.Position)
	assert.Equal(t, 10, cursor.Limit)
	assert.Equal(t, expectedMax, cursor.MaxCreationTime)
}

func TestParseListTransactionsInput_CursorWithoutBound(t *testing.T) {
	cursor, err := parseListTransactionsInput(&ListTransactionsInput{
		Body: ListTransactionsBody{Cursor: &ListTransactionsCursor{Limit: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, cursor.Limit)
	assert.True(t, cursor.MaxCreationTime.IsZero())
}

func TestParseListTransactionsInput_InvalidCursorMaxCreationTime(t *testing.T) {
	_, err := parseListTransactionsInput(&ListTransactionsInput{
		Body: ListTransactionsBody{
			Cursor: &ListTransactionsCursor{Limit: 10, MaxCreationTime: "not-a-date"},
		},
	})
	assert.Error(t, err)
}

// -- HTTP integration tests --

func TestHTTP_ListTransactions_SinglePage(t *testing.T) {
	tx := sampleTransaction("10.00", service.TransactionTypeExpense, "Food")

	svc := new(mockTransactionService)
	svc.On("ListPage", mock.Anything, "alice", (*service.TransactionCursor)(nil)).
		Return([]service.Transaction{tx}, (*service.TransactionCursor)(nil), nil)

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction/list", ListTransactionsBody{})

	require.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Transactions, 1)
	assert.Equal(t, tx.ID.String(), body.Transactions[0].ID)
	assert.Equal(t, "Food", body.Transactions[0].CategoryName)
	assert.Nil(t, body.NextCursor)
	svc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_MultiplePages(t *testing.T) {
	maxCreation := time.Date(2025, 6, 1, 12, 0, 0, 500000000, time.UTC)
	svcDefaultLimit := 20

	txs := []service.Transaction{
		sampleTransaction("5.00", service.TransactionTypeExpense, "Food"),
		sampleTransaction("6.00", service.TransactionTypeIncome, "Salary"),
	}

	svc := new(mockTransactionService)
	svc.On("ListPage", mock.Anything, "alice", (*service.TransactionCursor)(nil)).
		Return(txs, &service.TransactionCursor{
			Position:        svcDefaultLimit,
			Limit:           svcDefaultLimit,
			MaxCreationTime: maxCreation,
		}, nil)

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction/list", ListTransactionsBody{})

	require.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Transactions, 2)
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, svcDefaultLimit, body.NextCursor.Position)
	assert.Equal(t, svcDefaultLimit, body.NextCursor.Limit)
	assert.Equal(t, "2025-06-01T12:00:00.5Z", body.NextCursor.MaxCreationTime)
	svc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_WithCursor(t *testing.T) {
	maxTime := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	svc := new(mockTransactionService)
	svc.On("ListPage", mock.Anything, "alice", mock.MatchedBy(func(c *service.TransactionCursor) bool {
		return c != nil &&
			c.Position == 40 &&
			c.Limit == 10 &&
			c.MaxCreationTime.Equal(maxTime)
	})).Return(([]service.Transaction)(nil), (*service.TransactionCursor)(nil), nil)

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction/list", ListTransactionsBody{
		Cursor: &ListTransactionsCursor{
			Position:        40,
			Limit:           10,
			MaxCreationTime: maxTime.Format(time.RFC3339),
		},
	})

	require.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Transactions)
	assert.Nil(t, body.NextCursor)
	svc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_NoResultsIsEmptyArray(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("ListPage", mock.Anything, "alice", mock.Anything).
		Return(([]service.Transaction)(nil), (*service.TransactionCursor)(nil), nil)

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction/list", ListTransactionsBody{})

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"transactions":[]`)
	svc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_ServiceError(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("ListPage", mock.Anything, "alice", mock.Anything).
		Return(([]service.Transaction)(nil), (*service.TransactionCursor)(nil), errors.New("database unavailable"))

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction/list", ListTransactionsBody{})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "database unavailable")
	svc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_InvalidCursorMaxCreationTime(t *testing.T) {
	svc := new(mockTransactionService)

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction/list", ListTransactionsBody{
		Cursor: &ListTransactionsCursor{
			Position:        0,
			Limit:           10,
			MaxCreationTime: "not-a-date",
		},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "body.cursor.maxCreationTime")
	svc.AssertNotCalled(t, "ListPage", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_ListTransactions_LimitOutOfRange(t *testing.T) {
	svc := new(mockTransactionService)

	resp := newTestAPI(t, svc, "alice").Post("/v1/transaction/list", ListTransactionsBody{
		Cursor: &ListTransactionsCursor{Limit: 500},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "ListPage", mock.Anything, mock.Anything, mock.Anything)
}
