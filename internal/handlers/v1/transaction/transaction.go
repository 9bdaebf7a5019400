package transaction

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
	"github.com/carson-networks/expense-tracker/internal/handlers/httperror"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID           string `json:"id" doc:"Transaction UUID"`
	Amount       string `json:"amount" doc:"Decimal amount with two places"`
	Date         string `json:"date" doc:"RFC3339 transaction date"`
	Notes        string `json:"notes" doc:"Free-form notes"`
	Type         string `json:"type" enum:"Expense,Income" doc:"Transaction type"`
	CategoryID   string `json:"categoryId" doc:"Category UUID"`
	CategoryName string `json:"categoryName" doc:"Category name"`
	CreatedAt    string `json:"createdAt" doc:"RFC3339 creation time"`
}

// TransactionBody is the request body for creating or updating a
// transaction. Absent fields are left unset; on update they keep their
// stored value.
type TransactionBody struct {
	ID         string  `json:"id,omitempty" format:"uuid" doc:"Transaction UUID, must match the path on update"`
	Amount     string  `json:"amount,omitempty" doc:"Decimal amount greater than 0"`
	Date       string  `json:"date,omitempty" doc:"RFC3339 timestamp or YYYY-MM-DD, defaults to today"`
	Notes      *string `json:"notes,omitempty" maxLength:"250" doc:"Free-form notes"`
	Type       string  `json:"type,omitempty" enum:"Expense,Income" doc:"Transaction type"`
	CategoryID string  `json:"categoryId,omitempty" format:"uuid" doc:"Category UUID"`
}

// TransactionPathInput addresses one transaction.
type TransactionPathInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

// TransactionOutput is the Huma output for endpoints returning one transaction.
type TransactionOutput struct {
	Body Transaction
}

func fromService(tx service.Transaction) Transaction {
	return Transaction{
		ID:           tx.ID.String(),
		Amount:       tx.Amount.StringFixed(2),
		Date:         tx.Date.UTC().Format(time.RFC3339),
		Notes:        tx.Notes,
		Type:         tx.Type.String(),
		CategoryID:   tx.Category.ID.String(),
		CategoryName: tx.Category.Name,
		CreatedAt:    tx.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// parseDate accepts a full RFC3339 timestamp or a bare calendar date,
// which is read as UTC midnight.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}

// parseBody converts the wire strings into a service input. Every field
// that fails to parse is reported together.
func parseBody(body TransactionBody) (service.TransactionInput, error) {
	var input service.TransactionInput
	verr := &apperrors.ValidationError{}

	if body.ID != "" {
		id, err := uuid.FromString(body.ID)
		if err != nil {
			verr.Add("id", "must be a UUID")
		} else {
			input.ID = &id
		}
	}
	if body.Amount != "" {
		amount, err := decimal.NewFromString(strings.TrimSpace(body.Amount))
		if err != nil {
			verr.Add("amount", "must be a decimal number")
		} else {
			input.Amount = &amount
		}
	}
	if body.Date != "" {
		date, err := parseDate(body.Date)
		if err != nil {
			verr.Add("date", "must be an RFC3339 timestamp or YYYY-MM-DD")
		} else {
			input.Date = &date
		}
	}
	if body.Type != "" {
		txType, err := service.ParseTransactionType(body.Type)
		if err != nil {
			verr.Add("type", "must be Expense or Income")
		} else {
			input.Type = &txType
		}
	}
	if body.CategoryID != "" {
		categoryID, err := uuid.FromString(body.CategoryID)
		if err != nil {
			verr.Add("categoryId", "must be a UUID")
		} else {
			input.CategoryID = &categoryID
		}
	}
	input.Notes = body.Notes

	return input, verr.OrNil()
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, httperror.InvalidPath("id", "must be a UUID")
	}
	return id, nil
}
