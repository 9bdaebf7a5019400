package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/httperror"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body TransactionBody
}

type transactionCreator interface {
	Create(ctx context.Context, ownerID string, input service.TransactionInput) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Creates a new transaction. The caller must own at least one category.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*TransactionOutput, error) {
	ownerID, err := httperror.Owner(ctx)
	if err != nil {
		return nil, err
	}
	txInput, err := parseBody(input.Body)
	if err != nil {
		return nil, httperror.FromError(ctx, err, "create transaction")
	}
	// An id in the create body is ignored; the store assigns one.
	txInput.ID = nil

	stopTimer := logging.Time(ctx, "createTransactionMs")
	tx, err := h.TransactionService.Create(ctx, ownerID, txInput)
	stopTimer()
	if err != nil {
		return nil, httperror.FromError(ctx, err, "create transaction")
	}
	logging.AddData(ctx, "transactionID", tx.ID.String())

	return &TransactionOutput{Body: fromService(*tx)}, nil
}
