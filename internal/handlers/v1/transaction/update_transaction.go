package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/expense-tracker/internal/handlers/httperror"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body TransactionBody
}

type transactionUpdater interface {
	Update(ctx context.Context, ownerID string, id uuid.UUID, input service.TransactionInput) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Updates the fields present in the body. A body id must match the path id.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	ownerID, err := httperror.Owner(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	logging.AddData(ctx, "transactionID", id.String())

	txInput, err := parseBody(input.Body)
	if err != nil {
		return nil, httperror.FromError(ctx, err, "update transaction")
	}

	stopTimer := logging.Time(ctx, "updateTransactionMs")
	tx, err := h.TransactionService.Update(ctx, ownerID, id, txInput)
	stopTimer()
	if err != nil {
		return nil, httperror.FromError(ctx, err, "update transaction")
	}
	return &TransactionOutput{Body: fromService(*tx)}, nil
}
